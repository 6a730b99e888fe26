package commands

import (
	"fmt"
	"strings"
	"time"

	"devnotes/internal/model"
	svc "devnotes/internal/service"
)

var reminderLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseReminder разбирает дату напоминания в локальной зоне
func parseReminder(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range reminderLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: cannot parse reminder %q, use \"2006-01-02 15:04\"", model.ErrValidation, s)
}

// resolveTag ищет тег по ID или по имени без учета регистра
func resolveTag(tags svc.TagService, ref string) (*model.Tag, error) {
	if ref == "" {
		return nil, nil
	}
	if t, ok := tags.Get(ref); ok {
		return &t, nil
	}
	normalized := model.NormalizeTagName(ref)
	for _, t := range tags.List() {
		if model.NormalizeTagName(t.Name) == normalized {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown tag %q", model.ErrValidation, ref)
}
