package model

import (
	"strings"

	"github.com/google/uuid"
)

// Tag - метка с цветом и иконкой. Внутри заметки хранится как снимок,
// поэтому JSON-форма является форматом хранения снимка.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

// NewTag создает тег с новым UUID
func NewTag(name, color, icon string) Tag {
	return Tag{
		ID:    uuid.New().String(),
		Name:  strings.TrimSpace(name),
		Color: color,
		Icon:  icon,
	}
}

// Validate проверяет имя и токены палитры
func (t *Tag) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTagName
	}
	if !IsKnownColor(t.Color) {
		return ErrUnknownColor
	}
	if !IsKnownIcon(t.Icon) {
		return ErrUnknownIcon
	}
	return nil
}

// NormalizeTagName приводит имя к виду для сравнения на дубликаты
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultTags возвращает набор тегов первого запуска.
// Идентификаторы фиксированы, чтобы снимки в заметках совпадали между запусками.
func DefaultTags() []Tag {
	return []Tag{
		{ID: "11111111-1111-1111-1111-111111111111", Name: "İş", Color: "TagBlue", Icon: "briefcase.fill"},
		{ID: "22222222-2222-2222-2222-222222222222", Name: "Kişisel", Color: "TagGreen", Icon: "person.fill"},
		{ID: "33333333-3333-3333-3333-333333333333", Name: "Fikir", Color: "TagPurple", Icon: "lightbulb.fill"},
		{ID: "44444444-4444-4444-4444-444444444444", Name: "Acil", Color: "TagOrange", Icon: "exclamationmark.triangle.fill"},
		{ID: "55555555-5555-5555-5555-555555555555", Name: "Hata", Color: "TagRed", Icon: "ant.fill"},
		{ID: "66666666-6666-6666-6666-666666666666", Name: "Öğrenme", Color: "TagYellow", Icon: "book.fill"},
		{ID: "77777777-7777-7777-7777-777777777777", Name: "Araştırma", Color: "TagTeal", Icon: "magnifyingglass.circle.fill"},
	}
}
