package reminder

import (
	"fmt"
	"strings"

	"devnotes/internal/model"
)

// Permission - статус разрешения ОС на доставку уведомлений
type Permission int

const (
	PermissionNotDetermined Permission = iota
	PermissionAuthorized
	PermissionProvisional
	PermissionDenied
)

// Allows сообщает, можно ли планировать уведомления при этом статусе
func (p Permission) Allows() bool {
	return p == PermissionAuthorized || p == PermissionProvisional
}

func (p Permission) String() string {
	switch p {
	case PermissionNotDetermined:
		return "not-determined"
	case PermissionAuthorized:
		return "authorized"
	case PermissionProvisional:
		return "provisional"
	case PermissionDenied:
		return "denied"
	default:
		return fmt.Sprintf("permission(%d)", int(p))
	}
}

// ParsePermission разбирает строковое представление статуса
func ParsePermission(s string) (Permission, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "not-determined", "not_determined", "notdetermined":
		return PermissionNotDetermined, nil
	case "authorized":
		return PermissionAuthorized, nil
	case "provisional":
		return PermissionProvisional, nil
	case "denied":
		return PermissionDenied, nil
	default:
		return PermissionNotDetermined, fmt.Errorf("%w: unknown permission %q", model.ErrValidation, s)
	}
}

// MarshalText реализует encoding.TextMarshaler
func (p Permission) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText реализует encoding.TextUnmarshaler
func (p *Permission) UnmarshalText(text []byte) error {
	parsed, err := ParsePermission(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
