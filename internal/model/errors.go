package model

import "errors"

// ErrValidation - общая ошибка валидации, все ошибки ниже оборачивают её
var ErrValidation = errors.New("validation failed")

var (
	// ErrEmptyNote возвращается, когда и заголовок, и содержимое пусты
	ErrEmptyNote = validationError("title and content cannot both be empty")

	// ErrEmptyTagName возвращается для пустого имени тега
	ErrEmptyTagName = validationError("tag name cannot be empty")

	// ErrDuplicateTagName возвращается, если тег с таким именем уже существует
	ErrDuplicateTagName = validationError("tag name already exists")

	// ErrUnknownColor возвращается для цвета вне палитры
	ErrUnknownColor = validationError("unknown tag color")

	// ErrUnknownIcon возвращается для иконки вне палитры
	ErrUnknownIcon = validationError("unknown tag icon")
)

type valErr struct {
	msg string
}

func validationError(msg string) error {
	return &valErr{msg: msg}
}

func (e *valErr) Error() string { return e.msg }

// Unwrap позволяет проверять любую ошибку валидации через errors.Is(err, ErrValidation)
func (e *valErr) Unwrap() error { return ErrValidation }
