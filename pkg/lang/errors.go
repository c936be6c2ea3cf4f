package lang

import "errors"

var (
	ErrInvalidLocale  = errors.New("lang: invalid locale format")
	ErrNoValidLocales = errors.New("lang: no valid locales configured")
	ErrEmptyLanguage  = errors.New("lang: language cannot be empty")
	ErrDuplicateEntry = errors.New("lang: duplicate language entry")
)
