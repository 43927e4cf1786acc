package editform

import (
	"unicode/utf8"
)

// Rule builds a validator from a predicate over the working copy.
func Rule[T any](message string, valid func(record *T) bool) Validator[T] {
	return func(record *T) string {
		if valid(record) {
			return ""
		}
		return message
	}
}

// StringLength fails when the property length is outside [min, max].
// Length means characters, not bytes: a name in a non-ASCII alphabet counts
// the same as its transliteration.
func StringLength[T any](message string, min, max int, get func(record *T) string) Validator[T] {
	return Rule(message, func(record *T) bool {
		length := utf8.RuneCountInString(get(record))
		return length >= min && length <= max
	})
}

// IntRange fails when the property is outside [min, max].
func IntRange[T any](message string, min, max int, get func(record *T) int) Validator[T] {
	return Rule(message, func(record *T) bool {
		value := get(record)
		return value >= min && value <= max
	})
}
