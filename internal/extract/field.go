// Package extract implements the field recognizers and the document scanner
// that pull candidate values out of raw statement text. Extraction never
// fails loudly: every recognizer reports absence through a presence flag and
// leaves severity decisions to the validation layer.
package extract

// Field is the tagged result of one extraction attempt. Raw holds the text
// span the value was recognized from, when one exists.
type Field[T any] struct {
	Value   T
	Raw     string
	Present bool
}

// Present wraps a successfully extracted value.
func Present[T any](value T, raw string) Field[T] {
	return Field[T]{Value: value, Raw: raw, Present: true}
}

// Absent is the empty extraction result.
func Absent[T any]() Field[T] {
	return Field[T]{}
}

// Or returns the extracted value when present, otherwise the fallback.
func (f Field[T]) Or(fallback T) T {
	if f.Present {
		return f.Value
	}
	return fallback
}
