// Package utils holds small helpers for the optional fields the backend
// leaves unset on freshly composed messages.
package utils

// Value dereferences v, yielding the zero value when v is nil.
func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
