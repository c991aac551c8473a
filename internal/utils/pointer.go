package utils

// Ptr returns a pointer to a copy of v, for optional request fields such as
// temperature or token caps that vendors distinguish from their zero value.
func Ptr[T any](v T) *T {
	return &v
}
