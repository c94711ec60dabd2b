package utils

func Filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func Map[T any, R any](in []T, f func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return out
}

// FlatMap maps every element to a slice and concatenates the results in order.
func FlatMap[T any, R any](in []T, f func(T) []R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v)...)
	}
	return out
}

// Deref returns the pointed-to value or fallback when p is nil.
func Deref[T any](p *T, fallback T) T {
	if p == nil {
		return fallback
	}
	return *p
}
