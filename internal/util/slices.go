package util

import "slices"

// Remove deletes the first occurrence of v from s in place and returns the
// shortened slice, which shares s's backing array. When v is absent, s is
// returned untouched.
func Remove[S ~[]E, E comparable](s S, v E) S {
	if i := slices.Index(s, v); i >= 0 {
		return slices.Delete(s, i, i+1)
	}
	return s
}

// Exclude returns a new slice holding every element of s that is not one of
// values. s is not modified.
func Exclude[S ~[]E, E comparable](s S, values ...E) S {
	out := make(S, 0, len(s))
	for _, item := range s {
		if !slices.Contains(values, item) {
			out = append(out, item)
		}
	}
	return out
}
