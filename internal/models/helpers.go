package models

import "slices"

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// NonEmpty returns a copy of an optional reference, or nil when it is nil or
// the empty string. An empty id never means anything but absent.
func NonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return Ptr(*p)
}

func equalRef(a, b *string) bool {
	return equalPtr(NonEmpty(a), NonEmpty(b))
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
