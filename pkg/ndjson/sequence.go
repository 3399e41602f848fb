package ndjson

import "slices"

// Sequence is a destination or source of records. Index returns a pointer
// to element i.
type Sequence interface {
	Len() int
	Index(i int) any
}

// Appender is a Sequence that grows to fit the input. Append adds a zero
// element and returns a pointer to it.
type Appender interface {
	Append() any
}

// Truncater is a Sequence that can drop elements left unfilled by a short
// input.
type Truncater interface {
	Truncate(n int)
}

// Shrinker releases spare capacity after a truncation.
type Shrinker interface {
	ShrinkToFit()
}

// Growable adapts a slice that is filled in place and then extended.
type Growable[T any] struct {
	s *[]T
}

func Grow[T any](s *[]T) *Growable[T] {
	return &Growable[T]{s: s}
}

func (g *Growable[T]) Len() int {
	return len(*g.s)
}

func (g *Growable[T]) Index(i int) any {
	return &(*g.s)[i]
}

func (g *Growable[T]) Append() any {
	var zero T
	*g.s = append(*g.s, zero)
	return &(*g.s)[len(*g.s)-1]
}

func (g *Growable[T]) Truncate(n int) {
	*g.s = truncateSlice(*g.s, n)
}

func (g *Growable[T]) ShrinkToFit() {
	*g.s = slices.Clip(*g.s)
}

// Bounded adapts a slice whose length is an upper bound: it never grows,
// and shrinks when the input holds fewer records.
type Bounded[T any] struct {
	s *[]T
}

func Bound[T any](s *[]T) *Bounded[T] {
	return &Bounded[T]{s: s}
}

func (b *Bounded[T]) Len() int {
	return len(*b.s)
}

func (b *Bounded[T]) Index(i int) any {
	return &(*b.s)[i]
}

func (b *Bounded[T]) Truncate(n int) {
	*b.s = truncateSlice(*b.s, n)
}

func (b *Bounded[T]) ShrinkToFit() {
	*b.s = slices.Clip(*b.s)
}

// Array adapts a slice of fixed length. Elements past the end of a short
// input keep their values.
type Array[T any] []T

func Fixed[T any](s []T) Array[T] {
	return Array[T](s)
}

func (a Array[T]) Len() int {
	return len(a)
}

func (a Array[T]) Index(i int) any {
	return &a[i]
}

// Tuple holds pointers to a fixed number of heterogeneous records.
type Tuple []any

func (t Tuple) Len() int {
	return len(t)
}

func (t Tuple) Index(i int) any {
	return t[i]
}

func truncateSlice[T any](s []T, n int) []T {
	if n >= len(s) {
		return s
	}
	clear(s[n:])
	return s[:n]
}
