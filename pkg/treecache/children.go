package treecache

// Children is the tri-state child list of a folder node. The zero
// value means "not fetched yet"; a loaded list with zero items means
// "fetched, nothing there". The two must never be conflated: an
// expandable affordance may be shown for a node whose list is still
// unknown, and an empty loaded list must stay empty until the next
// merge.
type Children[T any] struct {
	loaded bool
	items  []T
}

// Unknown returns the not-fetched state.
func Unknown[T any]() Children[T] {
	return Children[T]{}
}

// Loaded wraps items as a fetched list. A nil slice is normalized to
// an empty one so "loaded" never reads as nil.
func Loaded[T any](items []T) Children[T] {
	if items == nil {
		items = []T{}
	}
	return Children[T]{loaded: true, items: items}
}

// IsLoaded reports whether the list has been fetched.
func (c Children[T]) IsLoaded() bool {
	return c.loaded
}

// Items returns the fetched list, nil when not fetched. Callers must
// not mutate the returned slice.
func (c Children[T]) Items() []T {
	return c.items
}

// Len returns the number of fetched items, 0 when not fetched.
func (c Children[T]) Len() int {
	return len(c.items)
}
