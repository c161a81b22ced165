// Package window slices a materialised list into the fixed-size views used by
// storefront carousels and advances them with wrap-around.
package window

const (
	// StepOne moves the window one item at a time.
	StepOne = 1
	// StepPage moves the window a full page at a time.
	StepPage = 0
)

type Window[T any] struct {
	Items []T `json:"items"`
	Start int `json:"start"`
	Next  int `json:"next"`
	Prev  int `json:"prev"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// Bounds is the index arithmetic of a window without the items.
type Bounds struct {
	Start int
	End   int
	Next  int
	Prev  int
	Size  int
	Total int
}

// Of returns the window of items starting at start. A size below one shows the
// whole collection; a step of StepPage (or below one) advances by size.
func Of[T any](items []T, start, size, step int) Window[T] {
	b := Compute(len(items), start, size, step)

	return Window[T]{
		Items: items[b.Start:b.End:b.End],
		Start: b.Start,
		Next:  b.Next,
		Prev:  b.Prev,
		Size:  b.Size,
		Total: b.Total,
	}
}

// Compute works out the bounds of a window over a collection of n items.
func Compute(n, start, size, step int) Bounds {
	if size < 1 || size > n {
		size = n
	}

	if step < 1 || step > size {
		step = size
	}

	b := Bounds{Size: size, Total: n}
	if n == 0 {
		return b
	}

	last := n - size

	start %= n
	if start < 0 {
		start += n
	}
	start = min(start, last)

	b.Start = start
	b.End = start + size

	switch {
	case last == 0:
		b.Next, b.Prev = 0, 0
	case start == last:
		b.Next = 0
		b.Prev = max(0, start-step)
	case start == 0:
		b.Next = min(step, last)
		b.Prev = last
	default:
		b.Next = min(start+step, last)
		b.Prev = max(0, start-step)
	}

	return b
}
