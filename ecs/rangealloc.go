package ecs

import "sort"

// SlotRange is a half-open range of slot indices, [Start, End).
type SlotRange struct {
	Start, End int
}

// Len reports the number of slots covered by the range.
func (r SlotRange) Len() int { return r.End - r.Start }

func (r SlotRange) empty() bool { return r.End <= r.Start }

// RangeAllocator manages the half-open interval [0, Capacity) as a set of
// used and free sub-ranges. Free ranges are kept sorted by start with no
// two ranges touching or overlapping; used-range enumeration is the
// complement of the free-range set within [0, Capacity).
type RangeAllocator struct {
	capacity int
	used     int
	free     []SlotRange // sorted ascending by Start; never touching/overlapping
}

// NewRangeAllocator returns an allocator over the empty interval [0, 0).
func NewRangeAllocator() RangeAllocator {
	return RangeAllocator{}
}

// NewRangeAllocatorWithCapacity returns an allocator over [0, capacity)
// with the entire interval free.
func NewRangeAllocatorWithCapacity(capacity int) RangeAllocator {
	a := RangeAllocator{}
	if capacity > 0 {
		a.capacity = capacity
		a.free = []SlotRange{{0, capacity}}
	}
	return a
}

// Capacity returns the total size of the managed interval.
func (a *RangeAllocator) Capacity() int { return a.capacity }

// Used returns the number of slots currently allocated.
func (a *RangeAllocator) Used() int { return a.used }

// Available returns the number of slots currently free.
func (a *RangeAllocator) Available() int { return a.capacity - a.used }

// findFirstFit returns the index into a.free of the first free range whose
// length is >= size, or -1 if none qualifies.
func (a *RangeAllocator) findFirstFit(size int) int {
	for i, r := range a.free {
		if r.Len() >= size {
			return i
		}
	}
	return -1
}

// TryAllocate allocates a single contiguous range of the given size from
// an existing free range, without growing capacity. It reports false if
// no free range is large enough.
func (a *RangeAllocator) TryAllocate(size int) (SlotRange, bool) {
	idx := a.findFirstFit(size)
	if idx < 0 {
		return SlotRange{}, false
	}
	free := a.free[idx]
	out := SlotRange{free.Start, free.Start + size}
	remaining := SlotRange{free.Start + size, free.End}
	if remaining.empty() {
		a.free = append(a.free[:idx], a.free[idx+1:]...)
	} else {
		a.free[idx] = remaining
	}
	a.used += size
	return out, true
}

func (a *RangeAllocator) allocateNew(size int) SlotRange {
	start := a.capacity
	a.capacity += size
	a.used += size
	return SlotRange{start, a.capacity}
}

// Allocate returns a single contiguous range of the given size, preferring
// the first free range (by ascending start) that is large enough, and
// otherwise growing capacity by exactly size.
func (a *RangeAllocator) Allocate(size int) SlotRange {
	if r, ok := a.TryAllocate(size); ok {
		return r
	}
	return a.allocateNew(size)
}

// TryAllocateFragmented fills out with a concatenation of free chunks
// summing exactly to size, without mutating state if the allocator doesn't
// have enough free space. On insufficient capacity it returns the deficit
// and out is left untouched.
func (a *RangeAllocator) TryAllocateFragmented(size int, out *[]SlotRange) (deficit int, ok bool) {
	if a.Available() < size {
		return size - a.Available(), false
	}
	a.AllocateFragmented(size, out)
	return 0, true
}

// AllocateFragmented fills out with a concatenation of free chunks summing
// to exactly size, growing capacity by the deficit (if any) and never
// failing. If the grown tail is contiguous with the last emitted chunk,
// the two are merged into a single range.
func (a *RangeAllocator) AllocateFragmented(size int, out *[]SlotRange) {
	*out = (*out)[:0]
	remaining := size

	var consumed []int // indices into a.free to remove once the loop settles
	for i, r := range a.free {
		if remaining == 0 {
			break
		}
		if r.Len() < remaining {
			*out = append(*out, r)
			remaining -= r.Len()
			a.used += r.Len()
			consumed = append(consumed, i)
		} else {
			taken := SlotRange{r.Start, r.Start + remaining}
			leftover := SlotRange{r.Start + remaining, r.End}
			*out = append(*out, taken)
			a.used += remaining
			remaining = 0
			if leftover.empty() {
				consumed = append(consumed, i)
			} else {
				a.free[i] = leftover
			}
		}
	}

	// Remove fully consumed free ranges, highest index first so earlier
	// indices stay valid.
	for j := len(consumed) - 1; j >= 0; j-- {
		i := consumed[j]
		a.free = append(a.free[:i], a.free[i+1:]...)
	}

	if remaining != 0 {
		grown := a.allocateNew(remaining)
		if n := len(*out); n > 0 && (*out)[n-1].End == grown.Start {
			(*out)[n-1].End = grown.End
		} else {
			*out = append(*out, grown)
		}
	}
}

// Free returns range to the allocator, coalescing it with the immediately
// preceding and/or following free ranges. range must not be returned twice.
func (a *RangeAllocator) Free(r SlotRange) {
	if r.empty() {
		return
	}
	a.used -= r.Len()

	// Find the free range immediately following r (its Start == r.End) and
	// the one immediately preceding r (its End == r.Start), merging both
	// into a single coalesced range.
	followIdx, precedeIdx := -1, -1
	for i, f := range a.free {
		if f.Start == r.End {
			followIdx = i
		}
		if f.End == r.Start {
			precedeIdx = i
		}
	}

	merged := r
	if followIdx >= 0 {
		merged.End = a.free[followIdx].End
	}
	if precedeIdx >= 0 {
		merged.Start = a.free[precedeIdx].Start
	}

	// Remove the higher index first to keep the lower index valid.
	switch {
	case followIdx >= 0 && precedeIdx >= 0:
		hi, lo := followIdx, precedeIdx
		if lo > hi {
			hi, lo = lo, hi
		}
		a.free = append(a.free[:hi], a.free[hi+1:]...)
		a.free = append(a.free[:lo], a.free[lo+1:]...)
	case followIdx >= 0:
		a.free = append(a.free[:followIdx], a.free[followIdx+1:]...)
	case precedeIdx >= 0:
		a.free = append(a.free[:precedeIdx], a.free[precedeIdx+1:]...)
	}

	a.insertFree(merged)
}

func (a *RangeAllocator) insertFree(r SlotRange) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].Start >= r.Start })
	a.free = append(a.free, SlotRange{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = r
}

// EnsureCapacity grows the allocator, if needed, so that Capacity is at
// least capacity, appending a single free range at the tail.
func (a *RangeAllocator) EnsureCapacity(capacity int) {
	if capacity > a.capacity {
		a.Reserve(capacity - a.capacity)
	}
}

// Reserve grows capacity by size, appending a single free range at the tail.
func (a *RangeAllocator) Reserve(size int) {
	if size <= 0 {
		return
	}
	start := a.capacity
	a.capacity += size
	newRange := SlotRange{start, a.capacity}
	if n := len(a.free); n > 0 && a.free[n-1].End == start {
		a.free[n-1].End = a.capacity
	} else {
		a.free = append(a.free, newRange)
	}
}

// FreeRanges returns the current free ranges, sorted ascending by Start.
func (a *RangeAllocator) FreeRanges() []SlotRange {
	out := make([]SlotRange, len(a.free))
	copy(out, a.free)
	return out
}

// UsedRanges returns the used ranges, i.e. the complement of the free
// ranges within [0, Capacity), sorted ascending by Start.
func (a *RangeAllocator) UsedRanges() []SlotRange {
	var out []SlotRange
	last := 0
	for _, f := range a.free {
		if f.Start > last {
			out = append(out, SlotRange{last, f.Start})
		}
		last = f.End
	}
	if last < a.capacity {
		out = append(out, SlotRange{last, a.capacity})
	}
	return out
}
