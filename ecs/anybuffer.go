package ecs

import (
	"reflect"
	"unsafe"
)

// componentDescriptor is a small vtable-like set of functions describing
// how to default-construct, drop and copy a single component kind, plus
// the information needed to size and align its backing storage.
//
// Built by descriptorFor each time a ComponentType is constructed; every
// AnyBuffer column for the same component kind carries an equivalent
// descriptor with the same id.
type componentDescriptor struct {
	id      ComponentID
	size    uintptr
	align   uintptr
	typ     reflect.Type
	zero    func(dst unsafe.Pointer)
	drop    func(dst unsafe.Pointer)
	copyFn  func(dst, src unsafe.Pointer)
}

// AnyBuffer is a type-erased, manually managed column of fixed-size
// records. It does not track which slots are initialized — that knowledge
// lives in the owning archetype's RangeAllocator; AnyBuffer only knows how
// to grow, default-construct, drop and copy ranges of slots it is told
// about.
type AnyBuffer struct {
	desc     componentDescriptor
	data     reflect.Value // addressable [N]T backing array, built with reflect.ArrayOf(N, desc.typ)
	base     unsafe.Pointer
	capacity int
}

// NewAnyBuffer returns an AnyBuffer for the given descriptor, initially
// empty (capacity 0).
func NewAnyBuffer(desc componentDescriptor) AnyBuffer {
	return AnyBuffer{desc: desc}
}

// Capacity returns the number of elements the buffer can currently hold.
func (b *AnyBuffer) Capacity() int { return b.capacity }

// EnsureCapacity grows the buffer, if needed, to hold at least n elements.
// Growing allocates a new backing array, bit-copies the first
// old_capacity*size bytes across, and releases the old allocation without
// invoking any drop function — ownership of the bytes moves with the copy.
func (b *AnyBuffer) EnsureCapacity(n int) {
	if n <= b.capacity {
		return
	}
	old := b.data
	newData := reflect.New(reflect.ArrayOf(n, b.desc.typ)).Elem()
	newBase := newData.Addr().UnsafePointer()
	if b.capacity > 0 {
		reflect.Copy(newData, old)
	}
	b.data = newData
	b.base = newBase
	b.capacity = n
}

func (b *AnyBuffer) at(i int) unsafe.Pointer {
	return unsafe.Add(b.base, uintptr(i)*b.desc.size)
}

// DefaultValues default-constructs every slot in r. The caller guarantees
// those slots are not currently live.
func (b *AnyBuffer) DefaultValues(r SlotRange) {
	for i := r.Start; i < r.End; i++ {
		b.desc.zero(b.at(i))
	}
}

// DropValues invokes the drop function over every slot in r. The caller
// guarantees those slots are currently live.
func (b *AnyBuffer) DropValues(r SlotRange) {
	if b.desc.drop == nil {
		return
	}
	for i := r.Start; i < r.End; i++ {
		b.desc.drop(b.at(i))
	}
}

// CopyValues bit-copies src[srcRange] into dst starting at dstOffset. The
// caller must guarantee: (a) dst's descriptor has the same id as b's, (b)
// the destination slots are dropped-or-uninitialized, and (c) after this
// call ownership of the values is transferred to dst — the source slots
// are treated as uninitialized and must not be read or dropped again.
func (b *AnyBuffer) CopyValues(dst *AnyBuffer, srcRange SlotRange, dstOffset int) {
	if b.desc.id != dst.desc.id {
		panic("vela/ecs: CopyValues between AnyBuffers of different component types")
	}
	n := srcRange.Len()
	if n == 0 {
		return
	}
	size := b.desc.size
	srcBytes := unsafe.Slice((*byte)(b.at(srcRange.Start)), uintptr(n)*size)
	dstBytes := unsafe.Slice((*byte)(dst.at(dstOffset)), uintptr(n)*size)
	copy(dstBytes, srcBytes)
}

// TypedSliceUnchecked exposes the underlying memory as a typed slice of
// length Capacity. Contents at non-live slots are unspecified. The caller
// must guarantee T matches the descriptor's type.
func TypedSliceUnchecked[T any](b *AnyBuffer) []T {
	if b.capacity == 0 {
		return nil
	}
	return unsafe.Slice((*T)(b.base), b.capacity)
}

// descriptorFor builds a componentDescriptor for T, using reflection once
// to capture size/alignment/type and a small set of closures for
// zero-value construction, drop (a no-op for Go, which has no destructors)
// and bitwise copy.
func descriptorFor[T any](id ComponentID) componentDescriptor {
	var zero T
	typ := reflect.TypeOf(zero)
	if typ == nil {
		typ = reflect.TypeOf(&zero).Elem()
	}
	return componentDescriptor{
		id:    id,
		size:  unsafe.Sizeof(zero),
		align: unsafe.Alignof(zero),
		typ:   typ,
		zero: func(dst unsafe.Pointer) {
			*(*T)(dst) = zero
		},
		drop: nil, // Go has no user destructors; component drop is a no-op
		copyFn: func(dst, src unsafe.Pointer) {
			*(*T)(dst) = *(*T)(src)
		},
	}
}
