package ecs

import (
	"sort"
	"strings"
	"sync"
)

// EntityQuery is a handle to a compiled (include, exclude) BitField pair.
// Handles are interned process-wide by the structural identity of the
// component-ID sets involved: two Filter builders that end up requesting
// the same include/exclude sets receive the same EntityQuery, so their
// cached archetype match lists are shared instead of duplicated.
type EntityQuery struct {
	index uint32
}

type queryData struct {
	include BitField
	exclude BitField
}

var (
	queryRegistryMu sync.Mutex
	queryData_      []queryData
	queryByKey      = make(map[string]EntityQuery)
)

// queryKey canonicalizes a pair of component-ID sets into a deterministic
// string key. Both slices are assumed sorted ascending with no duplicates
// within a slice (duplicates within Include are rejected earlier, by
// getOrCreateQuery, as an aliasing-discipline violation).
func queryKey(include, exclude []ComponentID) string {
	var b strings.Builder
	for _, id := range include {
		b.WriteByte('i')
		writeUint(&b, uint64(id))
	}
	b.WriteByte('|')
	for _, id := range exclude {
		b.WriteByte('e')
		writeUint(&b, uint64(id))
	}
	return b.String()
}

func writeUint(b *strings.Builder, v uint64) {
	const digits = "0123456789"
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v%10]
		v /= 10
	}
	b.Write(buf[i:])
}

func bitfieldFor(ids []ComponentID) BitField {
	var bf BitField
	for _, id := range ids {
		bf.Set(int(id), true)
	}
	return bf
}

// getOrCreateQuery returns the interned EntityQuery for the given
// include/exclude component-ID sets, registering a new one on first sight.
// include and exclude are sorted in place.
func getOrCreateQuery(include, exclude []ComponentID) EntityQuery {
	sort.Slice(include, func(i, j int) bool { return include[i] < include[j] })
	sort.Slice(exclude, func(i, j int) bool { return exclude[i] < exclude[j] })
	for i := 1; i < len(include); i++ {
		if include[i] == include[i-1] {
			panicDuplicateIncludeType(include[i])
		}
	}

	key := queryKey(include, exclude)

	queryRegistryMu.Lock()
	defer queryRegistryMu.Unlock()

	if q, ok := queryByKey[key]; ok {
		return q
	}

	q := EntityQuery{index: uint32(len(queryData_))}
	queryData_ = append(queryData_, queryData{
		include: bitfieldFor(include),
		exclude: bitfieldFor(exclude),
	})
	queryByKey[key] = q
	return q
}

func getQueryData(q EntityQuery) *queryData {
	return &queryData_[q.index]
}

// matchesQuery reports whether an archetype's component bitfield satisfies
// (include, exclude): include ⊆ components and, when exclude is non-empty,
// exclude ⊄ components. An empty exclude set excludes nothing.
func matchesQuery(components *BitField, data *queryData) bool {
	if !data.include.IsSubsetOf(components) {
		return false
	}
	if data.exclude.trimmedLen() == 0 {
		return true
	}
	return !data.exclude.IsSubsetOf(components)
}

// resetQueryRegistryForTests clears all process-wide query interning
// state. Test-only hook, mirroring resetComponentRegistryForTests.
func resetQueryRegistryForTests() {
	queryRegistryMu.Lock()
	defer queryRegistryMu.Unlock()
	queryData_ = nil
	queryByKey = make(map[string]EntityQuery)
}
