package ecs

import "golang.org/x/sync/errgroup"

// filterCore is the state shared by every FilterN arity: the registry it
// was built against and the compiled EntityQuery. The query is computed
// lazily, on first iteration, since Exclude may still be chained onto the
// builder after Include constructs it.
type filterCore struct {
	registry *Registry
	include  []ComponentID
	exclude  []ComponentID

	compiled  bool
	query     EntityQuery
}

func (c *filterCore) compiledQuery() EntityQuery {
	if !c.compiled {
		include := append([]ComponentID(nil), c.include...)
		exclude := append([]ComponentID(nil), c.exclude...)
		c.query = getOrCreateQuery(include, exclude)
		c.compiled = true
	}
	return c.query
}

func (c *filterCore) matchingArchetypes() []*ArchetypeInstance {
	store := c.registry.ArchetypeStore()
	indices := store.Query(c.compiledQuery())
	out := make([]*ArchetypeInstance, len(indices))
	for i, idx := range indices {
		out[i] = store.Get(idx)
	}
	return out
}

// EntitiesForEach invokes fn with the Entity handle of every slot
// matching the filter, in ascending slot order within each archetype;
// archetype visit order follows the query's cached match list.
func (c *filterCore) entitiesForEach(fn func(Entity)) {
	for _, inst := range c.matchingArchetypes() {
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot))
			}
		}
	}
}

func (c *filterCore) parForEachRanges() (*Registry, []*ArchetypeInstance) {
	return c.registry, c.matchingArchetypes()
}

// runParForEach dispatches one goroutine per (archetype, used-range) chunk
// across a bounded worker pool, mirroring the original's "collect ranges
// on the caller's goroutine, then fan out flattened indices" shape. body
// is called once per chunk and must itself loop [start,end) and invoke
// the caller's per-slot function.
func runParForEach(r *Registry, chunks int, body func(chunk int)) {
	var g errgroup.Group
	g.SetLimit(r.workerLimit())
	for i := 0; i < chunks; i++ {
		i := i
		g.Go(func() error {
			body(i)
			return nil
		})
	}
	_ = g.Wait()
}

// --- Arity 1 ---

// Filter1 is a compiled query projecting a single component column.
type Filter1[A any] struct {
	core filterCore
}

// Include1 builds a Filter1 over the registry's entities carrying A.
func Include1[A any](r *Registry) *Filter1[A] {
	return &Filter1[A]{core: filterCore{registry: r, include: []ComponentID{ComponentIDFor[A]()}}}
}

// Exclude attaches an exclusion set built by Exclude1..Exclude4.
func (f *Filter1[A]) Exclude(e exclusion) *Filter1[A] {
	f.core.exclude = e.ids
	return f
}

// EntitiesForEach visits every matching entity's handle without
// projecting any component column.
func (f *Filter1[A]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

// ForEach visits every matching entity in ascending slot order within
// each archetype, archetype order following the query's cached list.
func (f *Filter1[A]) ForEach(fn func(Entity, *A)) {
	idA := ComponentIDFor[A]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		colA := TypedSliceUnchecked[A](bufA)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot])
			}
		}
	}
}

// ParForEach is ForEach, dispatched across a bounded worker pool. fn must
// tolerate concurrent invocation from arbitrary goroutines and must not
// mutate the registry; no ordering is guaranteed across or within
// archetypes.
func (f *Filter1[A]) ParForEach(fn func(Entity, *A)) {
	idA := ComponentIDFor[A]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst *ArchetypeInstance
		colA []A
		r    SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		colA := TypedSliceUnchecked[A](bufA)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot])
		}
	})
}

// --- Arity 2 ---

// Filter2 is a compiled query projecting two component columns.
type Filter2[A, B any] struct {
	core filterCore
}

// Include2 builds a Filter2 over the registry's entities carrying A and B.
func Include2[A, B any](r *Registry) *Filter2[A, B] {
	return &Filter2[A, B]{core: filterCore{registry: r, include: []ComponentID{ComponentIDFor[A](), ComponentIDFor[B]()}}}
}

func (f *Filter2[A, B]) Exclude(e exclusion) *Filter2[A, B] {
	f.core.exclude = e.ids
	return f
}

func (f *Filter2[A, B]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

func (f *Filter2[A, B]) ForEach(fn func(Entity, *A, *B)) {
	idA, idB := ComponentIDFor[A](), ComponentIDFor[B]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot], &colB[slot])
			}
		}
	}
}

func (f *Filter2[A, B]) ParForEach(fn func(Entity, *A, *B)) {
	idA, idB := ComponentIDFor[A](), ComponentIDFor[B]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst       *ArchetypeInstance
		colA       []A
		colB       []B
		r          SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, colB: colB, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot], &c.colB[slot])
		}
	})
}

// --- Arity 3 ---

// Filter3 is a compiled query projecting three component columns.
type Filter3[A, B, C any] struct {
	core filterCore
}

// Include3 builds a Filter3 over the registry's entities carrying A, B and C.
func Include3[A, B, C any](r *Registry) *Filter3[A, B, C] {
	return &Filter3[A, B, C]{core: filterCore{registry: r, include: []ComponentID{
		ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](),
	}}}
}

func (f *Filter3[A, B, C]) Exclude(e exclusion) *Filter3[A, B, C] {
	f.core.exclude = e.ids
	return f
}

func (f *Filter3[A, B, C]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

func (f *Filter3[A, B, C]) ForEach(fn func(Entity, *A, *B, *C)) {
	idA, idB, idC := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot], &colB[slot], &colC[slot])
			}
		}
	}
}

func (f *Filter3[A, B, C]) ParForEach(fn func(Entity, *A, *B, *C)) {
	idA, idB, idC := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst             *ArchetypeInstance
		colA             []A
		colB             []B
		colC             []C
		r                SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, colB: colB, colC: colC, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot], &c.colB[slot], &c.colC[slot])
		}
	})
}

// --- Arity 4 ---

// Filter4 is a compiled query projecting four component columns.
type Filter4[A, B, C, D any] struct {
	core filterCore
}

// Include4 builds a Filter4 over the registry's entities carrying A, B, C and D.
func Include4[A, B, C, D any](r *Registry) *Filter4[A, B, C, D] {
	return &Filter4[A, B, C, D]{core: filterCore{registry: r, include: []ComponentID{
		ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](),
	}}}
}

func (f *Filter4[A, B, C, D]) Exclude(e exclusion) *Filter4[A, B, C, D] {
	f.core.exclude = e.ids
	return f
}

func (f *Filter4[A, B, C, D]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

func (f *Filter4[A, B, C, D]) ForEach(fn func(Entity, *A, *B, *C, *D)) {
	idA, idB, idC, idD := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot], &colB[slot], &colC[slot], &colD[slot])
			}
		}
	}
}

func (f *Filter4[A, B, C, D]) ParForEach(fn func(Entity, *A, *B, *C, *D)) {
	idA, idB, idC, idD := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst             *ArchetypeInstance
		colA             []A
		colB             []B
		colC             []C
		colD             []D
		r                SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, colB: colB, colC: colC, colD: colD, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot], &c.colB[slot], &c.colC[slot], &c.colD[slot])
		}
	})
}

// --- Arity 5 ---

// Filter5 is a compiled query projecting five component columns.
type Filter5[A, B, C, D, E any] struct {
	core filterCore
}

// Include5 builds a Filter5 over the registry's entities carrying A..E.
func Include5[A, B, C, D, E any](r *Registry) *Filter5[A, B, C, D, E] {
	return &Filter5[A, B, C, D, E]{core: filterCore{registry: r, include: []ComponentID{
		ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](), ComponentIDFor[E](),
	}}}
}

func (f *Filter5[A, B, C, D, E]) Exclude(e exclusion) *Filter5[A, B, C, D, E] {
	f.core.exclude = e.ids
	return f
}

func (f *Filter5[A, B, C, D, E]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

func (f *Filter5[A, B, C, D, E]) ForEach(fn func(Entity, *A, *B, *C, *D, *E)) {
	idA, idB, idC, idD, idE := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](), ComponentIDFor[E]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot], &colB[slot], &colC[slot], &colD[slot], &colE[slot])
			}
		}
	}
}

func (f *Filter5[A, B, C, D, E]) ParForEach(fn func(Entity, *A, *B, *C, *D, *E)) {
	idA, idB, idC, idD, idE := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](), ComponentIDFor[E]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst             *ArchetypeInstance
		colA             []A
		colB             []B
		colC             []C
		colD             []D
		colE             []E
		r                SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, colB: colB, colC: colC, colD: colD, colE: colE, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot], &c.colB[slot], &c.colC[slot], &c.colD[slot], &c.colE[slot])
		}
	})
}

// --- Arity 6 ---

// Filter6 is a compiled query projecting six component columns.
type Filter6[A, B, C, D, E, F any] struct {
	core filterCore
}

// Include6 builds a Filter6 over the registry's entities carrying A..F.
func Include6[A, B, C, D, E, F any](r *Registry) *Filter6[A, B, C, D, E, F] {
	return &Filter6[A, B, C, D, E, F]{core: filterCore{registry: r, include: []ComponentID{
		ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](), ComponentIDFor[E](), ComponentIDFor[F](),
	}}}
}

func (f *Filter6[A, B, C, D, E, F]) Exclude(e exclusion) *Filter6[A, B, C, D, E, F] {
	f.core.exclude = e.ids
	return f
}

func (f *Filter6[A, B, C, D, E, F]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

func (f *Filter6[A, B, C, D, E, F]) ForEach(fn func(Entity, *A, *B, *C, *D, *E, *F)) {
	idA, idB, idC, idD, idE, idF := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](), ComponentIDFor[E](), ComponentIDFor[F]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		bufF, _ := inst.GetComponent(idF)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		colF := TypedSliceUnchecked[F](bufF)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot], &colB[slot], &colC[slot], &colD[slot], &colE[slot], &colF[slot])
			}
		}
	}
}

func (f *Filter6[A, B, C, D, E, F]) ParForEach(fn func(Entity, *A, *B, *C, *D, *E, *F)) {
	idA, idB, idC, idD, idE, idF := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](), ComponentIDFor[E](), ComponentIDFor[F]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst             *ArchetypeInstance
		colA             []A
		colB             []B
		colC             []C
		colD             []D
		colE             []E
		colF             []F
		r                SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		bufF, _ := inst.GetComponent(idF)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		colF := TypedSliceUnchecked[F](bufF)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, colB: colB, colC: colC, colD: colD, colE: colE, colF: colF, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot], &c.colB[slot], &c.colC[slot], &c.colD[slot], &c.colE[slot], &c.colF[slot])
		}
	})
}

// --- Arity 7 ---

// Filter7 is a compiled query projecting seven component columns.
type Filter7[A, B, C, D, E, F, G any] struct {
	core filterCore
}

// Include7 builds a Filter7 over the registry's entities carrying A..G.
func Include7[A, B, C, D, E, F, G any](r *Registry) *Filter7[A, B, C, D, E, F, G] {
	return &Filter7[A, B, C, D, E, F, G]{core: filterCore{registry: r, include: []ComponentID{
		ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](),
		ComponentIDFor[E](), ComponentIDFor[F](), ComponentIDFor[G](),
	}}}
}

func (f *Filter7[A, B, C, D, E, F, G]) Exclude(e exclusion) *Filter7[A, B, C, D, E, F, G] {
	f.core.exclude = e.ids
	return f
}

func (f *Filter7[A, B, C, D, E, F, G]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

func (f *Filter7[A, B, C, D, E, F, G]) ForEach(fn func(Entity, *A, *B, *C, *D, *E, *F, *G)) {
	idA, idB, idC, idD := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D]()
	idE, idF, idG := ComponentIDFor[E](), ComponentIDFor[F](), ComponentIDFor[G]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		bufF, _ := inst.GetComponent(idF)
		bufG, _ := inst.GetComponent(idG)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		colF := TypedSliceUnchecked[F](bufF)
		colG := TypedSliceUnchecked[G](bufG)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot], &colB[slot], &colC[slot], &colD[slot], &colE[slot], &colF[slot], &colG[slot])
			}
		}
	}
}

func (f *Filter7[A, B, C, D, E, F, G]) ParForEach(fn func(Entity, *A, *B, *C, *D, *E, *F, *G)) {
	idA, idB, idC, idD := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D]()
	idE, idF, idG := ComponentIDFor[E](), ComponentIDFor[F](), ComponentIDFor[G]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst             *ArchetypeInstance
		colA             []A
		colB             []B
		colC             []C
		colD             []D
		colE             []E
		colF             []F
		colG             []G
		r                SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		bufF, _ := inst.GetComponent(idF)
		bufG, _ := inst.GetComponent(idG)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		colF := TypedSliceUnchecked[F](bufF)
		colG := TypedSliceUnchecked[G](bufG)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, colB: colB, colC: colC, colD: colD, colE: colE, colF: colF, colG: colG, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot], &c.colB[slot], &c.colC[slot], &c.colD[slot], &c.colE[slot], &c.colF[slot], &c.colG[slot])
		}
	})
}

// --- Arity 8 ---

// Filter8 is a compiled query projecting eight component columns — the
// engine's documented arity ceiling.
type Filter8[A, B, C, D, E, F, G, H any] struct {
	core filterCore
}

// Include8 builds a Filter8 over the registry's entities carrying A..H.
func Include8[A, B, C, D, E, F, G, H any](r *Registry) *Filter8[A, B, C, D, E, F, G, H] {
	return &Filter8[A, B, C, D, E, F, G, H]{core: filterCore{registry: r, include: []ComponentID{
		ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D](),
		ComponentIDFor[E](), ComponentIDFor[F](), ComponentIDFor[G](), ComponentIDFor[H](),
	}}}
}

func (f *Filter8[A, B, C, D, E, F, G, H]) Exclude(e exclusion) *Filter8[A, B, C, D, E, F, G, H] {
	f.core.exclude = e.ids
	return f
}

func (f *Filter8[A, B, C, D, E, F, G, H]) EntitiesForEach(fn func(Entity)) { f.core.entitiesForEach(fn) }

func (f *Filter8[A, B, C, D, E, F, G, H]) ForEach(fn func(Entity, *A, *B, *C, *D, *E, *F, *G, *H)) {
	idA, idB, idC, idD := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D]()
	idE, idF, idG, idH := ComponentIDFor[E](), ComponentIDFor[F](), ComponentIDFor[G](), ComponentIDFor[H]()
	for _, inst := range f.core.matchingArchetypes() {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		bufF, _ := inst.GetComponent(idF)
		bufG, _ := inst.GetComponent(idG)
		bufH, _ := inst.GetComponent(idH)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		colF := TypedSliceUnchecked[F](bufF)
		colG := TypedSliceUnchecked[G](bufG)
		colH := TypedSliceUnchecked[H](bufH)
		for _, r := range inst.UsedRanges() {
			for slot := r.Start; slot < r.End; slot++ {
				fn(inst.Entity(slot), &colA[slot], &colB[slot], &colC[slot], &colD[slot], &colE[slot], &colF[slot], &colG[slot], &colH[slot])
			}
		}
	}
}

func (f *Filter8[A, B, C, D, E, F, G, H]) ParForEach(fn func(Entity, *A, *B, *C, *D, *E, *F, *G, *H)) {
	idA, idB, idC, idD := ComponentIDFor[A](), ComponentIDFor[B](), ComponentIDFor[C](), ComponentIDFor[D]()
	idE, idF, idG, idH := ComponentIDFor[E](), ComponentIDFor[F](), ComponentIDFor[G](), ComponentIDFor[H]()
	registry, archetypes := f.core.parForEachRanges()

	type chunk struct {
		inst             *ArchetypeInstance
		colA             []A
		colB             []B
		colC             []C
		colD             []D
		colE             []E
		colF             []F
		colG             []G
		colH             []H
		r                SlotRange
	}
	var chunks []chunk
	for _, inst := range archetypes {
		bufA, _ := inst.GetComponent(idA)
		bufB, _ := inst.GetComponent(idB)
		bufC, _ := inst.GetComponent(idC)
		bufD, _ := inst.GetComponent(idD)
		bufE, _ := inst.GetComponent(idE)
		bufF, _ := inst.GetComponent(idF)
		bufG, _ := inst.GetComponent(idG)
		bufH, _ := inst.GetComponent(idH)
		colA := TypedSliceUnchecked[A](bufA)
		colB := TypedSliceUnchecked[B](bufB)
		colC := TypedSliceUnchecked[C](bufC)
		colD := TypedSliceUnchecked[D](bufD)
		colE := TypedSliceUnchecked[E](bufE)
		colF := TypedSliceUnchecked[F](bufF)
		colG := TypedSliceUnchecked[G](bufG)
		colH := TypedSliceUnchecked[H](bufH)
		for _, r := range inst.UsedRanges() {
			chunks = append(chunks, chunk{inst: inst, colA: colA, colB: colB, colC: colC, colD: colD, colE: colE, colF: colF, colG: colG, colH: colH, r: r})
		}
	}

	runParForEach(registry, len(chunks), func(i int) {
		c := chunks[i]
		for slot := c.r.Start; slot < c.r.End; slot++ {
			fn(c.inst.Entity(slot), &c.colA[slot], &c.colB[slot], &c.colC[slot], &c.colD[slot], &c.colE[slot], &c.colF[slot], &c.colG[slot], &c.colH[slot])
		}
	})
}
