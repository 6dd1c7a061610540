package ecs

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/kamstrup/intmap"
)

// ComponentID is a process-wide dense identifier assigned to a component
// kind the first time it is seen. It is stable for the lifetime of the
// process and never reused; it is NOT stable across process runs. The
// value 0 is reserved to mean "unset".
type ComponentID uint32

// ComponentType is the runtime descriptor for a component kind: its
// identity, size/alignment, and default-construct/drop/copy functions.
// Two ComponentTypes are equal, and hash equal, iff their IDs match.
type ComponentType struct {
	id   ComponentID
	desc componentDescriptor
}

// ID returns the component kind's process-wide identifier.
func (c ComponentType) ID() ComponentID { return c.id }

var (
	componentIDCounter uint32 // atomic; last ID handed out (0 before any), i.e. the registered count

	componentRegistryMu sync.Mutex
	// typeToID is a plain map because reflect.Type is not an integer key;
	// it is already comparable and designed to be used this way.
	typeToID = make(map[reflect.Type]ComponentID)
	// idToType is keyed by the dense ComponentID space, so it uses
	// intmap rather than Go's built-in map for the hot lookup path.
	idToType = intmap.New[uint64, reflect.Type](64)
)

// ComponentIDFor returns the process-wide ComponentID for T, registering
// it on first sight.
func ComponentIDFor[T any]() ComponentID {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		t = reflect.TypeOf(&zero).Elem()
	}
	return componentIDForType(t)
}

func componentIDForType(t reflect.Type) ComponentID {
	componentRegistryMu.Lock()
	defer componentRegistryMu.Unlock()

	if id, ok := typeToID[t]; ok {
		return id
	}
	id := ComponentID(atomic.AddUint32(&componentIDCounter, 1))
	typeToID[t] = id
	idToType.Put(uint64(id), t)
	return id
}

// componentTypeFor returns the full ComponentType descriptor for T,
// registering its ComponentID on first sight.
func componentTypeFor[T any]() ComponentType {
	id := ComponentIDFor[T]()
	return ComponentType{id: id, desc: descriptorFor[T](id)}
}

// componentGoType returns the reflect.Type registered for id, if any.
func componentGoType(id ComponentID) (reflect.Type, bool) {
	return idToType.Get(uint64(id))
}

// registeredComponentCount returns the number of component kinds
// registered so far, process-wide.
func registeredComponentCount() int {
	return int(atomic.LoadUint32(&componentIDCounter))
}

// resetComponentRegistryForTests clears all process-wide component
// registration state. It exists purely as a test hook, matching the
// spec's requirement that global interning state expose a reset hook.
func resetComponentRegistryForTests() {
	componentRegistryMu.Lock()
	defer componentRegistryMu.Unlock()
	atomic.StoreUint32(&componentIDCounter, 0)
	typeToID = make(map[reflect.Type]ComponentID)
	idToType = intmap.New[uint64, reflect.Type](64)
}
