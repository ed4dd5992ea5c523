package engine

import (
	"reflect"
	"slices"
)

// Resources holds one value per type, shared by every system of a scheduler.
// Systems reach frame state through it: the ball, the platform, the score.
type Resources struct {
	entries map[reflect.Type]any
}

// NewResources creates an empty resource set.
func NewResources() *Resources {
	return &Resources{entries: make(map[reflect.Type]any)}
}

// Insert stores value as the resource of type T and returns a pointer to the
// stored copy. If the resource already exists it is overwritten in place so
// pointers held by systems remain valid.
func Insert[T any](r *Resources, value T) *T {
	typ := reflect.TypeFor[T]()
	if existing, ok := r.entries[typ]; ok {
		ptr := existing.(*T)
		*ptr = value
		return ptr
	}

	ptr := new(T)
	*ptr = value
	r.entries[typ] = ptr
	return ptr
}

// Get returns the resource of type T, or nil if it was never inserted.
func Get[T any](r *Resources) *T {
	if r == nil {
		return nil
	}
	entry, ok := r.entries[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return entry.(*T)
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.entries)
}

// Lookup returns a pointer to the resource with the given type name, as
// listed by Types, or nil.
func (r *Resources) Lookup(name string) any {
	for typ, entry := range r.entries {
		if typ.String() == name {
			return entry
		}
	}
	return nil
}

// Types returns the sorted type names of every stored resource.
func (r *Resources) Types() []string {
	names := make([]string, 0, len(r.entries))
	for typ := range r.entries {
		names = append(names, typ.String())
	}
	slices.Sort(names)
	return names
}

// Resource provides cached access to a single resource from a system field.
// The Scheduler calls Init for every Resource field during Register.
type Resource[T any] struct {
	resources *Resources
	ptr       *T
}

// Init binds the accessor to a resource set.
func (r *Resource[T]) Init(resources *Resources) {
	r.resources = resources
	r.ptr = Get[T](resources)
}

// Get returns the bound resource, or nil if it does not exist yet.
func (r *Resource[T]) Get() *T {
	if r.ptr == nil {
		r.ptr = Get[T](r.resources)
	}
	return r.ptr
}

// Exists reports whether the resource has been inserted.
func (r *Resource[T]) Exists() bool {
	return r.Get() != nil
}
