package ecs

import (
	"hash/fnv"
	"reflect"
	"slices"
	"strings"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype holds every entity that has exactly one particular set of
// component types. Each type gets its own column; an entity's slot index is
// the same in all of them.
type Archetype struct {
	id      uint32
	key     string
	types   []reflect.Type
	columns []column
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, key string, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		key:     key,
		types:   types,
		columns: make([]column, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
	}
	return a
}

// ID returns the archetype's identifier, which is also the upper half of
// every EntityId it hands out.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype in canonical order.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// HasComponent reports whether entities of this archetype carry t.
func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.columnIndex(t) >= 0
}

func (a *Archetype) columnIndex(t reflect.Type) int {
	for i, typ := range a.types {
		if typ == t {
			return i
		}
	}
	return -1
}

// spawn stores components (already in canonical order) and returns the slot.
func (a *Archetype) spawn(components []any) uint32 {
	slot := -1
	for i, comp := range components {
		slot = a.columns[i].Append(comp)
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the t component at index, or nil.
func (a *Archetype) GetComponent(index uint32, t reflect.Type) any {
	i := a.columnIndex(t)
	if i < 0 {
		return nil
	}
	return a.columns[i].Get(int(index))
}

func (a *Archetype) alive(index uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(index))
}

// delete frees the slot and invalidates any EntityRef that pointed at it.
func (a *Archetype) delete(index uint32) {
	id := NewEntityId(a.id, index)
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	for _, col := range a.columns {
		col.Delete(int(index))
	}
}

// Iter yields the id of every live entity in the archetype.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}

func typeKey(t reflect.Type) string {
	if t.PkgPath() != "" {
		return t.PkgPath() + "." + t.Name()
	}
	return t.String()
}

// componentType normalizes a component value to the type it is stored under.
func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("ecs: nil component")
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return t
}

// sortTypes puts types in canonical order and returns the archetype key.
func sortTypes(types []reflect.Type) string {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(typeKey(a), typeKey(b))
	})
	keys := make([]string, len(types))
	for i, t := range types {
		keys[i] = typeKey(t)
	}
	return strings.Join(keys, "|")
}

func hashKey(key string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(key))
	return h.Sum32()
}

// ComponentTypeOf returns the type a component value is stored under.
func ComponentTypeOf(component any) reflect.Type {
	return componentType(component)
}
