package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// View is an uncached query over entities that have a given set of
// components. T must be a struct whose fields are pointers to component types:
//
//	struct {
//		ecs.EntityId            // optional, filled with the entity's id
//		*Position               // required
//		Lifetime *Lifetime `ecs:"optional"`
//	}
//
// Embedded pointer fields are always required. Pointers handed out stay valid
// until the entity is deleted or changes archetype.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

// NewView builds a view over storage. It panics if T is not a valid view struct.
func NewView[T any](storage *Storage) *View[T] {
	v := &View[T]{storage: storage}
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	for i := 0; i < st.NumField(); i++ {
		f := st.Field(i)
		if f.Type == entityIdType {
			v.idOffset = f.Offset
			v.hasId = true
			continue
		}
		if f.Type.Kind() != reflect.Pointer {
			panic("ecs: View struct fields must be pointer types or ecs.EntityId")
		}

		optional := false
		if tag := f.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || f.Anonymous {
				panic("ecs: invalid ecs tag \"" + tag + "\" on field " + f.Name)
			}
			optional = true
		}
		v.fields = append(v.fields, viewField{
			typ:      f.Type.Elem(),
			offset:   f.Offset,
			optional: optional,
		})
	}
	return v
}

// matches reports whether a has every required component of the view.
func (v *View[T]) matches(a *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !a.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor maps each view field to a column of a, or -1 when absent.
func (v *View[T]) columnsFor(a *Archetype) []int {
	cols := make([]int, len(v.fields))
	for i, f := range v.fields {
		cols[i] = a.columnIndex(f.typ)
	}
	return cols
}

func (v *View[T]) fill(out *T, a *Archetype, index int, cols []int) bool {
	base := unsafe.Pointer(out)
	for i, f := range v.fields {
		slot := (*unsafe.Pointer)(unsafe.Add(base, f.offset))
		var comp any
		if cols[i] >= 0 {
			comp = a.columns[cols[i]].Get(index)
		}
		if comp == nil {
			if !f.optional {
				return false
			}
			*slot = nil
			continue
		}
		*slot = reflect.ValueOf(comp).UnsafePointer()
	}
	if v.hasId {
		*(*EntityId)(unsafe.Add(base, v.idOffset)) = NewEntityId(a.id, uint32(index))
	}
	return true
}

// Get returns the view of one entity, or nil if it lacks a required component.
func (v *View[T]) Get(id EntityId) *T {
	a, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !a.alive(id.Index()) {
		return nil
	}
	var out T
	if !v.fill(&out, a, int(id.Index()), v.columnsFor(a)) {
		return nil
	}
	return &out
}

// GetRef is Get for an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

// Iter yields the view of every matching entity. Structural changes to the
// storage during iteration are not supported; use Commands.
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, a := range v.storage.archetypes {
			if !v.matches(a) {
				continue
			}
			if !iterArchetype(v, a, v.columnsFor(a), yield) {
				return
			}
		}
	}
}

// Count returns the number of matching entities.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// Spawn creates an entity from the non-nil component fields of data.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)
	components := make([]any, 0, len(v.fields))
	for _, f := range v.fields {
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if ptr == nil {
			if !f.optional {
				panic("ecs: required component " + f.typ.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(f.typ, ptr).Elem().Interface())
	}
	return v.storage.Spawn(components...)
}

func iterArchetype[T any](v *View[T], a *Archetype, cols []int, yield func(T) bool) bool {
	if len(a.columns) == 0 {
		return true
	}
	var out T
	for index := range a.columns[0].Iter() {
		if !v.fill(&out, a, index, cols) {
			continue
		}
		if !yield(out) {
			return false
		}
	}
	return true
}
