package ecs

import (
	"reflect"
	"slices"
	"weak"
)

// Storage is the entity store: it owns every archetype, entity, and singleton
// of one world. It is not safe for concurrent use; the scheduler runs one
// system at a time against it.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	byKey      map[string]*Archetype
	singletons map[reflect.Type]any
}

// NewStorage creates an empty store whose component types come from registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		byKey:      make(map[string]*Archetype),
		singletons: make(map[reflect.Type]any),
	}
}

// Registry returns the component registry the store was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// archetypeFor returns the archetype for a canonical type set, creating it on
// first use. Hash collisions are resolved by probing the next id.
func (s *Storage) archetypeFor(types []reflect.Type, key string) *Archetype {
	if a, ok := s.byKey[key]; ok {
		return a
	}
	id := hashKey(key)
	for {
		if _, taken := s.archetypes[id]; !taken && id != 0 {
			break
		}
		id++
	}
	a := newArchetype(id, key, types, s.registry)
	s.archetypes[id] = a
	s.byKey[key] = a
	return a
}

// canonical sorts components into archetype order and rejects duplicates.
func canonical(components []any) ([]any, []reflect.Type, string) {
	types := make([]reflect.Type, len(components))
	byType := make(map[reflect.Type]any, len(components))
	for i, comp := range components {
		t := componentType(comp)
		if _, dup := byType[t]; dup {
			panic("ecs: duplicate component " + t.String())
		}
		types[i] = t
		byType[t] = comp
	}
	key := sortTypes(types)
	sorted := make([]any, len(types))
	for i, t := range types {
		sorted[i] = byType[t]
	}
	return sorted, types, key
}

// Spawn creates an entity with the given components and returns its id.
// Components may be passed by value or by pointer; they are always copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}
	sorted, types, key := canonical(components)
	a := s.archetypeFor(types, key)
	return NewEntityId(a.id, a.spawn(sorted))
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	a, ok := s.archetypes[id.ArchetypeId()]
	return ok && a.alive(id.Index())
}

// Delete removes the entity. Unknown or already deleted ids are ignored.
// Owned children are left alone; see DeleteRecursive.
func (s *Storage) Delete(id EntityId) {
	if !s.Alive(id) {
		return
	}
	s.archetypes[id.ArchetypeId()].delete(id.Index())
}

// AddComponent attaches component to the entity, moving it to a new
// archetype, and returns the entity's new id. If the entity already has a
// component of that type the value is overwritten in place.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	if !s.Alive(id) {
		return 0
	}
	old := s.archetypes[id.ArchetypeId()]
	t := componentType(component)

	if existing := old.GetComponent(id.Index(), t); existing != nil {
		reflect.ValueOf(existing).Elem().Set(reflect.Indirect(reflect.ValueOf(component)))
		return id
	}

	components := make([]any, 0, len(old.types)+1)
	for _, typ := range old.types {
		components = append(components, old.GetComponent(id.Index(), typ))
	}
	components = append(components, component)
	return s.move(id, components)
}

// RemoveComponent detaches the t component and returns the entity's new id.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, t reflect.Type) EntityId {
	if !s.Alive(id) {
		return 0
	}
	old := s.archetypes[id.ArchetypeId()]
	if !old.HasComponent(t) {
		return id
	}
	if len(old.types) == 1 {
		old.delete(id.Index())
		return 0
	}

	components := make([]any, 0, len(old.types)-1)
	for _, typ := range old.types {
		if typ != t {
			components = append(components, old.GetComponent(id.Index(), typ))
		}
	}
	return s.move(id, components)
}

// move copies components into the archetype matching their types, carries
// any EntityRef across, and frees the old slot.
func (s *Storage) move(id EntityId, components []any) EntityId {
	old := s.archetypes[id.ArchetypeId()]
	sorted, types, key := canonical(components)
	target := s.archetypeFor(types, key)
	newId := NewEntityId(target.id, target.spawn(sorted))

	if wp, ok := old.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = target
			target.refs.Put(newId, wp)
		}
		old.refs.Del(id)
	}

	old.delete(id.Index())
	return newId
}

// GetComponent returns a pointer to the entity's t component, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	a, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return a.GetComponent(id.Index(), t)
}

// HasComponent reports whether the live entity carries a t component.
func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.GetComponent(id, t) != nil
}

// CreateEntityRef returns the stable reference for id, reusing one that is
// still held somewhere. Returns nil if the entity does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	if !s.Alive(id) {
		return nil
	}
	a := s.archetypes[id.ArchetypeId()]
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		a.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: a}
	a.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id of the referenced entity.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting the entity.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}
	if a := s.archetypes[ref.Id.ArchetypeId()]; a != nil {
		a.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype whose type set matches the given
// component values, or nil if no entity was ever stored with that set.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := make([]reflect.Type, len(components))
	for i, comp := range components {
		types[i] = componentType(comp)
	}
	return s.byKey[sortTypes(types)]
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetypes returns all archetypes ordered by id.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, a := range s.archetypes {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *Archetype) int {
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return out
}

// ComponentReader is anything that can look up a component by entity and type.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the entity's T component, or nil.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
