package ecs

import (
	"reflect"
	"slices"
)

// Parent marks an entity as owned by another entity.
type Parent struct {
	Ref *EntityRef
}

// Children lists the entities an entity owns. Refs of deleted children are
// pruned lazily.
type Children struct {
	Refs []*EntityRef
}

// SetParent makes parent own child, detaching child from any previous owner.
// Both entities may change archetype; their current ids are returned. It
// panics if the link would make an entity its own ancestor.
func (s *Storage) SetParent(child, parent EntityId) (EntityId, EntityId) {
	if !s.Alive(child) || !s.Alive(parent) {
		return child, parent
	}
	seen := make(map[EntityId]bool)
	for e, ok := parent, true; ok && !seen[e]; e, ok = s.ParentOf(e) {
		if e == child {
			panic("ecs: SetParent would create an ownership cycle")
		}
		seen[e] = true
	}

	s.detachFromParent(child)

	childRef := s.CreateEntityRef(child)
	parentRef := s.CreateEntityRef(parent)

	s.AddComponent(childRef.Id, Parent{Ref: parentRef})

	if children := ReadComponent[Children](s, parentRef.Id); children != nil {
		children.Refs = append(children.Refs, childRef)
	} else {
		s.AddComponent(parentRef.Id, Children{Refs: []*EntityRef{childRef}})
	}

	return childRef.Id, parentRef.Id
}

// RemoveParent detaches child from its owner, if any, and returns its id.
func (s *Storage) RemoveParent(child EntityId) EntityId {
	if _, ok := s.ParentOf(child); !ok {
		return child
	}
	s.detachFromParent(child)
	return s.RemoveComponent(child, typeOfParent)
}

// ParentOf returns the owner of id, if it has a live one.
func (s *Storage) ParentOf(id EntityId) (EntityId, bool) {
	p := ReadComponent[Parent](s, id)
	if p == nil {
		return 0, false
	}
	return s.ResolveEntityRef(p.Ref)
}

// ChildrenOf returns the live entities owned by id.
func (s *Storage) ChildrenOf(id EntityId) []EntityId {
	c := ReadComponent[Children](s, id)
	if c == nil {
		return nil
	}
	out := make([]EntityId, 0, len(c.Refs))
	for _, ref := range c.Refs {
		if ref.Valid() {
			out = append(out, ref.Id)
		}
	}
	return out
}

// DeleteRecursive removes id and, depth first, everything it owns. Each
// entity is removed once even if the ownership links are malformed. It
// returns the removed ids, children before their owners. Unknown ids are a
// no-op.
func (s *Storage) DeleteRecursive(id EntityId) []EntityId {
	if !s.Alive(id) {
		return nil
	}
	s.detachFromParent(id)

	var order []EntityId
	visited := make(map[EntityId]bool)
	var walk func(EntityId)
	walk = func(e EntityId) {
		if visited[e] || !s.Alive(e) {
			return
		}
		visited[e] = true
		if c := ReadComponent[Children](s, e); c != nil {
			for _, ref := range c.Refs {
				if ref.Valid() {
					walk(ref.Id)
				}
			}
		}
		order = append(order, e)
	}
	walk(id)

	for _, e := range order {
		s.Delete(e)
	}
	return order
}

// detachFromParent drops child from its owner's Children list. The child's
// own Parent component is left for the caller to update or remove.
func (s *Storage) detachFromParent(child EntityId) {
	parent, ok := s.ParentOf(child)
	if !ok {
		return
	}
	c := ReadComponent[Children](s, parent)
	if c == nil {
		return
	}
	c.Refs = slices.DeleteFunc(c.Refs, func(ref *EntityRef) bool {
		return !ref.Valid() || ref.Id == child
	})
}

var typeOfParent = reflect.TypeFor[Parent]()
