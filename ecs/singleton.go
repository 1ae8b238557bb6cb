package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
)

// Singleton gives a system direct access to one world-wide value of type T,
// such as configuration or the camera. Singletons are not entities and need
// no registration.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for the T singleton, creating it from
// initializer (or the zero value) if the storage does not have one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if _, ok := storage.singletons[reflect.TypeFor[T]()]; !ok {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}
	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage. The scheduler calls it on Register.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

// Get returns the singleton, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added to the storage.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	s.ptr, _ = s.storage.singletons[reflect.TypeFor[T]()].(*T)
}

// AddSingleton stores a copy of value as the singleton of its type,
// replacing any previous value in place so existing accessors stay valid.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	t := v.Type()
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		v = v.Elem()
	}
	if existing, ok := s.singletons[t]; ok {
		reflect.ValueOf(existing).Elem().Set(v)
		return
	}
	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = ptr.Interface()
}

// ReadSingleton fills target, which must be a **T, with the stored T
// singleton. It returns false if there is none.
//
//	var cam *Camera
//	if storage.ReadSingleton(&cam) { ... }
func (s *Storage) ReadSingleton(target any) bool {
	tv := reflect.ValueOf(target)
	if tv.Kind() != reflect.Pointer || tv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton target must be a pointer to a pointer")
	}
	stored, ok := s.singletons[tv.Elem().Type().Elem()]
	if !ok {
		return false
	}
	tv.Elem().Set(reflect.ValueOf(stored))
	return true
}

// Singletons yields every stored singleton as a pointer to its value,
// ordered by type name.
func (s *Storage) Singletons() iter.Seq2[reflect.Type, any] {
	types := make([]reflect.Type, 0, len(s.singletons))
	for t := range s.singletons {
		types = append(types, t)
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return cmp.Compare(a.String(), b.String())
	})
	return func(yield func(reflect.Type, any) bool) {
		for _, t := range types {
			if !yield(t, s.singletons[t]) {
				return
			}
		}
	}
}
