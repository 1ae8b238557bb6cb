package debugui

import (
	"image/color"
	"math"
	"reflect"
	"sync"
	"time"
)

// FieldKind says how the inspector presents a field.
type FieldKind int

const (
	KindReadOnly FieldKind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	KindString
	KindDuration
	KindColor
	KindStruct
)

var (
	typeOfDuration = reflect.TypeFor[time.Duration]()
	typeOfRGBA     = reflect.TypeFor[color.RGBA]()
)

type FieldInfo struct {
	Name  string
	Type  reflect.Type
	Index int
	Kind  FieldKind
}

// ReflectionCache remembers the exported fields of component types.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:  field.Name,
				Type:  field.Type,
				Index: i,
				Kind:  KindOf(field.Type),
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

// KindOf classifies t for editing.
func KindOf(t reflect.Type) FieldKind {
	switch t {
	case typeOfDuration:
		return KindDuration
	case typeOfRGBA:
		return KindColor
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return KindUint
	case reflect.Float32, reflect.Float64:
		return KindFloat
	case reflect.Bool:
		return KindBool
	case reflect.String:
		return KindString
	case reflect.Struct:
		return KindStruct
	}
	return KindReadOnly
}

// SetNumber stores x in v, converting and clamping it to v's kind. It
// reports whether v was changed.
func SetNumber(v reflect.Value, x float64) bool {
	if !v.CanSet() {
		return false
	}
	switch KindOf(v.Type()) {
	case KindInt, KindDuration:
		shift := 64 - v.Type().Bits()
		var n int64
		switch x = math.Round(x); {
		case x >= math.Ldexp(1, 63-shift):
			n = math.MaxInt64 >> shift
		case x <= -math.Ldexp(1, 63-shift):
			n = math.MinInt64 >> shift
		default:
			n = int64(x)
		}
		if v.Int() == n {
			return false
		}
		v.SetInt(n)
	case KindUint:
		shift := 64 - v.Type().Bits()
		var n uint64
		switch x = math.Round(x); {
		case x >= math.Ldexp(1, 64-shift):
			n = math.MaxUint64 >> shift
		case x > 0:
			n = uint64(x)
		}
		if v.Uint() == n {
			return false
		}
		v.SetUint(n)
	case KindFloat:
		if v.Float() == x {
			return false
		}
		v.SetFloat(x)
	default:
		return false
	}
	return true
}

var globalReflectionCache = NewReflectionCache()
