package debugui

import (
	"fmt"
	"image/color"
	"reflect"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lifeforms/ecs"
)

// ComponentInspector shows the components of one entity and edits their
// exported fields in place.
type ComponentInspector struct {
	fields *ReflectionCache
}

func NewComponentInspector() *ComponentInspector {
	return &ComponentInspector{fields: globalReflectionCache}
}

// Render draws the components of id. It returns the entity to select next:
// id itself, a parent or child the user navigated to, or 0 once id is gone.
func (ci *ComponentInspector) Render(storage *ecs.Storage, id ecs.EntityId) ecs.EntityId {
	if id == 0 {
		imgui.Text("No entity selected")
		return 0
	}
	archetype := storage.GetArchetypeById(id.ArchetypeId())
	if archetype == nil || !storage.Alive(id) {
		imgui.Text(fmt.Sprintf("Entity %d no longer exists", id))
		return 0
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", archetype.ID()))

	next := id
	if parent, ok := storage.ParentOf(id); ok {
		if imgui.Button(fmt.Sprintf("Owner %d", parent)) {
			next = parent
		}
	}
	for _, child := range storage.ChildrenOf(id) {
		if imgui.Button(fmt.Sprintf("Owns %d", child)) {
			next = child
		}
	}
	if imgui.Button("Delete") {
		storage.DeleteRecursive(id)
		return 0
	}
	imgui.Separator()

	for _, compType := range archetype.Types() {
		component := storage.GetComponent(id, compType)
		if component == nil {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			ci.renderValue(compType.String(), reflect.ValueOf(component).Elem())
			imgui.TreePop()
		}
	}
	return next
}

// RenderValue edits the struct pointed to by ptr, such as a singleton.
func (ci *ComponentInspector) RenderValue(label string, ptr any) {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		imgui.Text(fmt.Sprintf("%s: %v", label, ptr))
		return
	}
	ci.renderValue(label, v.Elem())
}

func (ci *ComponentInspector) renderValue(path string, val reflect.Value) {
	if val.Kind() != reflect.Struct {
		ci.renderField(path, "value", val)
		return
	}
	fields := ci.fields.GetFields(val.Type())
	if len(fields) == 0 {
		imgui.Text("(no fields)")
	}
	for _, field := range fields {
		ci.renderField(path+"."+field.Name, field.Name, val.Field(field.Index))
	}
}

func (ci *ComponentInspector) renderField(path, name string, val reflect.Value) {
	id := "##" + path

	switch KindOf(val.Type()) {
	case KindInt, KindUint:
		v := int32(0)
		if val.CanInt() {
			v = int32(max(-1<<31, min(1<<31-1, val.Int())))
		} else {
			v = int32(min(1<<31-1, val.Uint()))
		}
		label(name)
		if imgui.InputInt(id, &v) {
			SetNumber(val, float64(v))
		}

	case KindFloat:
		v := float32(val.Float())
		label(name)
		if imgui.InputFloat(id, &v) {
			SetNumber(val, float64(v))
		}

	case KindDuration:
		v := float32(time.Duration(val.Int()).Seconds())
		label(name + " (s)")
		if imgui.InputFloat(id, &v) {
			SetNumber(val, float64(v)*float64(time.Second))
		}

	case KindBool:
		v := val.Bool()
		if imgui.Checkbox(name+id, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case KindString:
		v := val.String()
		label(name)
		if imgui.InputTextWithHint(id, "", &v, imgui.InputTextFlagsNone, nil) && val.CanSet() {
			val.SetString(v)
		}

	case KindColor:
		c := val.Interface().(color.RGBA)
		col := [4]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
		if imgui.ColorEdit4(name+id, &col) && val.CanSet() {
			val.Set(reflect.ValueOf(color.RGBA{
				R: uint8(col[0]*255 + 0.5),
				G: uint8(col[1]*255 + 0.5),
				B: uint8(col[2]*255 + 0.5),
				A: uint8(col[3]*255 + 0.5),
			}))
		}

	case KindStruct:
		if imgui.TreeNodeStr(name + id) {
			ci.renderValue(path, val)
			imgui.TreePop()
		}

	default:
		switch val.Kind() {
		case reflect.Slice:
			imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))
		case reflect.Map:
			imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))
		case reflect.Pointer, reflect.Func, reflect.Interface:
			if val.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", name))
				return
			}
			if ref, ok := val.Interface().(*ecs.EntityRef); ok {
				imgui.Text(fmt.Sprintf("%s: entity %d", name, ref.Id))
				return
			}
			imgui.Text(fmt.Sprintf("%s: %s", name, val.Type()))
		default:
			imgui.Text(fmt.Sprintf("%s: %v", name, val))
		}
	}
}

func label(name string) {
	imgui.Text(name + ":")
	imgui.SameLine()
	imgui.SetNextItemWidth(150)
}
