package debugui

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/ballz/engine"
)

// ResourceInspector lists session resources and edits their exported
// fields in place.
type ResourceInspector struct {
	resources *engine.Resources
	selected  string
}

// NewResourceInspector inspects the given resource set.
func NewResourceInspector(resources *engine.Resources) *ResourceInspector {
	return &ResourceInspector{resources: resources}
}

func (ri *ResourceInspector) Render() {
	if !imgui.BeginV("Resources", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, name := range ri.resources.Types() {
		if imgui.Button(name) {
			ri.selected = name
		}
	}
	imgui.Separator()

	if ri.selected == "" {
		imgui.Text("No resource selected")
		imgui.End()
		return
	}

	entry := ri.resources.Lookup(ri.selected)
	if entry == nil {
		imgui.Text(fmt.Sprintf("%s not found", ri.selected))
		imgui.End()
		return
	}

	imgui.Text(ri.selected)
	val := reflect.ValueOf(entry).Elem()
	fields := fieldCache.get(val.Type())
	if len(fields) == 0 {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
	}
	for _, field := range fields {
		renderField(field.name, val.Field(field.index))
	}

	imgui.End()
}

func renderField(name string, val reflect.Value) {
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			imgui.Text(fmt.Sprintf("%s: nil", name))
			return
		}
		val = val.Elem()
	}

	if val.Type() == reflect.TypeFor[time.Duration]() {
		imgui.Text(fmt.Sprintf("%s: %s", name, time.Duration(val.Int())))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setNumber(val, float64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setNumber(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) && val.CanSet() {
			val.SetBool(v)
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range fieldCache.get(val.Type()) {
				renderField(nf.name, val.Field(nf.index))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	default:
		if val.CanInterface() {
			imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		}
	}
}

// setNumber stores f into a settable int, uint or float value, truncating
// toward zero for integers. It reports whether the value was changed.
func setNumber(val reflect.Value, f float64) bool {
	if !val.CanSet() {
		return false
	}
	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if val.OverflowInt(int64(f)) {
			return false
		}
		val.SetInt(int64(f))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if f < 0 || val.OverflowUint(uint64(f)) {
			return false
		}
		val.SetUint(uint64(f))
	case reflect.Float32, reflect.Float64:
		val.SetFloat(f)
	default:
		return false
	}
	return true
}

type fieldInfo struct {
	name  string
	index int
}

type fieldInfoCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

func (c *fieldInfoCache) get(t reflect.Type) []fieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			if f := t.Field(i); f.IsExported() {
				fields = append(fields, fieldInfo{name: f.Name, index: i})
			}
		}
	}

	c.mu.Lock()
	c.fields[t] = fields
	c.mu.Unlock()
	return fields
}

var fieldCache = &fieldInfoCache{fields: make(map[reflect.Type][]fieldInfo)}
