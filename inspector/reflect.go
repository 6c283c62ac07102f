package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// Widget selects how a field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"angle": WidgetAngle,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

func (w Widget) String() string {
	for name, v := range widgetNames {
		if v == w {
			return name
		}
	}
	return "auto"
}

// Hint holds the options of an inspect tag.
type Hint struct {
	Format string  // fmt verb for labels, "fmt:%.1f"
	Max    float64 // full-scale value for bars, "max:10"
	Label  string  // display name override, "name:Turn"
}

// ParseTag parses an inspect struct tag of the form
// `inspect:"widget[,key:value...]"`, e.g. `inspect:"bar,max:10"`.
// Unknown widgets and keys are ignored.
func ParseTag(tag string) (Widget, Hint) {
	var h Hint
	head, rest, _ := strings.Cut(tag, ",")
	w := widgetNames[strings.TrimSpace(head)]

	for _, opt := range strings.Split(rest, ",") {
		key, val, ok := strings.Cut(strings.TrimSpace(opt), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			h.Format = val
		case "max":
			if m, err := strconv.ParseFloat(val, 64); err == nil && m > 0 {
				h.Max = m
			}
		case "name":
			h.Label = val
		}
	}
	return w, h
}

// Field is one resolved, drawable component field.
type Field struct {
	Name   string
	Widget Widget
	Hint   Hint
	Value  any

	// Number is Value as a float64 when Numeric is set.
	Number  float64
	Numeric bool
}

// Text formats Value for a label.
func (f Field) Text() string {
	if f.Hint.Format != "" {
		return fmt.Sprintf(f.Hint.Format, f.Value)
	}
	if f.Numeric && isFloat(f.Value) {
		return strconv.FormatFloat(f.Number, 'f', 2, 64)
	}
	return fmt.Sprint(f.Value)
}

// Fill returns the bar fill ratio in [0, 1]. Bars default to a full scale of 1.
func (f Field) Fill() float64 {
	full := f.Hint.Max
	if full <= 0 {
		full = 1
	}
	return min(max(f.Number/full, 0), 1)
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

// fieldLayout is the per-type part of a Field, computed once per struct type.
type fieldLayout struct {
	index  int
	name   string
	widget Widget
	hint   Hint
}

var layouts sync.Map // reflect.Type -> []fieldLayout

func layoutOf(t reflect.Type) []fieldLayout {
	if l, ok := layouts.Load(t); ok {
		return l.([]fieldLayout)
	}

	var out []fieldLayout
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		w, h := ParseTag(sf.Tag.Get("inspect"))
		if w == WidgetSkip {
			continue
		}
		name := sf.Name
		if h.Label != "" {
			name = h.Label
		}
		out = append(out, fieldLayout{index: i, name: name, widget: resolveWidget(w, sf.Type.Kind()), hint: h})
	}

	layouts.Store(t, out)
	return out
}

// resolveWidget picks a widget the field's kind can actually feed;
// bars and angles need numbers, toggles need bools.
func resolveWidget(w Widget, k reflect.Kind) Widget {
	switch w {
	case WidgetBar, WidgetAngle:
		if numericKind(k) {
			return w
		}
	case WidgetBool:
		if k == reflect.Bool {
			return w
		}
	case WidgetAuto:
		if k == reflect.Bool {
			return WidgetBool
		}
	}
	return WidgetLabel
}

func numericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) (float64, bool) {
	switch {
	case v.CanFloat():
		return v.Float(), true
	case v.CanInt():
		return float64(v.Int()), true
	case v.CanUint():
		return float64(v.Uint()), true
	}
	return 0, false
}

// ExtractFields returns the drawable fields of a component struct or a
// pointer to one. Anything else, including a nil pointer, yields nil.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	layout := layoutOf(v.Type())
	fields := make([]Field, len(layout))
	for i, l := range layout {
		fv := v.Field(l.index)
		n, numeric := toFloat(fv)
		fields[i] = Field{
			Name:    l.name,
			Widget:  l.widget,
			Hint:    l.hint,
			Value:   fv.Interface(),
			Number:  n,
			Numeric: numeric,
		}
	}
	return fields
}

// ComponentName returns the type name of a component for section headers.
func ComponentName(component any) string {
	t := reflect.TypeOf(component)
	if t == nil {
		return ""
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
