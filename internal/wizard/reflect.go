package wizard

import (
	"reflect"
	"strings"

	"edureg/pkg/types"
)

const fieldTag = "form"

var attachmentType = reflect.TypeOf(types.Attachment{})

// isDefault reports whether v holds its default value. Nil and empty slices
// are treated alike.
func isDefault(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).PkgPath != "" {
				continue
			}
			if !isDefault(v.Field(i)) {
				return false
			}
		}
		return true
	default:
		return v.IsZero()
	}
}

// deepCopy copies v so that slices and pointers are not shared with the
// source.
func deepCopy(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Ptr:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(deepCopy(v.Elem()))
		return out
	case reflect.Slice:
		if v.IsNil() {
			return reflect.Zero(v.Type())
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		if v.Type().Elem().Kind() == reflect.Uint8 {
			reflect.Copy(out, v)
			return out
		}
		for i := 0; i < v.Len(); i++ {
			out.Index(i).Set(deepCopy(v.Index(i)))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).PkgPath != "" {
				continue
			}
			out.Field(i).Set(deepCopy(v.Field(i)))
		}
		return out
	default:
		return v
	}
}

func clone[T any](v T) T {
	return deepCopy(reflect.ValueOf(v)).Interface().(T)
}

// fieldNames returns the form tag of each top-level field of a step model.
func fieldNames(t reflect.Type) []string {
	out := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		if name := tagName(t.Field(i)); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func tagName(f reflect.StructField) string {
	if f.PkgPath != "" {
		return ""
	}
	name, _, _ := strings.Cut(f.Tag.Get(fieldTag), ",")
	if name == "-" {
		return ""
	}
	return name
}

// mergeFields copies the named top-level fields of src into dst. Both must be
// pointers to the same struct type.
func mergeFields(dst, src any, names []string) {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()
	for i := 0; i < dv.NumField(); i++ {
		name := tagName(dv.Type().Field(i))
		if name == "" || !want[name] {
			continue
		}
		dv.Field(i).Set(deepCopy(sv.Field(i)))
	}
}

// nonDefaultFields returns the names of fields in v that differ from their
// default.
func nonDefaultFields(v any) []string {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	out := make([]string, 0)
	for i := 0; i < rv.NumField(); i++ {
		name := tagName(rv.Type().Field(i))
		if name == "" || isDefault(rv.Field(i)) {
			continue
		}
		out = append(out, name)
	}
	return out
}

// redactAttachments clears raw file bytes anywhere inside v.
func redactAttachments(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr:
		if !v.IsNil() {
			redactAttachments(v.Elem())
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			redactAttachments(v.Index(i))
		}
	case reflect.Struct:
		if v.Type() == attachmentType {
			v.FieldByName("Content").SetBytes(nil)
			return
		}
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).PkgPath == "" {
				redactAttachments(v.Field(i))
			}
		}
	}
}

// attachFiles assigns uploaded files to attachment fields whose form tag
// matches a key in files. Single attachment fields take the first file.
func attachFiles(dst any, files map[string][]types.Attachment) []string {
	dv := reflect.ValueOf(dst).Elem()
	set := make([]string, 0)
	for i := 0; i < dv.NumField(); i++ {
		name := tagName(dv.Type().Field(i))
		selected, ok := files[name]
		if name == "" || !ok {
			continue
		}

		field := dv.Field(i)
		switch {
		case field.Type() == reflect.PointerTo(attachmentType):
			if len(selected) == 0 {
				field.Set(reflect.Zero(field.Type()))
			} else {
				a := selected[0]
				field.Set(reflect.ValueOf(&a))
			}
		case field.Type() == reflect.SliceOf(attachmentType):
			out := make([]types.Attachment, len(selected))
			copy(out, selected)
			field.Set(reflect.ValueOf(out))
		default:
			continue
		}
		set = append(set, name)
	}
	return set
}

// compositeFields returns tags of struct and slice fields, which are posted
// as namespaced keys rather than a single value.
func compositeFields(t reflect.Type) map[string]bool {
	out := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := tagName(f)
		if name == "" {
			continue
		}
		switch f.Type.Kind() {
		case reflect.Struct, reflect.Slice, reflect.Ptr:
			out[name] = true
		}
	}
	return out
}
