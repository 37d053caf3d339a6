package utils

import (
	"fmt"
	"reflect"
	"strings"
)

// ColumnTag is the struct tag that names a database column.
var ColumnTag = "db"

type column struct {
	name  string
	value reflect.Value
}

// columnsOf walks the exported fields of a row struct (or pointer to one)
// that carry a column tag. Tag options after a comma are ignored.
func columnsOf(input any) []column {
	v := reflect.ValueOf(input)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		panic(fmt.Sprintf("utils: %T is not a struct or a pointer to one", input))
	}

	t := v.Type()
	out := make([]column, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get(ColumnTag), ",")
		if name == "" || name == "-" {
			continue
		}
		out = append(out, column{name: name, value: v.Field(i)})
	}
	return out
}

// StructTagValues lists the column names of a row struct in field order.
func StructTagValues(input any) []string {
	cols := columnsOf(input)
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.name
	}
	return names
}

// StructToMap maps each column name of a row struct to its field value, for
// squirrel's SetMap.
func StructToMap(input any) map[string]any {
	cols := columnsOf(input)
	out := make(map[string]any, len(cols))
	for _, c := range cols {
		out[c.name] = c.value.Interface()
	}
	return out
}

// ExcludedAssignments builds the SET list of an ON CONFLICT DO UPDATE clause
// that copies every column except keep from the proposed row.
func ExcludedAssignments(columns []string, keep ...string) string {
	cols := FilterSliceString(columns, keep...)
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = EXCLUDED." + col
	}
	return strings.Join(sets, ", ")
}
