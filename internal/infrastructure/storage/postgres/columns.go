package postgres

import (
	"reflect"
	"slices"
	"sync"
)

// dbField locates one db-tagged field, possibly inside embedded structs.
type dbField struct {
	column string
	index  []int
}

// fieldCache maps a struct reflect.Type to its []dbField.
var fieldCache sync.Map

func dbFields(t reflect.Type) []dbField {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]dbField)
	}
	fields := collectFields(t, nil)
	fieldCache.Store(t, fields)
	return fields
}

func collectFields(t reflect.Type, parent []int) []dbField {
	var fields []dbField
	for i := range t.NumField() {
		f := t.Field(i)
		index := append(slices.Clone(parent), i)
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			fields = append(fields, collectFields(f.Type, index)...)
			continue
		}
		if tag := f.Tag.Get("db"); tag != "" && tag != "-" {
			fields = append(fields, dbField{column: tag, index: index})
		}
	}
	return fields
}

// ExtractDBColumns lists T's db columns in field order, with embedded
// structs such as entity.BaseEntity inlined where they appear.
func ExtractDBColumns[T any]() []string {
	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}
	fields := dbFields(t)
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.column
	}
	return cols
}

// StructToMap maps each db column of v, a struct or pointer to one, to
// the field's value. Fields without a tag or tagged "-" are skipped.
func StructToMap(v any) map[string]any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	fields := dbFields(rv.Type())
	res := make(map[string]any, len(fields))
	for _, f := range fields {
		res[f.column] = rv.FieldByIndex(f.index).Interface()
	}
	return res
}
