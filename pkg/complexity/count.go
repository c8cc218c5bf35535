// Package complexity measures the shape of a mocked endpoint's result and
// logs one record per call: how many records the call produced and how many
// characters its canonical serialization spans. Test harnesses assert on
// these measurements instead of inspecting payloads directly.
package complexity

import (
	"reflect"
)

// Count computes the heuristic record count of a value:
//
//   - nil counts 0
//   - a sequence (slice or array) counts its length
//   - a mapping or introspectable object counts the maximum length among its
//     sequence-valued fields, scanning one level into nested mappings as
//     well; with no sequence-valued fields a non-empty mapping counts 1 and
//     an empty one 0
//   - any other scalar counts 1
func Count(value any) int {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		return 0
	}
	v = indirect(v)
	if !v.IsValid() {
		return 0
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		return v.Len()
	case reflect.Map, reflect.Struct:
		if lens := sequenceLengths(v, 1); len(lens) > 0 {
			max := lens[0]
			for _, n := range lens[1:] {
				if n > max {
					max = n
				}
			}
			return max
		}
		if fieldCount(v) == 0 {
			return 0
		}
		return 1
	default:
		return 1
	}
}

// sequenceLengths collects the lengths of sequence-valued fields of a mapping
// or struct, descending depth levels into nested mappings.
func sequenceLengths(v reflect.Value, depth int) []int {
	var lens []int

	visit := func(field reflect.Value) {
		field = indirect(field)
		if !field.IsValid() {
			return
		}
		switch field.Kind() {
		case reflect.Slice, reflect.Array:
			lens = append(lens, field.Len())
		case reflect.Map, reflect.Struct:
			if depth > 0 {
				lens = append(lens, sequenceLengths(field, depth-1)...)
			}
		}
	}

	switch v.Kind() {
	case reflect.Map:
		for iter := v.MapRange(); iter.Next(); {
			visit(iter.Value())
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				visit(v.Field(i))
			}
		}
	}

	return lens
}

// fieldCount returns the number of entries in a mapping or exported fields in
// a struct.
func fieldCount(v reflect.Value) int {
	switch v.Kind() {
	case reflect.Map:
		return v.Len()
	case reflect.Struct:
		n := 0
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				n++
			}
		}
		return n
	default:
		return 0
	}
}

// indirect dereferences pointers and interfaces, returning an invalid value
// for nils so callers treat them as absent.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}
