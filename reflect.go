package logbook

import (
	"fmt"
	"reflect"
	"time"
)

// Maximum recursion depth to prevent stack overflow on deeply nested values.
const maxValueDepth = 10

// Cap on array/slice elements converted per value.
const maxValueElements = 100

// AnyValue converts an arbitrary Go value into a metadata Value. Structs
// become objects of their exported fields, maps become objects keyed by the
// stringified key, slices and arrays become value arrays. Pointer cycles
// are detected and rendered as a marker string instead of recursing.
func AnyValue(v any) Value {
	visited := make(map[uintptr]bool)
	return anyValue(v, visited, 0)
}

func anyValue(v any, visited map[uintptr]bool, depth int) Value {
	if depth > maxValueDepth {
		return String("<max depth reached>")
	}
	if v == nil {
		return Value{}
	}

	switch t := v.(type) {
	case Value:
		return t
	case Metadata:
		return Object(t.fields)
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int8:
		return Int(int64(t))
	case int16:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case uint:
		return Int(int64(t))
	case uint8:
		return Int(int64(t))
	case uint16:
		return Int(int64(t))
	case uint32:
		return Int(int64(t))
	case uint64:
		return Int(int64(t))
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	case time.Time:
		return String(t.Format(time.RFC3339Nano))
	case time.Duration:
		return String(t.String())
	case error:
		return String(t.Error())
	}

	val := reflect.ValueOf(v)

	// Unwrap interfaces and pointers with cycle detection before handling
	// the concrete kind.
	for {
		switch val.Kind() {
		case reflect.Interface:
			if val.IsNil() {
				return Value{}
			}
			val = val.Elem()
			continue
		case reflect.Ptr:
			if val.IsNil() {
				return Value{}
			}
			ptr := val.Pointer()
			if visited[ptr] {
				return String("<circular reference>")
			}
			visited[ptr] = true
			val = val.Elem()
		default:
		}
		break
	}

	switch val.Kind() {
	case reflect.String:
		return String(val.String())
	case reflect.Bool:
		return Bool(val.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(int64(val.Uint()))
	case reflect.Float32, reflect.Float64:
		return Float(val.Float())

	case reflect.Struct:
		typ := val.Type()
		obj := make(map[string]Value, val.NumField())
		for i := 0; i < val.NumField(); i++ {
			fieldVal := val.Field(i)
			// Skip unexported fields
			if !fieldVal.CanInterface() {
				continue
			}
			obj[typ.Field(i).Name] = anyValue(fieldVal.Interface(), visited, depth+1)
		}
		return Object(obj)

	case reflect.Map:
		obj := make(map[string]Value, val.Len())
		iter := val.MapRange()
		for iter.Next() {
			key := fmt.Sprintf("%v", iter.Key().Interface())
			obj[key] = anyValue(iter.Value().Interface(), visited, depth+1)
		}
		return Object(obj)

	case reflect.Slice, reflect.Array:
		n := val.Len()
		capped := n
		if capped > maxValueElements {
			capped = maxValueElements
		}
		arr := make([]Value, 0, capped)
		for i := 0; i < capped; i++ {
			elem := val.Index(i)
			if !elem.CanInterface() {
				continue
			}
			arr = append(arr, anyValue(elem.Interface(), visited, depth+1))
		}
		if n > capped {
			arr = append(arr, String(fmt.Sprintf("... (%d more elements)", n-capped)))
		}
		return Array(arr...)

	default:
		return String(fmt.Sprintf("%v", v))
	}
}
