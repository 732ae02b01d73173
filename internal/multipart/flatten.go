// Package multipart flattens nested request structures into the dotted /
// bracketed key form the case-management backend expects in multipart
// bodies (`caseInformation.fineAmount`, `litigants[0].id`, ...), and
// rebuilds nested values from such keys.
package multipart

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Field is one flattened key/value pair, in emission order.
type Field struct {
	Key   string
	Value string
}

// DateLayout is the timezone-naive ISO form dates are normalized to:
// an RFC3339 timestamp with milliseconds and the zone suffix stripped.
const DateLayout = "2006-01-02T15:04:05.000"

// NormalizeDate renders a timestamp in the backend's timezone-naive form.
func NormalizeDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Flatten walks v and produces one Field per leaf. Nested objects become
// `parent.child` keys, slices become `parent[i]`. Nil leaves flatten to ""
// and are never omitted: the backend does not distinguish omission from
// empty string, so the client always sends the key. time.Time leaves are
// normalized via NormalizeDate.
func Flatten(v interface{}) []Field {
	var fields []Field
	flattenValue(reflect.ValueOf(v), "", &fields)
	return fields
}

func flattenValue(v reflect.Value, keyPath string, out *[]Field) {
	if !v.IsValid() {
		appendLeaf(out, keyPath, "")
		return
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			appendLeaf(out, keyPath, "")
			return
		}
		flattenValue(v.Elem(), keyPath, out)

	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			appendLeaf(out, keyPath, NormalizeDate(t))
			return
		}
		flattenStruct(v, keyPath, out)

	case reflect.Map:
		flattenMap(v, keyPath, out)

	case reflect.Slice, reflect.Array:
		// Byte blobs are file contents, not form fields.
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return
		}
		for i := 0; i < v.Len(); i++ {
			flattenValue(v.Index(i), fmt.Sprintf("%s[%d]", keyPath, i), out)
		}

	default:
		appendLeaf(out, keyPath, leafString(v))
	}
}

func flattenStruct(v reflect.Value, keyPath string, out *[]Field) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" { // unexported
			continue
		}
		name := jsonName(sf)
		if name == "-" {
			continue
		}
		flattenValue(v.Field(i), joinKey(keyPath, name), out)
	}
}

func flattenMap(v reflect.Value, keyPath string, out *[]Field) {
	keys := make([]string, 0, v.Len())
	byKey := make(map[string]reflect.Value, v.Len())
	for _, k := range v.MapKeys() {
		ks := fmt.Sprintf("%v", k.Interface())
		keys = append(keys, ks)
		byKey[ks] = v.MapIndex(k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		flattenValue(byKey[k], joinKey(keyPath, k), out)
	}
}

func joinKey(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}

func appendLeaf(out *[]Field, key, value string) {
	if key == "" {
		return
	}
	*out = append(*out, Field{Key: key, Value: value})
}

func leafString(v reflect.Value) string {
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

func jsonName(sf reflect.StructField) string {
	tag := sf.Tag.Get("json")
	if tag == "" {
		return sf.Name
	}
	name := strings.SplitN(tag, ",", 2)[0]
	if name == "" {
		name = sf.Name
	}
	return name
}
