// Package transcode rewrites record keys between the storage naming
// (snake_case) and the API naming (camelCase).
package transcode

import (
	"reflect"
	"strings"
	"unicode"
)

// ToCamel converts a snake_case key to camelCase. Keys that are not
// storage-shaped (lowercase words joined by single underscores) are returned
// unchanged. Segments that begin with a digit keep their underscore so the
// conversion can be reversed by ToSnake.
func ToCamel(key string) string {
	if !isSnake(key) || !strings.Contains(key, "_") {
		return key
	}
	parts := strings.Split(key, "_")
	var b strings.Builder
	b.Grow(len(key))
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		if unicode.IsDigit(rune(part[0])) {
			b.WriteByte('_')
			b.WriteString(part)
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// ToSnake converts a camelCase key to snake_case: every uppercase letter
// after the first rune starts a new word. Keys with characters outside
// [A-Za-z0-9_] are returned unchanged.
func ToSnake(key string) string {
	if key == "" {
		return key
	}
	for _, r := range key {
		if !(('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9') || r == '_') {
			return key
		}
	}

	var b strings.Builder
	b.Grow(len(key) + 4)
	for i, r := range key {
		if 'A' <= r && r <= 'Z' {
			if i > 0 && key[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KeysToCamel returns a copy of record with every key passed through ToCamel.
func KeysToCamel(record map[string]any) map[string]any {
	return rekey(record, ToCamel)
}

// KeysToSnake returns a copy of record with every key passed through ToSnake.
func KeysToSnake(record map[string]any) map[string]any {
	return rekey(record, ToSnake)
}

func rekey(record map[string]any, convert func(string) string) map[string]any {
	if record == nil {
		return nil
	}
	out := make(map[string]any, len(record))
	for k, v := range record {
		out[convert(k)] = v
	}
	return out
}

// StructToMap flattens a struct into a map keyed by its json tag names.
// Nil pointer fields are omitted so that partial update payloads only carry
// the fields the client sent. Non-struct values yield an empty map.
func StructToMap(v any) map[string]any {
	out := map[string]any{}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return out
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return out
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := jsonName(field)
		if name == "" {
			continue
		}
		fv := rv.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}
		out[name] = fv.Interface()
	}
	return out
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return field.Name
	}
	return name
}

func isSnake(key string) bool {
	if key == "" || key[0] == '_' || key[len(key)-1] == '_' || strings.Contains(key, "__") {
		return false
	}
	for _, r := range key {
		if !(('a' <= r && r <= 'z') || ('0' <= r && r <= '9') || r == '_') {
			return false
		}
	}
	return true
}
