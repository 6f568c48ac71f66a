// Package parser binds URL query parameters onto tagged structs.
package parser

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// ParseQuery fills dest (a pointer to struct) from getter, matching fields
// by their `query` tag. Supported field kinds: string, int, bool and
// []string (comma separated). Fields without a tag are skipped; absent
// parameters keep their zero value.
func ParseQuery(dest any, getter func(key string) string) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("parser: dest must be a pointer to struct, got %T", dest)
	}
	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("query")
		if tag == "" || tag == "-" {
			continue
		}
		raw := strings.TrimSpace(getter(tag))
		if raw == "" {
			continue
		}
		target := v.Field(i)
		switch target.Kind() {
		case reflect.String:
			target.SetString(raw)
		case reflect.Int, reflect.Int64:
			n, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return fmt.Errorf("parser: %s must be an integer", tag)
			}
			target.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("parser: %s must be a boolean", tag)
			}
			target.SetBool(b)
		case reflect.Slice:
			if target.Type().Elem().Kind() != reflect.String {
				return fmt.Errorf("parser: unsupported slice type for %s", tag)
			}
			parts := strings.Split(raw, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			target.Set(reflect.ValueOf(out))
		default:
			return fmt.Errorf("parser: unsupported field kind %s for %s", target.Kind(), tag)
		}
	}
	return nil
}
