package valkey

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// EncodeHash はredisタグ付き構造体をHSET用のmapに変換する。
// redis:"-"タグおよびタグなしフィールドはスキップする。
// []stringはJSON配列として保存する。
func EncodeHash(v any) (map[string]any, error) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil, fmt.Errorf("EncodeHash: struct required, got %s", val.Kind())
	}
	typ := val.Type()

	result := make(map[string]any, val.NumField())
	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("redis")
		if tag == "" || tag == "-" {
			continue
		}
		s, err := fieldString(val.Field(i))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		result[tag] = s
	}
	return result, nil
}

// DecodeHash はHGETALLの結果からredisタグ付き構造体にデシリアライズする。
func DecodeHash(m map[string]string, v any) error {
	val := reflect.ValueOf(v)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return fmt.Errorf("DecodeHash: pointer required")
	}
	val = val.Elem()
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("redis")
		if tag == "" || tag == "-" {
			continue
		}
		strVal, ok := m[tag]
		if !ok {
			continue
		}
		if err := setFieldValue(val.Field(i), strVal); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

func fieldString(f reflect.Value) (string, error) {
	switch f.Kind() {
	case reflect.String:
		return f.String(), nil
	case reflect.Int, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(f.Int(), 10), nil
	case reflect.Float64:
		return strconv.FormatFloat(f.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(f.Bool()), nil
	case reflect.Slice:
		if f.Type().Elem().Kind() != reflect.String {
			return "", fmt.Errorf("unsupported slice type: %s", f.Type())
		}
		if f.IsNil() {
			return "[]", nil
		}
		b, err := json.Marshal(f.Interface())
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return "", fmt.Errorf("unsupported type: %s", f.Kind())
	}
}

// setFieldValue は文字列値を対象フィールドの型に変換して設定する。
func setFieldValue(field reflect.Value, strVal string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(strVal)
	case reflect.Int, reflect.Int32, reflect.Int64:
		if strVal == "" {
			field.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(strVal, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid int value %q: %w", strVal, err)
		}
		field.SetInt(n)
	case reflect.Float64:
		if strVal == "" {
			field.SetFloat(0)
			return nil
		}
		n, err := strconv.ParseFloat(strVal, 64)
		if err != nil {
			return fmt.Errorf("invalid float value %q: %w", strVal, err)
		}
		field.SetFloat(n)
	case reflect.Bool:
		if strVal == "" {
			field.SetBool(false)
			return nil
		}
		b, err := strconv.ParseBool(strVal)
		if err != nil {
			return fmt.Errorf("invalid bool value %q: %w", strVal, err)
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		var items []string
		if strVal != "" {
			if err := json.Unmarshal([]byte(strVal), &items); err != nil {
				return fmt.Errorf("invalid string list %q: %w", strVal, err)
			}
		}
		field.Set(reflect.ValueOf(items).Convert(field.Type()))
	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}
	return nil
}
