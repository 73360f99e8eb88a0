package binding

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
)

const defaultTag = "json"

type QueryBinding struct {
	Tag string
}

func (q QueryBinding) Bind(r *http.Request, obj any) error {
	return bindValues(r.URL.Query(), q.Tag, obj)
}

func (q QueryBinding) Name() string {
	return "query"
}

// bindValues 将 url.Values 映射到结构体字段, 字段名取自tag, tag为空时使用字段名
func bindValues(values url.Values, tag string, obj any) error {
	if len(values) == 0 {
		return nil
	}

	if tag == "" {
		tag = defaultTag
	}

	rv := reflect.ValueOf(obj)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return errors.New("bind failed: obj must be a non-nil pointer")
	}

	elem := rv.Elem()
	if elem.Kind() != reflect.Struct {
		return errors.New("bind failed: obj must be a pointer of struct")
	}

	elemType := elem.Type()
	for i := 0; i < elemType.NumField(); i++ {
		field := elemType.Field(i)
		fieldValue := elem.Field(i)
		if !fieldValue.CanSet() {
			continue
		}

		key := tagName(field, tag)
		if key == "-" {
			continue
		}

		params := values[key]
		if len(params) == 0 {
			continue
		}

		if err := setField(fieldValue, params); err != nil {
			return fmt.Errorf("bind failed: field %s: %w", field.Name, err)
		}
	}

	return nil
}

func tagName(field reflect.StructField, tag string) string {
	name := field.Tag.Get(tag)
	for i := 0; i < len(name); i++ {
		if name[i] == ',' {
			name = name[:i]
			break
		}
	}
	if name == "" {
		return field.Name
	}

	return name
}

func setField(v reflect.Value, params []string) error {
	param := params[0]
	switch v.Kind() {
	case reflect.Ptr:
		elem := reflect.New(v.Type().Elem())
		if err := setField(elem.Elem(), params); err != nil {
			return err
		}
		v.Set(elem)
	case reflect.String:
		v.SetString(param)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(param, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", param)
		}
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(param, 10, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", param)
		}
		v.SetUint(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(param)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", param)
		}
		v.SetBool(b)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(param, v.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", param)
		}
		v.SetFloat(f)
	case reflect.Slice:
		if v.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", v.Type())
		}
		v.Set(reflect.ValueOf(append([]string(nil), params...)).Convert(v.Type()))
	default:
		return fmt.Errorf("unsupported field type %s", v.Kind())
	}

	return nil
}
