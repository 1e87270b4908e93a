package handlers

import (
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// bindFieldErrors maps a body that decoded but held a value of the wrong
// type to per-field messages. Malformed bodies return nil.
func bindFieldErrors(c *gin.Context, obj interface{}, err error) map[string]string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return map[string]string{field: typeMessage(typeErr.Type)}
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return formTypeErrors(obj, c.Request.Form)
	}
	return nil
}

// formTypeErrors reports the form fields of obj whose values do not parse
// as the field's type.
func formTypeErrors(obj interface{}, form url.Values) map[string]string {
	t := reflect.TypeOf(obj)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	fields := map[string]string{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		typ := f.Type
		for typ.Kind() == reflect.Ptr || typ.Kind() == reflect.Slice {
			typ = typ.Elem()
		}
		for _, v := range form[name] {
			if v != "" && !parsesAs(typ.Kind(), v) {
				fields[name] = typeMessage(typ)
				break
			}
		}
	}
	return fields
}

func parsesAs(kind reflect.Kind, v string) bool {
	var err error
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		_, err = strconv.ParseInt(v, 10, 64)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		_, err = strconv.ParseUint(v, 10, 64)
	case reflect.Float32, reflect.Float64:
		_, err = strconv.ParseFloat(v, 64)
	case reflect.Bool:
		_, err = strconv.ParseBool(v)
	}
	return err == nil
}

func typeMessage(t reflect.Type) string {
	if t == nil {
		return "Invalid value"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "Must be a whole number"
	case reflect.Float32, reflect.Float64:
		return "Must be a number"
	case reflect.Bool:
		return "Must be true or false"
	case reflect.String:
		return "Must be text"
	case reflect.Slice, reflect.Array:
		return "Must be a list"
	default:
		return "Invalid value"
	}
}

// rawInput returns the submitted values as the client sent them.
func rawInput(c *gin.Context) interface{} {
	if body, ok := c.Get(gin.BodyBytesKey); ok {
		var input map[string]interface{}
		if raw, ok := body.([]byte); ok && json.Unmarshal(raw, &input) == nil {
			return input
		}
		return nil
	}

	input := make(map[string]interface{}, len(c.Request.PostForm))
	for k, v := range c.Request.PostForm {
		if len(v) == 1 {
			input[k] = v[0]
		} else {
			input[k] = v
		}
	}
	return input
}
