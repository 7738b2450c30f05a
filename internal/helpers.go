package internal

import "strconv"

// Scalar is the set of types the typed parameter helpers convert to.
type Scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value stored under key with Set, or the zero value.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Query converts a query parameter to T. Missing or malformed values yield
// the zero value.
func Query[T Scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Query(name))
	return v
}

// QueryDefault converts a query parameter to T, or returns def when it is
// missing or malformed.
//
//	page := dispatch.QueryDefault(c, "page", 1)
func QueryDefault[T Scalar](c Context, name string, def T) T {
	return orDefault(c.Query(name), def)
}

// FormValue converts a body form parameter to T. Missing or malformed values
// yield the zero value.
func FormValue[T Scalar](c Context, name string) T {
	v, _ := convertParam[T](c.Form(name))
	return v
}

// FormDefault converts a body form parameter to T, or returns def.
func FormDefault[T Scalar](c Context, name string, def T) T {
	return orDefault(c.Form(name), def)
}

func orDefault[T Scalar](raw string, def T) T {
	if raw == "" {
		return def
	}
	v, ok := convertParam[T](raw)
	if !ok {
		return def
	}
	return v
}

// convertParam converts a raw string to the target type T.
func convertParam[T Scalar](raw string) (T, bool) {
	var zero T
	var out any
	switch any(zero).(type) {
	case string:
		out = raw
	case int:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return zero, false
		}
		out = v
	case int64:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return zero, false
		}
		out = v
	case float64:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return zero, false
		}
		out = v
	case bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return zero, false
		}
		out = v
	default:
		return zero, false
	}
	v, ok := out.(T)
	return v, ok
}
