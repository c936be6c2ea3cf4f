package internal

import "strconv"

// scalar lists the types request values convert to.
type scalar interface {
	~string | ~int | ~int64 | ~float64 | ~bool
}

// ContextValue returns the value stored under key, or the zero T.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Param returns a typed URL parameter of a declared route.
func Param[T scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Param(name))
	return v
}

// Query returns a typed query parameter.
func Query[T scalar](c Context, name string) T {
	v, _ := parseScalar[T](c.Query(name))
	return v
}

// QueryDefault returns a typed query parameter, or def when it is empty or
// does not parse.
func QueryDefault[T scalar](c Context, name string, def T) T {
	return orDefault(c.Query(name), def)
}

// Arg returns the action argument at index converted to T.
//
//	func (u *Users) show(c waypoint.Context, _ ...string) error {
//	    id := waypoint.Arg[int64](c, 0)
//	    ...
//	}
func Arg[T scalar](c Context, index int) T {
	v, _ := parseScalar[T](c.Arg(index))
	return v
}

// ArgDefault returns the action argument at index, or def when it is
// missing or does not parse.
func ArgDefault[T scalar](c Context, index int, def T) T {
	return orDefault(c.Arg(index), def)
}

// NamedParam returns a "key:value" path parameter converted to T.
func NamedParam[T scalar](c Context, key string) T {
	v, _ := parseScalar[T](c.Named(key))
	return v
}

func orDefault[T scalar](raw string, def T) T {
	if raw == "" {
		return def
	}
	if v, ok := parseScalar[T](raw); ok {
		return v
	}
	return def
}

func parseScalar[T scalar](raw string) (T, bool) {
	var (
		zero T
		v    any
		err  error
	)
	switch any(zero).(type) {
	case string:
		v = raw
	case int:
		v, err = strconv.Atoi(raw)
	case int64:
		v, err = strconv.ParseInt(raw, 10, 64)
	case float64:
		v, err = strconv.ParseFloat(raw, 64)
	case bool:
		v, err = strconv.ParseBool(raw)
	default:
		return zero, false
	}
	if err != nil {
		return zero, false
	}
	return v.(T), true
}
