package command

import (
	"fmt"
	"strconv"
)

// ParamType is the semantic type tag of a command parameter. The tag is what
// the completer shows in signatures.
type ParamType string

const (
	Int32   ParamType = "int32"
	Int64   ParamType = "int64"
	Float32 ParamType = "float32"
	Float64 ParamType = "float64"
	Bool    ParamType = "bool"
	String  ParamType = "string"
)

// Parser converts one token into the Go value handed to an Invoker.
type Parser func(token string) (any, error)

func defaultParsers() map[ParamType]Parser {
	return map[ParamType]Parser{
		Int32: func(s string) (any, error) {
			v, err := strconv.ParseInt(s, 10, 32)
			if err != nil {
				return nil, parseError(s, Int32, err)
			}
			return int32(v), nil
		},
		Int64: func(s string) (any, error) {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, parseError(s, Int64, err)
			}
			return v, nil
		},
		Float32: func(s string) (any, error) {
			v, err := strconv.ParseFloat(s, 32)
			if err != nil {
				return nil, parseError(s, Float32, err)
			}
			return float32(v), nil
		},
		Float64: func(s string) (any, error) {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, parseError(s, Float64, err)
			}
			return v, nil
		},
		Bool: func(s string) (any, error) {
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, parseError(s, Bool, err)
			}
			return v, nil
		},
		String: func(s string) (any, error) {
			return s, nil
		},
	}
}

func parseError(token string, t ParamType, err error) error {
	if numErr, ok := err.(*strconv.NumError); ok {
		err = numErr.Err
	}
	return fmt.Errorf("%q is not a valid %s (%w)", token, t, err)
}
