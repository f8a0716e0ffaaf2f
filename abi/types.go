package abi

import (
	"fmt"
	"strings"
)

// Value is an opaque handle to a host value. The zero handle never refers
// to a live value.
type Value uintptr

// Nil is the handle hosts never hand out.
const Nil Value = 0

// CallbackInfo is an opaque handle to one callback invocation.
type CallbackInfo uintptr

// Callback is the native entry point the host calls for a function created
// with Env.CreateFunction. It must return a non-nil handle even when an
// exception has been scheduled.
type Callback func(env Env, info CallbackInfo) Value

// ValueType is the host's runtime type tag, as reported by typeof.
type ValueType int

const (
	Undefined ValueType = iota
	Null
	Boolean
	Number
	String
	Symbol
	Object
	Function
	External
	BigInt
)

var valueTypeNames = [...]string{
	Undefined: "undefined",
	Null:      "null",
	Boolean:   "boolean",
	Number:    "number",
	String:    "string",
	Symbol:    "symbol",
	Object:    "object",
	Function:  "function",
	External:  "external",
	BigInt:    "bigint",
}

func (t ValueType) String() string {
	if t >= Undefined && t <= BigInt {
		return valueTypeNames[t]
	}
	return fmt.Sprintf("valuetype(%d)", int(t))
}

// TypedArrayType is the element kind of a typed array view.
type TypedArrayType int

const (
	Int8Array TypedArrayType = iota
	Uint8Array
	Uint8ClampedArray
	Int16Array
	Uint16Array
	Int32Array
	Uint32Array
	Float32Array
	Float64Array
	BigInt64Array
	BigUint64Array
)

var typedArrayNames = [...]string{
	Int8Array:         "Int8Array",
	Uint8Array:        "Uint8Array",
	Uint8ClampedArray: "Uint8ClampedArray",
	Int16Array:        "Int16Array",
	Uint16Array:       "Uint16Array",
	Int32Array:        "Int32Array",
	Uint32Array:       "Uint32Array",
	Float32Array:      "Float32Array",
	Float64Array:      "Float64Array",
	BigInt64Array:     "BigInt64Array",
	BigUint64Array:    "BigUint64Array",
}

// Valid reports whether t names a known element kind.
func (t TypedArrayType) Valid() bool {
	return t >= Int8Array && t <= BigUint64Array
}

// String returns the host constructor name, e.g. "Float64Array".
func (t TypedArrayType) String() string {
	if t.Valid() {
		return typedArrayNames[t]
	}
	return fmt.Sprintf("typedarray(%d)", int(t))
}

// ElementSize returns the width of one element in bytes.
func (t TypedArrayType) ElementSize() int {
	switch t {
	case Int8Array, Uint8Array, Uint8ClampedArray:
		return 1
	case Int16Array, Uint16Array:
		return 2
	case Int32Array, Uint32Array, Float32Array:
		return 4
	case Float64Array, BigInt64Array, BigUint64Array:
		return 8
	default:
		return 0
	}
}

// TypedArrayInfo is what napi_get_typedarray_info reports. Data covers
// exactly Length elements starting at ByteOffset of the backing buffer.
type TypedArrayInfo struct {
	Data        []byte
	ArrayBuffer Value
	Type        TypedArrayType
	Length      int
	ByteOffset  int
}

// IsCString reports whether s can cross the ABI as a C string.
func IsCString(s string) bool {
	return !strings.ContainsRune(s, 0)
}
