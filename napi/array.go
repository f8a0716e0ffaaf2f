package napi

import "github.com/wippyai/napi-runtime/abi"

// Array is a host array (Array.isArray).
type Array struct {
	handle
}

// CheckArray wraps raw if the host reports it as an array.
func CheckArray(env Env, raw abi.Value) (Array, error) {
	if err := expectPredicate(env, raw, abi.Env.IsArray, "Array"); err != nil {
		return Array{}, err
	}
	return Array{handle{env: env, raw: raw}}, nil
}

// NewArray creates an empty array.
func NewArray(env Env) (Array, error) {
	raw, status := env.host().CreateArray()
	if err := env.HandleStatus(status); err != nil {
		return Array{}, err
	}
	return Array{handle{env: env, raw: raw}}, nil
}

// NewArrayWithLen creates an array of n holes.
func NewArrayWithLen(env Env, n int) (Array, error) {
	raw, status := env.host().CreateArrayWithLength(n)
	if err := env.HandleStatus(status); err != nil {
		return Array{}, err
	}
	return Array{handle{env: env, raw: raw}}, nil
}

func (a Array) AsObject() Object { return Object{a.handle} }

// Len returns the array length property.
func (a Array) Len() (uint32, error) {
	n, status := a.env.host().GetArrayLength(a.raw)
	if err := a.env.HandleStatus(status); err != nil {
		return 0, err
	}
	return n, nil
}

func (a Array) IsEmpty() (bool, error) {
	n, err := a.Len()
	return n == 0, err
}

// Get reads the element at index.
func (a Array) Get(index uint32) (Any, error) {
	return a.AsObject().GetElement(index)
}

// Set stores value at index, growing the array if needed.
func (a Array) Set(index uint32, value Value) error {
	return a.AsObject().SetElement(index, value)
}
