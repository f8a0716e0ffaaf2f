package napi

import "github.com/wippyai/napi-runtime/abi"

// Any accepts every handle. Use the As methods to narrow it.
type Any struct {
	handle
}

// CheckAny never fails and makes no host call.
func CheckAny(env Env, raw abi.Value) (Any, error) {
	return Any{handle{env: env, raw: raw}}, nil
}

// The As methods narrow a with the matching Check constructor.
func (a Any) AsUndefined() (Undefined, error)     { return CheckUndefined(a.env, a.raw) }
func (a Any) AsNull() (Null, error)               { return CheckNull(a.env, a.raw) }
func (a Any) AsBoolean() (Boolean, error)         { return CheckBoolean(a.env, a.raw) }
func (a Any) AsNumber() (Number, error)           { return CheckNumber(a.env, a.raw) }
func (a Any) AsString() (String, error)           { return CheckString(a.env, a.raw) }
func (a Any) AsObject() (Object, error)           { return CheckObject(a.env, a.raw) }
func (a Any) AsArray() (Array, error)             { return CheckArray(a.env, a.raw) }
func (a Any) AsFunction() (Function, error)       { return CheckFunction(a.env, a.raw) }
func (a Any) AsArrayBuffer() (ArrayBuffer, error) { return CheckArrayBuffer(a.env, a.raw) }
func (a Any) AsBuffer() (Buffer, error)           { return CheckBuffer(a.env, a.raw) }
