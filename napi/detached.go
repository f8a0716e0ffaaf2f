package napi

import "github.com/wippyai/napi-runtime/abi"

// detachedEnv stands in for the zero Env. Every call fails with
// StatusInvalidArg.
type detachedEnv struct{}

const invalid = abi.StatusInvalidArg

func (detachedEnv) GetCbInfo(abi.CallbackInfo, []abi.Value) (int, abi.Value, abi.Status) {
	return 0, abi.Nil, invalid
}

func (detachedEnv) Typeof(abi.Value) (abi.ValueType, abi.Status)   { return 0, invalid }
func (detachedEnv) IsArray(abi.Value) (bool, abi.Status)             { return false, invalid }
func (detachedEnv) IsArrayBuffer(abi.Value) (bool, abi.Status)       { return false, invalid }
func (detachedEnv) IsBuffer(abi.Value) (bool, abi.Status)            { return false, invalid }
func (detachedEnv) IsError(abi.Value) (bool, abi.Status)             { return false, invalid }
func (detachedEnv) IsTypedArray(abi.Value) (bool, abi.Status)        { return false, invalid }
func (detachedEnv) IsDataView(abi.Value) (bool, abi.Status)          { return false, invalid }
func (detachedEnv) InstanceOf(abi.Value, abi.Value) (bool, abi.Status) { return false, invalid }
func (detachedEnv) StrictEquals(abi.Value, abi.Value) (bool, abi.Status) {
	return false, invalid
}

func (detachedEnv) CoerceToBool(abi.Value) (abi.Value, abi.Status)   { return abi.Nil, invalid }
func (detachedEnv) CoerceToNumber(abi.Value) (abi.Value, abi.Status) { return abi.Nil, invalid }
func (detachedEnv) CoerceToObject(abi.Value) (abi.Value, abi.Status) { return abi.Nil, invalid }
func (detachedEnv) CoerceToString(abi.Value) (abi.Value, abi.Status) { return abi.Nil, invalid }

func (detachedEnv) GetUndefined() (abi.Value, abi.Status)      { return abi.Nil, invalid }
func (detachedEnv) GetNull() (abi.Value, abi.Status)           { return abi.Nil, invalid }
func (detachedEnv) GetGlobal() (abi.Value, abi.Status)         { return abi.Nil, invalid }
func (detachedEnv) GetBoolean(bool) (abi.Value, abi.Status)    { return abi.Nil, invalid }
func (detachedEnv) GetValueBool(abi.Value) (bool, abi.Status)  { return false, invalid }
func (detachedEnv) CreateInt32(int32) (abi.Value, abi.Status)  { return abi.Nil, invalid }
func (detachedEnv) CreateUint32(uint32) (abi.Value, abi.Status) { return abi.Nil, invalid }
func (detachedEnv) CreateInt64(int64) (abi.Value, abi.Status)  { return abi.Nil, invalid }
func (detachedEnv) CreateDouble(float64) (abi.Value, abi.Status) { return abi.Nil, invalid }
func (detachedEnv) GetValueInt32(abi.Value) (int32, abi.Status)  { return 0, invalid }
func (detachedEnv) GetValueUint32(abi.Value) (uint32, abi.Status) { return 0, invalid }
func (detachedEnv) GetValueInt64(abi.Value) (int64, abi.Status)  { return 0, invalid }
func (detachedEnv) GetValueDouble(abi.Value) (float64, abi.Status) { return 0, invalid }

func (detachedEnv) CreateStringUTF8([]byte) (abi.Value, abi.Status)    { return abi.Nil, invalid }
func (detachedEnv) CreateStringLatin1([]byte) (abi.Value, abi.Status)  { return abi.Nil, invalid }
func (detachedEnv) CreateStringUTF16([]uint16) (abi.Value, abi.Status) { return abi.Nil, invalid }
func (detachedEnv) GetValueStringUTF8(abi.Value, []byte) (int, abi.Status) {
	return 0, invalid
}
func (detachedEnv) GetValueStringLatin1(abi.Value, []byte) (int, abi.Status) {
	return 0, invalid
}
func (detachedEnv) GetValueStringUTF16(abi.Value, []uint16) (int, abi.Status) {
	return 0, invalid
}

func (detachedEnv) CreateObject() (abi.Value, abi.Status)             { return abi.Nil, invalid }
func (detachedEnv) CreateArray() (abi.Value, abi.Status)              { return abi.Nil, invalid }
func (detachedEnv) CreateArrayWithLength(int) (abi.Value, abi.Status) { return abi.Nil, invalid }
func (detachedEnv) GetArrayLength(abi.Value) (uint32, abi.Status)     { return 0, invalid }
func (detachedEnv) GetPrototype(abi.Value) (abi.Value, abi.Status)    { return abi.Nil, invalid }
func (detachedEnv) GetPropertyNames(abi.Value) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}
func (detachedEnv) SetProperty(abi.Value, abi.Value, abi.Value) abi.Status { return invalid }
func (detachedEnv) GetProperty(abi.Value, abi.Value) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}
func (detachedEnv) HasProperty(abi.Value, abi.Value) (bool, abi.Status)    { return false, invalid }
func (detachedEnv) HasOwnProperty(abi.Value, abi.Value) (bool, abi.Status) { return false, invalid }
func (detachedEnv) DeleteProperty(abi.Value, abi.Value) (bool, abi.Status) { return false, invalid }
func (detachedEnv) SetElement(abi.Value, uint32, abi.Value) abi.Status      { return invalid }
func (detachedEnv) GetElement(abi.Value, uint32) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}
func (detachedEnv) HasElement(abi.Value, uint32) (bool, abi.Status)    { return false, invalid }
func (detachedEnv) DeleteElement(abi.Value, uint32) (bool, abi.Status) { return false, invalid }

func (detachedEnv) CreateArrayBuffer(int) ([]byte, abi.Value, abi.Status) {
	return nil, abi.Nil, invalid
}
func (detachedEnv) GetArrayBufferInfo(abi.Value) ([]byte, abi.Status) { return nil, invalid }
func (detachedEnv) CreateBuffer(int) ([]byte, abi.Value, abi.Status) {
	return nil, abi.Nil, invalid
}
func (detachedEnv) GetBufferInfo(abi.Value) ([]byte, abi.Status) { return nil, invalid }
func (detachedEnv) CreateTypedArray(abi.TypedArrayType, int, abi.Value, int) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}
func (detachedEnv) GetTypedArrayInfo(abi.Value) (abi.TypedArrayInfo, abi.Status) {
	return abi.TypedArrayInfo{}, invalid
}

func (detachedEnv) CreateError(abi.Value, abi.Value) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}
func (detachedEnv) CreateTypeError(abi.Value, abi.Value) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}
func (detachedEnv) CreateRangeError(abi.Value, abi.Value) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}

func (detachedEnv) Throw(abi.Value) abi.Status                  { return invalid }
func (detachedEnv) ThrowError(string, string) abi.Status        { return invalid }
func (detachedEnv) ThrowTypeError(string, string) abi.Status    { return invalid }
func (detachedEnv) ThrowRangeError(string, string) abi.Status   { return invalid }
func (detachedEnv) IsExceptionPending() (bool, abi.Status)      { return false, invalid }
func (detachedEnv) GetAndClearLastException() (abi.Value, abi.Status) {
	return abi.Nil, invalid
}

func (detachedEnv) CreateFunction(string, abi.Callback) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}
func (detachedEnv) CallFunction(abi.Value, abi.Value, []abi.Value) (abi.Value, abi.Status) {
	return abi.Nil, invalid
}

var _ abi.Env = detachedEnv{}
