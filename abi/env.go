package abi

// Env is the host context of one callback invocation. Every host call made
// on behalf of a native callback goes through it.
//
// Methods follow N-API: out-parameters become extra results and the Status
// is always last. Slices returned for buffer storage alias host memory and
// stay valid until the host value is collected; the host never relocates
// them.
type Env interface {
	// GetCbInfo copies up to len(argv) argument handles into argv and
	// reports how many arguments the caller actually passed. Slots past the
	// actual count are filled with the undefined handle.
	GetCbInfo(info CallbackInfo, argv []Value) (argc int, this Value, status Status)

	Typeof(v Value) (ValueType, Status)
	IsArray(v Value) (bool, Status)
	IsArrayBuffer(v Value) (bool, Status)
	IsBuffer(v Value) (bool, Status)
	IsError(v Value) (bool, Status)
	IsTypedArray(v Value) (bool, Status)
	IsDataView(v Value) (bool, Status)
	InstanceOf(v, constructor Value) (bool, Status)
	StrictEquals(a, b Value) (bool, Status)

	CoerceToBool(v Value) (Value, Status)
	CoerceToNumber(v Value) (Value, Status)
	CoerceToObject(v Value) (Value, Status)
	CoerceToString(v Value) (Value, Status)

	GetUndefined() (Value, Status)
	GetNull() (Value, Status)
	GetGlobal() (Value, Status)
	GetBoolean(b bool) (Value, Status)
	GetValueBool(v Value) (bool, Status)

	CreateInt32(n int32) (Value, Status)
	CreateUint32(n uint32) (Value, Status)
	CreateInt64(n int64) (Value, Status)
	CreateDouble(f float64) (Value, Status)
	GetValueInt32(v Value) (int32, Status)
	GetValueUint32(v Value) (uint32, Status)
	GetValueInt64(v Value) (int64, Status)
	GetValueDouble(v Value) (float64, Status)

	CreateStringUTF8(s []byte) (Value, Status)
	CreateStringLatin1(s []byte) (Value, Status)
	CreateStringUTF16(s []uint16) (Value, Status)

	// GetValueString* use the two-call protocol: with a nil buf they report
	// the full length in code units; otherwise they copy at most len(buf)-1
	// units, terminate with a zero unit and report the number copied.
	GetValueStringUTF8(v Value, buf []byte) (int, Status)
	GetValueStringLatin1(v Value, buf []byte) (int, Status)
	GetValueStringUTF16(v Value, buf []uint16) (int, Status)

	CreateObject() (Value, Status)
	CreateArray() (Value, Status)
	CreateArrayWithLength(n int) (Value, Status)
	GetArrayLength(v Value) (uint32, Status)
	GetPrototype(v Value) (Value, Status)
	GetPropertyNames(v Value) (Value, Status)
	SetProperty(obj, key, val Value) Status
	GetProperty(obj, key Value) (Value, Status)
	HasProperty(obj, key Value) (bool, Status)
	HasOwnProperty(obj, key Value) (bool, Status)
	DeleteProperty(obj, key Value) (bool, Status)
	SetElement(obj Value, index uint32, val Value) Status
	GetElement(obj Value, index uint32) (Value, Status)
	HasElement(obj Value, index uint32) (bool, Status)
	DeleteElement(obj Value, index uint32) (bool, Status)

	CreateArrayBuffer(length int) ([]byte, Value, Status)
	GetArrayBufferInfo(v Value) ([]byte, Status)
	CreateBuffer(length int) ([]byte, Value, Status)
	GetBufferInfo(v Value) ([]byte, Status)
	CreateTypedArray(t TypedArrayType, length int, arrayBuffer Value, byteOffset int) (Value, Status)
	GetTypedArrayInfo(v Value) (TypedArrayInfo, Status)

	CreateError(code, msg Value) (Value, Status)
	CreateTypeError(code, msg Value) (Value, Status)
	CreateRangeError(code, msg Value) (Value, Status)

	// Throw schedules v as the pending exception of the current call.
	Throw(v Value) Status
	// ThrowError and friends take C strings; a message with an embedded NUL
	// is rejected with StatusInvalidArg.
	ThrowError(code, msg string) Status
	ThrowTypeError(code, msg string) Status
	ThrowRangeError(code, msg string) Status
	IsExceptionPending() (bool, Status)
	GetAndClearLastException() (Value, Status)

	CreateFunction(name string, cb Callback) (Value, Status)
	CallFunction(recv, fn Value, args []Value) (Value, Status)
}
