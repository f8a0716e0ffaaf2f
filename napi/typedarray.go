package napi

import (
	"unsafe"

	"github.com/wippyai/napi-runtime/abi"
)

// Uint8Clamped is the element type of Uint8ClampedArray. It is distinct from
// uint8 so the two array kinds stay distinguishable.
type Uint8Clamped uint8

// Element lists the Go types a typed array view can expose.
type Element interface {
	int8 | uint8 | Uint8Clamped | int16 | uint16 | int32 | uint32 | float32 | float64 | int64 | uint64
}

// ElementType returns the host element kind for T.
func ElementType[T Element]() abi.TypedArrayType {
	var zero T
	switch any(zero).(type) {
	case int8:
		return abi.Int8Array
	case uint8:
		return abi.Uint8Array
	case Uint8Clamped:
		return abi.Uint8ClampedArray
	case int16:
		return abi.Int16Array
	case uint16:
		return abi.Uint16Array
	case int32:
		return abi.Int32Array
	case uint32:
		return abi.Uint32Array
	case float32:
		return abi.Float32Array
	case float64:
		return abi.Float64Array
	case int64:
		return abi.BigInt64Array
	case uint64:
		return abi.BigUint64Array
	}
	panic("unreachable")
}

// TypedArray is a typed array whose element kind is T.
type TypedArray[T Element] struct {
	handle
	info abi.TypedArrayInfo
}

type (
	Int8Array         = TypedArray[int8]
	Uint8Array        = TypedArray[uint8]
	Uint8ClampedArray = TypedArray[Uint8Clamped]
	Int16Array        = TypedArray[int16]
	Uint16Array       = TypedArray[uint16]
	Int32Array        = TypedArray[int32]
	Uint32Array       = TypedArray[uint32]
	Float32Array      = TypedArray[float32]
	Float64Array      = TypedArray[float64]
	BigInt64Array     = TypedArray[int64]
	BigUint64Array    = TypedArray[uint64]
)

// CheckTypedArray validates that raw is a typed array and that its element
// kind is exactly T. A Buffer passes as a TypedArray[uint8].
func CheckTypedArray[T Element](env Env, raw abi.Value) (TypedArray[T], error) {
	if err := expectPredicate(env, raw, abi.Env.IsTypedArray, "TypedArray"); err != nil {
		return TypedArray[T]{}, err
	}
	return typedArrayOf[T](env, raw)
}

func typedArrayOf[T Element](env Env, raw abi.Value) (TypedArray[T], error) {
	info, status := env.host().GetTypedArrayInfo(raw)
	if err := env.HandleStatus(status); err != nil {
		return TypedArray[T]{}, err
	}
	if want := ElementType[T](); info.Type != want {
		return TypedArray[T]{}, env.mismatch(want.String())
	}
	return TypedArray[T]{handle: handle{env: env, raw: raw}, info: info}, nil
}

// FromArrayBuffer creates a view of count elements over buf starting at
// byteOffset. The host rejects misaligned offsets and out-of-range views.
func FromArrayBuffer[T Element](buf ArrayBuffer, byteOffset, count int) (TypedArray[T], error) {
	env := buf.env
	raw, status := env.host().CreateTypedArray(ElementType[T](), count, buf.raw, byteOffset)
	if err := env.HandleStatus(status); err != nil {
		return TypedArray[T]{}, err
	}
	return typedArrayOf[T](env, raw)
}

// NewTypedArray allocates a fresh zeroed buffer and views all of it.
func NewTypedArray[T Element](env Env, count int) (TypedArray[T], error) {
	buf, err := NewArrayBuffer(env, count*ElementType[T]().ElementSize())
	if err != nil {
		return TypedArray[T]{}, err
	}
	return FromArrayBuffer[T](buf, 0, count)
}

func (a TypedArray[T]) AsObject() Object { return Object{a.handle} }

// Data returns the elements, aliasing host storage.
func (a TypedArray[T]) Data() []T {
	if a.info.Length == 0 || len(a.info.Data) == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&a.info.Data[0])), a.info.Length)
}

// Bytes returns the raw bytes backing the view.
func (a TypedArray[T]) Bytes() []byte            { return a.info.Data }
func (a TypedArray[T]) Len() int                 { return a.info.Length }
func (a TypedArray[T]) IsEmpty() bool            { return a.info.Length == 0 }
func (a TypedArray[T]) ByteOffset() int          { return a.info.ByteOffset }
func (a TypedArray[T]) Type() abi.TypedArrayType { return a.info.Type }

// ArrayBuffer returns the buffer the view is defined over.
func (a TypedArray[T]) ArrayBuffer() (ArrayBuffer, error) {
	return arrayBufferOf(a.env, a.info.ArrayBuffer)
}
