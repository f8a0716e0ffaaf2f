package napi

import "github.com/wippyai/napi-runtime/abi"

// ArrayBuffer is a host ArrayBuffer together with a view of its storage.
type ArrayBuffer struct {
	handle
	data []byte
}

// CheckArrayBuffer validates raw and fetches its backing store.
func CheckArrayBuffer(env Env, raw abi.Value) (ArrayBuffer, error) {
	if err := expectPredicate(env, raw, abi.Env.IsArrayBuffer, "ArrayBuffer"); err != nil {
		return ArrayBuffer{}, err
	}
	return arrayBufferOf(env, raw)
}

func arrayBufferOf(env Env, raw abi.Value) (ArrayBuffer, error) {
	data, status := env.host().GetArrayBufferInfo(raw)
	if err := env.HandleStatus(status); err != nil {
		return ArrayBuffer{}, err
	}
	return ArrayBuffer{handle: handle{env: env, raw: raw}, data: data}, nil
}

// NewArrayBuffer allocates a zeroed host ArrayBuffer of n bytes.
func NewArrayBuffer(env Env, n int) (ArrayBuffer, error) {
	data, raw, status := env.host().CreateArrayBuffer(n)
	if err := env.HandleStatus(status); err != nil {
		return ArrayBuffer{}, err
	}
	return ArrayBuffer{handle: handle{env: env, raw: raw}, data: data}, nil
}

func (b ArrayBuffer) AsObject() Object { return Object{b.handle} }

// Data returns the host storage. Writes are visible to the host.
func (b ArrayBuffer) Data() []byte { return b.data }
func (b ArrayBuffer) Len() int     { return len(b.data) }
func (b ArrayBuffer) IsEmpty() bool {
	return len(b.data) == 0
}

// Buffer is a host Buffer, a Uint8Array subclass.
type Buffer struct {
	handle
	data []byte
}

// CheckBuffer validates raw as a Buffer and fetches its storage.
func CheckBuffer(env Env, raw abi.Value) (Buffer, error) {
	if err := expectPredicate(env, raw, abi.Env.IsBuffer, "Buffer"); err != nil {
		return Buffer{}, err
	}
	data, status := env.host().GetBufferInfo(raw)
	if err := env.HandleStatus(status); err != nil {
		return Buffer{}, err
	}
	return Buffer{handle: handle{env: env, raw: raw}, data: data}, nil
}

// NewBuffer allocates a zeroed host Buffer of n bytes.
func NewBuffer(env Env, n int) (Buffer, error) {
	data, raw, status := env.host().CreateBuffer(n)
	if err := env.HandleStatus(status); err != nil {
		return Buffer{}, err
	}
	return Buffer{handle: handle{env: env, raw: raw}, data: data}, nil
}

func (b Buffer) AsObject() Object { return Object{b.handle} }

func (b Buffer) Data() []byte  { return b.data }
func (b Buffer) Len() int      { return len(b.data) }
func (b Buffer) IsEmpty() bool { return len(b.data) == 0 }
