// Package abitest provides an abi.Env decorator for tests that need to
// observe or disturb host calls.
package abitest

import (
	"github.com/wippyai/napi-runtime/abi"
)

// Recorder forwards every call to the wrapped environment. The methods it
// overrides are counted and can be forced to fail.
type Recorder struct {
	abi.Env

	calls  map[string]int
	faults map[string]abi.Status

	// Thrown holds the handles passed to Throw, in order.
	Thrown []abi.Value
	// Messages holds the messages passed to ThrowError, in order.
	Messages []string
}

// NewRecorder wraps env.
func NewRecorder(env abi.Env) *Recorder {
	return &Recorder{
		Env:    env,
		calls:  make(map[string]int),
		faults: make(map[string]abi.Status),
	}
}

// Fail makes every later call to method return status without reaching the
// host.
func (r *Recorder) Fail(method string, status abi.Status) {
	r.faults[method] = status
}

// Count returns how many times method was called.
func (r *Recorder) Count(method string) int {
	return r.calls[method]
}

func (r *Recorder) enter(method string) (abi.Status, bool) {
	r.calls[method]++
	status, ok := r.faults[method]
	return status, ok
}

func (r *Recorder) GetCbInfo(info abi.CallbackInfo, argv []abi.Value) (int, abi.Value, abi.Status) {
	if status, ok := r.enter("GetCbInfo"); ok {
		return 0, abi.Nil, status
	}
	return r.Env.GetCbInfo(info, argv)
}

func (r *Recorder) Typeof(v abi.Value) (abi.ValueType, abi.Status) {
	if status, ok := r.enter("Typeof"); ok {
		return 0, status
	}
	return r.Env.Typeof(v)
}

func (r *Recorder) IsArray(v abi.Value) (bool, abi.Status) {
	if status, ok := r.enter("IsArray"); ok {
		return false, status
	}
	return r.Env.IsArray(v)
}

func (r *Recorder) IsArrayBuffer(v abi.Value) (bool, abi.Status) {
	if status, ok := r.enter("IsArrayBuffer"); ok {
		return false, status
	}
	return r.Env.IsArrayBuffer(v)
}

func (r *Recorder) IsBuffer(v abi.Value) (bool, abi.Status) {
	if status, ok := r.enter("IsBuffer"); ok {
		return false, status
	}
	return r.Env.IsBuffer(v)
}

func (r *Recorder) IsTypedArray(v abi.Value) (bool, abi.Status) {
	if status, ok := r.enter("IsTypedArray"); ok {
		return false, status
	}
	return r.Env.IsTypedArray(v)
}

func (r *Recorder) GetTypedArrayInfo(v abi.Value) (abi.TypedArrayInfo, abi.Status) {
	if status, ok := r.enter("GetTypedArrayInfo"); ok {
		return abi.TypedArrayInfo{}, status
	}
	return r.Env.GetTypedArrayInfo(v)
}

func (r *Recorder) StrictEquals(a, b abi.Value) (bool, abi.Status) {
	if status, ok := r.enter("StrictEquals"); ok {
		return false, status
	}
	return r.Env.StrictEquals(a, b)
}

func (r *Recorder) Throw(v abi.Value) abi.Status {
	r.Thrown = append(r.Thrown, v)
	if status, ok := r.enter("Throw"); ok {
		return status
	}
	return r.Env.Throw(v)
}

func (r *Recorder) ThrowError(code, msg string) abi.Status {
	r.Messages = append(r.Messages, msg)
	if status, ok := r.enter("ThrowError"); ok {
		return status
	}
	return r.Env.ThrowError(code, msg)
}

func (r *Recorder) IsExceptionPending() (bool, abi.Status) {
	if status, ok := r.enter("IsExceptionPending"); ok {
		return false, status
	}
	return r.Env.IsExceptionPending()
}

// Probe wraps callbacks so that every invocation runs against a fresh
// Recorder configured with Faults.
type Probe struct {
	Faults    map[string]abi.Status
	Recorders []*Recorder
}

// Wrap returns cb with the recording environment substituted.
func (p *Probe) Wrap(cb abi.Callback) abi.Callback {
	return func(env abi.Env, info abi.CallbackInfo) abi.Value {
		rec := NewRecorder(env)
		for method, status := range p.Faults {
			rec.Fail(method, status)
		}
		p.Recorders = append(p.Recorders, rec)
		return cb(rec, info)
	}
}

// Last returns the recorder of the most recent invocation.
func (p *Probe) Last() *Recorder {
	if len(p.Recorders) == 0 {
		return nil
	}
	return p.Recorders[len(p.Recorders)-1]
}
