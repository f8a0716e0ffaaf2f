package napi

import (
	"github.com/wippyai/napi-runtime/abi"
)

// Value is the capability shared by every view.
type Value interface {
	// Raw returns the host handle.
	Raw() abi.Value
	// Env returns the environment the handle belongs to.
	Env() Env

	ValueType() (abi.ValueType, error)

	ToBoolean() (Boolean, error)
	ToNumber() (Number, error)
	ToObject() (Object, error)
	ToString() (String, error)

	IsArray() (bool, error)
	IsArrayBuffer() (bool, error)
	IsBuffer() (bool, error)
	IsError() (bool, error)
	IsTypedArray() (bool, error)
	IsDataView() (bool, error)

	InstanceOf(constructor Object) (bool, error)
	StrictEquals(other Value) (bool, error)

	// AsAny forgets the static type.
	AsAny() Any

	view() handle
}

// ObjectLike is implemented by views whose values are host objects.
type ObjectLike interface {
	Value
	AsObject() Object
}

// handle is embedded by every view.
type handle struct {
	env Env
	raw abi.Value
}

func (h handle) view() handle   { return h }
func (h handle) Raw() abi.Value { return h.raw }
func (h handle) Env() Env       { return h.env }
func (h handle) AsAny() Any     { return Any{h} }

func (h handle) ValueType() (abi.ValueType, error) {
	t, status := h.env.host().Typeof(h.raw)
	if err := h.env.HandleStatus(status); err != nil {
		return 0, err
	}
	return t, nil
}

func (h handle) coerce(fn func(abi.Env, abi.Value) (abi.Value, abi.Status)) (handle, error) {
	raw, status := fn(h.env.host(), h.raw)
	if err := h.env.HandleStatus(status); err != nil {
		return handle{}, err
	}
	return handle{env: h.env, raw: raw}, nil
}

// ToBoolean applies the host's boolean coercion.
func (h handle) ToBoolean() (Boolean, error) {
	c, err := h.coerce(abi.Env.CoerceToBool)
	return Boolean{c}, err
}

// ToNumber applies the host's numeric coercion. It fails only when the host
// does, for example when a valueOf hook throws.
func (h handle) ToNumber() (Number, error) {
	c, err := h.coerce(abi.Env.CoerceToNumber)
	return Number{c}, err
}

// ToObject applies the host's object coercion. null and undefined fail.
func (h handle) ToObject() (Object, error) {
	c, err := h.coerce(abi.Env.CoerceToObject)
	return Object{c}, err
}

// ToString applies the host's string coercion.
func (h handle) ToString() (String, error) {
	c, err := h.coerce(abi.Env.CoerceToString)
	return String{c}, err
}

func (h handle) is(fn func(abi.Env, abi.Value) (bool, abi.Status)) (bool, error) {
	ok, status := fn(h.env.host(), h.raw)
	if err := h.env.HandleStatus(status); err != nil {
		return false, err
	}
	return ok, nil
}

func (h handle) IsArray() (bool, error)       { return h.is(abi.Env.IsArray) }
func (h handle) IsArrayBuffer() (bool, error) { return h.is(abi.Env.IsArrayBuffer) }
func (h handle) IsBuffer() (bool, error)      { return h.is(abi.Env.IsBuffer) }
func (h handle) IsError() (bool, error)       { return h.is(abi.Env.IsError) }
func (h handle) IsTypedArray() (bool, error)  { return h.is(abi.Env.IsTypedArray) }
func (h handle) IsDataView() (bool, error)    { return h.is(abi.Env.IsDataView) }

// InstanceOf evaluates `value instanceof constructor`.
func (h handle) InstanceOf(constructor Object) (bool, error) {
	ok, status := h.env.host().InstanceOf(h.raw, constructor.raw)
	if err := h.env.HandleStatus(status); err != nil {
		return false, err
	}
	return ok, nil
}

// StrictEquals evaluates `value === other`.
func (h handle) StrictEquals(other Value) (bool, error) {
	ok, status := h.env.host().StrictEquals(h.raw, other.Raw())
	if err := h.env.HandleStatus(status); err != nil {
		return false, err
	}
	return ok, nil
}

// expectType is the shared check for tag-validated variants.
func expectType(env Env, raw abi.Value, want abi.ValueType, name string) error {
	t, status := env.host().Typeof(raw)
	if err := env.HandleStatus(status); err != nil {
		return err
	}
	if t != want {
		return env.mismatch(name)
	}
	return nil
}

// expectPredicate is the shared check for predicate-validated variants.
func expectPredicate(env Env, raw abi.Value, pred func(abi.Env, abi.Value) (bool, abi.Status), name string) error {
	ok, status := pred(env.host(), raw)
	if err := env.HandleStatus(status); err != nil {
		return err
	}
	if !ok {
		return env.mismatch(name)
	}
	return nil
}
