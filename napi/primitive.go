package napi

import "github.com/wippyai/napi-runtime/abi"

// Undefined is the host's undefined.
type Undefined struct {
	handle
}

// CheckUndefined wraps raw if its typeof is "undefined".
func CheckUndefined(env Env, raw abi.Value) (Undefined, error) {
	if err := expectType(env, raw, abi.Undefined, "Undefined"); err != nil {
		return Undefined{}, err
	}
	return Undefined{handle{env: env, raw: raw}}, nil
}

// Null is the host's null.
type Null struct {
	handle
}

// CheckNull compares raw against a freshly obtained null with strict
// equality.
func CheckNull(env Env, raw abi.Value) (Null, error) {
	h := env.host()

	null, status := h.GetNull()
	if err := env.HandleStatus(status); err != nil {
		return Null{}, err
	}

	same, status := h.StrictEquals(raw, null)
	if err := env.HandleStatus(status); err != nil {
		return Null{}, err
	}
	if !same {
		return Null{}, env.mismatch("Null")
	}
	return Null{handle{env: env, raw: raw}}, nil
}

// Boolean is a host boolean primitive.
type Boolean struct {
	handle
}

// CheckBoolean wraps raw if its typeof is "boolean".
func CheckBoolean(env Env, raw abi.Value) (Boolean, error) {
	if err := expectType(env, raw, abi.Boolean, "Boolean"); err != nil {
		return Boolean{}, err
	}
	return Boolean{handle{env: env, raw: raw}}, nil
}

// NewBoolean returns the host's canonical true or false.
func NewBoolean(env Env, b bool) (Boolean, error) {
	raw, status := env.host().GetBoolean(b)
	if err := env.HandleStatus(status); err != nil {
		return Boolean{}, err
	}
	return Boolean{handle{env: env, raw: raw}}, nil
}

func True(env Env) (Boolean, error)  { return NewBoolean(env, true) }
func False(env Env) (Boolean, error) { return NewBoolean(env, false) }

// Bool reads the primitive back.
func (b Boolean) Bool() (bool, error) {
	v, status := b.env.host().GetValueBool(b.raw)
	if err := b.env.HandleStatus(status); err != nil {
		return false, err
	}
	return v, nil
}

// Number is a host number primitive (an IEEE-754 double).
type Number struct {
	handle
}

// CheckNumber wraps raw if its typeof is "number".
func CheckNumber(env Env, raw abi.Value) (Number, error) {
	if err := expectType(env, raw, abi.Number, "Number"); err != nil {
		return Number{}, err
	}
	return Number{handle{env: env, raw: raw}}, nil
}

func newNumber(env Env, raw abi.Value, status abi.Status) (Number, error) {
	if err := env.HandleStatus(status); err != nil {
		return Number{}, err
	}
	return Number{handle{env: env, raw: raw}}, nil
}

// NewInt32 creates a number holding n exactly.
func NewInt32(env Env, n int32) (Number, error) {
	raw, status := env.host().CreateInt32(n)
	return newNumber(env, raw, status)
}

// NewUint32 creates a number holding n exactly.
func NewUint32(env Env, n uint32) (Number, error) {
	raw, status := env.host().CreateUint32(n)
	return newNumber(env, raw, status)
}

// NewInt64 creates a number from n. Only the safe integer range
// [-(2^53-1), 2^53-1] round-trips through Int64 exactly; larger magnitudes
// round to the nearest double, so 2^53+1 reads back as 2^53.
func NewInt64(env Env, n int64) (Number, error) {
	raw, status := env.host().CreateInt64(n)
	return newNumber(env, raw, status)
}

// NewFloat64 creates a number from f, including NaN and infinities.
func NewFloat64(env Env, f float64) (Number, error) {
	raw, status := env.host().CreateDouble(f)
	return newNumber(env, raw, status)
}

// Int32 converts with the host's int32 rules: NaN and infinities become 0,
// other values wrap modulo 2^32.
func (n Number) Int32() (int32, error) {
	v, status := n.env.host().GetValueInt32(n.raw)
	if err := n.env.HandleStatus(status); err != nil {
		return 0, err
	}
	return v, nil
}

func (n Number) Uint32() (uint32, error) {
	v, status := n.env.host().GetValueUint32(n.raw)
	if err := n.env.HandleStatus(status); err != nil {
		return 0, err
	}
	return v, nil
}

// Int64 truncates toward zero. NaN becomes 0 and out-of-range values
// saturate.
func (n Number) Int64() (int64, error) {
	v, status := n.env.host().GetValueInt64(n.raw)
	if err := n.env.HandleStatus(status); err != nil {
		return 0, err
	}
	return v, nil
}

// Float64 returns the number unchanged.
func (n Number) Float64() (float64, error) {
	v, status := n.env.host().GetValueDouble(n.raw)
	if err := n.env.HandleStatus(status); err != nil {
		return 0, err
	}
	return v, nil
}
