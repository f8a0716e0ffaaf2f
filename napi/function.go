package napi

import "github.com/wippyai/napi-runtime/abi"

// Function is a callable host value.
type Function struct {
	handle
}

// CheckFunction wraps raw if the host reports it as a function.
func CheckFunction(env Env, raw abi.Value) (Function, error) {
	if err := expectType(env, raw, abi.Function, "Function"); err != nil {
		return Function{}, err
	}
	return Function{handle{env: env, raw: raw}}, nil
}

// NewFunction exposes cb to the host as a function named name.
func NewFunction(env Env, name string, cb abi.Callback) (Function, error) {
	raw, status := env.host().CreateFunction(name, cb)
	if err := env.HandleStatus(status); err != nil {
		return Function{}, err
	}
	return Function{handle{env: env, raw: raw}}, nil
}

// AsObject views the function as an object for property access.
func (f Function) AsObject() Object { return Object{f.handle} }

// Call invokes the function with recv as this. A nil recv or a nil
// argument is passed as undefined.
// If the function throws, the error has kind KindPendingException and the
// exception stays pending so that it propagates once the callback returns.
func (f Function) Call(recv Value, args ...Value) (Any, error) {
	host := f.env.host()

	var undef abi.Value
	raw := func(v Value) (abi.Value, error) {
		if v != nil {
			return v.Raw(), nil
		}
		if undef == abi.Nil {
			u, status := host.GetUndefined()
			if err := f.env.HandleStatus(status); err != nil {
				return abi.Nil, err
			}
			undef = u
		}
		return undef, nil
	}

	this, err := raw(recv)
	if err != nil {
		return Any{}, err
	}

	argv := make([]abi.Value, len(args))
	for i, a := range args {
		if argv[i], err = raw(a); err != nil {
			return Any{}, err
		}
	}

	res, status := host.CallFunction(this, f.raw, argv)
	if err := f.env.HandleStatus(status); err != nil {
		return Any{}, err
	}
	return Any{handle{env: f.env, raw: res}}, nil
}
