package napi

import "github.com/wippyai/napi-runtime/abi"

// Object is any host value whose typeof is "object", excluding null.
type Object struct {
	handle
}

// CheckObject wraps raw if its typeof is "object" and it is not null.
func CheckObject(env Env, raw abi.Value) (Object, error) {
	if err := expectType(env, raw, abi.Object, "Object"); err != nil {
		return Object{}, err
	}
	return Object{handle{env: env, raw: raw}}, nil
}

// NewObject creates an empty plain object.
func NewObject(env Env) (Object, error) {
	raw, status := env.host().CreateObject()
	if err := env.HandleStatus(status); err != nil {
		return Object{}, err
	}
	return Object{handle{env: env, raw: raw}}, nil
}

// AsObject returns o itself.
func (o Object) AsObject() Object { return o }

// Prototype returns the object's prototype, which may be null.
func (o Object) Prototype() (Any, error) {
	raw, status := o.env.host().GetPrototype(o.raw)
	if err := o.env.HandleStatus(status); err != nil {
		return Any{}, err
	}
	return Any{handle{env: o.env, raw: raw}}, nil
}

// PropertyNames returns the enumerable string keys, own and inherited, in
// for-in order.
func (o Object) PropertyNames() (Array, error) {
	raw, status := o.env.host().GetPropertyNames(o.raw)
	if err := o.env.HandleStatus(status); err != nil {
		return Array{}, err
	}
	return Array{handle{env: o.env, raw: raw}}, nil
}

// Set assigns value to the property named by key.
func (o Object) Set(key, value Value) error {
	return o.env.HandleStatus(o.env.host().SetProperty(o.raw, key.Raw(), value.Raw()))
}

// Get reads the property named by key, walking the prototype chain.
func (o Object) Get(key Value) (Any, error) {
	raw, status := o.env.host().GetProperty(o.raw, key.Raw())
	if err := o.env.HandleStatus(status); err != nil {
		return Any{}, err
	}
	return Any{handle{env: o.env, raw: raw}}, nil
}

// Has reports whether key is present on o or its prototype chain.
func (o Object) Has(key Value) (bool, error) {
	return o.test(o.env.host().HasProperty(o.raw, key.Raw()))
}

// HasOwn reports whether key is an own property of o.
func (o Object) HasOwn(key Value) (bool, error) {
	return o.test(o.env.host().HasOwnProperty(o.raw, key.Raw()))
}

// Delete removes the property and reports whether the deletion succeeded.
func (o Object) Delete(key Value) (bool, error) {
	return o.test(o.env.host().DeleteProperty(o.raw, key.Raw()))
}

// The Named variants create a fresh host string for name on every call.

func (o Object) SetNamed(name string, value Value) error {
	key, err := NewString(o.env, name)
	if err != nil {
		return err
	}
	return o.Set(key, value)
}

func (o Object) GetNamed(name string) (Any, error) {
	key, err := NewString(o.env, name)
	if err != nil {
		return Any{}, err
	}
	return o.Get(key)
}

func (o Object) HasNamed(name string) (bool, error) {
	key, err := NewString(o.env, name)
	if err != nil {
		return false, err
	}
	return o.Has(key)
}

func (o Object) DeleteNamed(name string) (bool, error) {
	key, err := NewString(o.env, name)
	if err != nil {
		return false, err
	}
	return o.Delete(key)
}

func (o Object) SetElement(index uint32, value Value) error {
	return o.env.HandleStatus(o.env.host().SetElement(o.raw, index, value.Raw()))
}

func (o Object) GetElement(index uint32) (Any, error) {
	raw, status := o.env.host().GetElement(o.raw, index)
	if err := o.env.HandleStatus(status); err != nil {
		return Any{}, err
	}
	return Any{handle{env: o.env, raw: raw}}, nil
}

func (o Object) HasElement(index uint32) (bool, error) {
	return o.test(o.env.host().HasElement(o.raw, index))
}

func (o Object) DeleteElement(index uint32) (bool, error) {
	return o.test(o.env.host().DeleteElement(o.raw, index))
}

func (o Object) test(ok bool, status abi.Status) (bool, error) {
	if err := o.env.HandleStatus(status); err != nil {
		return false, err
	}
	return ok, nil
}
