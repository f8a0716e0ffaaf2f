package engine

import (
	"fmt"

	"github.com/dop251/goja"
)

// helperSource evaluates to an object of small functions the engine calls to
// get exact JavaScript semantics for host calls.
const helperSource = `(function () {
	class Buffer extends Uint8Array {
		static alloc(n) { return new Buffer(n); }
		static isBuffer(v) { return v instanceof Buffer; }
		static from(src) {
			const b = new Buffer(src.length);
			b.set(src);
			return b;
		}
	}
	const kinds = [Int8Array, Uint8Array, Uint8ClampedArray, Int16Array, Uint16Array,
		Int32Array, Uint32Array, Float32Array, Float64Array, BigInt64Array, BigUint64Array];
	const errors = [Error, TypeError, RangeError];
	const kindOf = v => kinds.findIndex(k => v instanceof k);
	return {
		Buffer: Buffer,
		typeOf: v => v === null ? "null" : typeof v,
		isArray: v => Array.isArray(v),
		isArrayBuffer: v => v instanceof ArrayBuffer,
		isBuffer: v => v instanceof Buffer,
		isError: v => v instanceof Error,
		isDataView: v => v instanceof DataView,
		instanceOf: (v, c) => v instanceof c,
		toObject: v => {
			if (v === null || v === undefined) {
				throw new TypeError("Cannot convert undefined or null to object");
			}
			return Object(v);
		},
		toNumber: v => +v,
		toString: v => ` + "`${v}`" + `,
		getProp: (o, k) => o[k],
		setProp: (o, k, v) => { o[k] = v; },
		hasProp: (o, k) => k in o,
		hasOwn: (o, k) => Object.prototype.hasOwnProperty.call(o, k),
		deleteProp: (o, k) => delete o[k],
		getPrototype: v => Object.getPrototypeOf(v),
		propertyNames: o => {
			const names = [];
			for (const k in o) names.push(k);
			return names;
		},
		newArray: n => new Array(n),
		newBuffer: n => new Buffer(n),
		newTypedArray: (kind, buffer, offset, length) => new kinds[kind](buffer, offset, length),
		typedArrayInfo: v => {
			const i = kindOf(v);
			return i < 0 ? null : [i, v.buffer, v.byteOffset, v.length];
		},
		makeError: (kind, code, msg) => {
			const e = new errors[kind](msg);
			if (code !== undefined) e.code = code;
			return e;
		},
	};
})()`

type helpers struct {
	buffer *goja.Object

	typeOf         goja.Callable
	isArray        goja.Callable
	isArrayBuffer  goja.Callable
	isBuffer       goja.Callable
	isError        goja.Callable
	isDataView     goja.Callable
	instanceOf     goja.Callable
	toObject       goja.Callable
	toNumber       goja.Callable
	toString       goja.Callable
	getProp        goja.Callable
	setProp        goja.Callable
	hasProp        goja.Callable
	hasOwn         goja.Callable
	deleteProp     goja.Callable
	getPrototype   goja.Callable
	propertyNames  goja.Callable
	newArray       goja.Callable
	newBuffer      goja.Callable
	newTypedArray  goja.Callable
	typedArrayInfo goja.Callable
	makeError      goja.Callable
}

func loadHelpers(vm *goja.Runtime) (*helpers, error) {
	v, err := vm.RunString(helperSource)
	if err != nil {
		return nil, fmt.Errorf("load helpers: %w", err)
	}
	obj := v.ToObject(vm)

	h := &helpers{}
	fns := map[string]*goja.Callable{
		"typeOf":         &h.typeOf,
		"isArray":        &h.isArray,
		"isArrayBuffer":  &h.isArrayBuffer,
		"isBuffer":       &h.isBuffer,
		"isError":        &h.isError,
		"isDataView":     &h.isDataView,
		"instanceOf":     &h.instanceOf,
		"toObject":       &h.toObject,
		"toNumber":       &h.toNumber,
		"toString":       &h.toString,
		"getProp":        &h.getProp,
		"setProp":        &h.setProp,
		"hasProp":        &h.hasProp,
		"hasOwn":         &h.hasOwn,
		"deleteProp":     &h.deleteProp,
		"getPrototype":   &h.getPrototype,
		"propertyNames":  &h.propertyNames,
		"newArray":       &h.newArray,
		"newBuffer":      &h.newBuffer,
		"newTypedArray":  &h.newTypedArray,
		"typedArrayInfo": &h.typedArrayInfo,
		"makeError":      &h.makeError,
	}
	for name, dst := range fns {
		fn, ok := goja.AssertFunction(obj.Get(name))
		if !ok {
			return nil, fmt.Errorf("load helpers: %s is not a function", name)
		}
		*dst = fn
	}

	buffer, ok := obj.Get("Buffer").(*goja.Object)
	if !ok {
		return nil, fmt.Errorf("load helpers: Buffer class missing")
	}
	h.buffer = buffer

	return h, nil
}
