// Package napi wraps raw host handles in statically typed, runtime-validated
// views.
//
// Every host value reaches native code as an untyped abi.Value. The Check
// constructors ask the host for the value's runtime tag and return a typed
// view only when the tag matches:
//
//	n, err := napi.CheckNumber(env, raw)
//	if err != nil {
//		return err // a TypeError ("Number expected") is attached
//	}
//	f, err := n.Float64()
//
// Views are lightweight: a view is the environment plus one handle, and the
// buffer-backed views additionally hold the host's storage slice. None of
// them own host memory, and none of them may be kept past the callback that
// produced them.
//
// # Variants
//
//	Any          every handle, with As* downcasts
//	Undefined    typeof undefined
//	Null         strictly equal to null
//	Boolean      typeof boolean
//	Number       typeof number
//	String       typeof string
//	Object       typeof object
//	Function     typeof function
//	Array        Array.isArray
//	ArrayBuffer  instanceof ArrayBuffer
//	Buffer       Buffer.isBuffer
//	TypedArray   a typed array whose element kind matches T
//
// Validation failures are *errors.Error values of kind KindApplication with a
// freshly created host TypeError attached, so a trampoline can rethrow them
// verbatim.
package napi
