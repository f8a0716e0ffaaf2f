// Package abi describes the host runtime's native embedding ABI.
//
// The host (a JavaScript engine) hands native callbacks two opaque
// references: an environment for the current call and an invocation-info
// handle. Every value crossing the boundary is an opaque Value handle whose
// type is known only to the host. Each host call reports its outcome as a
// Status; results are returned alongside it.
//
// The surface mirrors N-API closely:
//
//	napi_get_cb_info          Env.GetCbInfo
//	napi_typeof               Env.Typeof
//	napi_create_double        Env.CreateDouble
//	napi_get_value_string_*   Env.GetValueStringUTF8/Latin1/UTF16
//	napi_create_typedarray    Env.CreateTypedArray
//	napi_throw                Env.Throw
//
// Nothing in this package validates anything. Callers are expected to go
// through package napi, which wraps handles in typed views, and package
// trampoline, which builds Callback entry points.
package abi
