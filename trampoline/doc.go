// Package trampoline turns ordinary Go functions into host callbacks.
//
// A trampoline is the abi.Callback a host invokes. The generated entry point
// does the same thing for every function:
//
//  1. wrap the raw environment in a napi.Env
//  2. fetch exactly N argument handles (N = declared parameters)
//  3. reject any other argument count with a TypeError
//     "Expected N arguments, but got M"
//  4. convert arguments left to right, stopping at the first failure
//  5. call the user function
//  6. return the result handle, or throw the error and return undefined
//
// Three front ends build the same Callback:
//
//	Build     explicit parameter list plus a handler over []napi.Value
//	FuncN     typed generics, checked by the compiler
//	Generate  reflection over any func(napi.Env, ...) (R, error)
//
// cmd/napigen generates FuncN registrations from interface declarations.
//
// # Errors
//
// A returned error is thrown with this protocol:
//
//	exception attached    rethrow that exact value
//	exception pending     leave it; it propagates on return
//	otherwise             throw Error(err.Error())
//
// If the message cannot cross the ABI (it holds a NUL byte) or the host
// refuses it, the kind description is thrown instead.
package trampoline
