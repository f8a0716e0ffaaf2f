// Package engine hosts native callbacks inside a goja JavaScript runtime.
//
// GojaEngine implements the abi.Env contract on top of goja: native
// functions created with NewFunction receive a fresh environment for every
// invocation and see JavaScript values only as opaque abi.Value handles.
//
// # Handle Scopes
//
// Each invocation opens a scope. Every handle produced during the invocation
// belongs to that scope and is released when the callback returns:
//
//	JS calls f(a, b)
//	  scope opened, env + info handed to the callback
//	  callback queries args   -> handles 1, 2
//	  callback creates result -> handle 3
//	  callback returns 3      -> converted back to a JS value
//	  scope closed            -> handles 1..3 invalid
//
// A handle or environment used after its scope closed is rejected with
// abi.StatusInvalidArg and reported through the package logger. Nested
// invocations (JS -> native -> JS -> native) open nested scopes; outer
// handles stay valid until the outer callback returns.
//
// # Exceptions
//
// An exception scheduled with Throw or ThrowError is held by the scope and
// thrown into JavaScript once the callback returns, preserving the identity
// of the thrown value. JavaScript exceptions raised while the engine runs
// helper code on behalf of a host call (for example a throwing getter
// reached through GetProperty) become the pending exception and the call
// reports abi.StatusPendingException, as Node does.
//
// # Strings
//
// Latin-1 input is decoded with golang.org/x/text/encoding/charmap. UTF-16
// strings are created and read as exact code units, so lone surrogates
// survive a UTF-16 round trip.
package engine
