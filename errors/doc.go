// Package errors provides the error model shared by every host call.
//
// Kind is a closed taxonomy: one kind per host status code plus
// KindApplication for throwables synthesized by application code. An Error
// may carry a host exception handle; when it does, the trampoline rethrows
// that exact handle instead of building a new one.
//
// Host status codes are translated with FromStatus:
//
//	if err := errors.FromStatus(status); err != nil {
//		return err
//	}
//
// Use the Builder for anything richer:
//
//	err := errors.New(errors.KindApplication).
//		Phase(errors.PhaseApplication).
//		Exception(handle).
//		Build()
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
