package trampoline

import (
	"fmt"
	"reflect"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/napi"
)

var (
	envType   = reflect.TypeFor[napi.Env]()
	valueType = reflect.TypeFor[napi.Value]()
	errorType = reflect.TypeFor[error]()
)

// SignatureError reports a function Generate cannot wrap.
type SignatureError struct {
	Symbol string
	Reason string
}

func (e *SignatureError) Error() string {
	return fmt.Sprintf("trampoline %q: %s", e.Symbol, e.Reason)
}

// Unwrap exposes the structured form so errors.IsKind works on it.
func (e *SignatureError) Unwrap() error {
	return errors.New(errors.KindInvalidArg).
		Phase(errors.PhaseGenerate).
		Message("%s", e.Reason).
		Build()
}

var (
	convertersMu sync.RWMutex
	converters   = map[reflect.Type]Converter{}
)

func init() {
	registerBuiltin(napi.CheckAny)
	registerBuiltin(napi.CheckUndefined)
	registerBuiltin(napi.CheckNull)
	registerBuiltin(napi.CheckBoolean)
	registerBuiltin(napi.CheckNumber)
	registerBuiltin(napi.CheckString)
	registerBuiltin(napi.CheckObject)
	registerBuiltin(napi.CheckArray)
	registerBuiltin(napi.CheckFunction)
	registerBuiltin(napi.CheckArrayBuffer)
	registerBuiltin(napi.CheckBuffer)
	registerBuiltin(napi.CheckTypedArray[int8])
	registerBuiltin(napi.CheckTypedArray[uint8])
	registerBuiltin(napi.CheckTypedArray[napi.Uint8Clamped])
	registerBuiltin(napi.CheckTypedArray[int16])
	registerBuiltin(napi.CheckTypedArray[uint16])
	registerBuiltin(napi.CheckTypedArray[int32])
	registerBuiltin(napi.CheckTypedArray[uint32])
	registerBuiltin(napi.CheckTypedArray[float32])
	registerBuiltin(napi.CheckTypedArray[float64])
	registerBuiltin(napi.CheckTypedArray[int64])
	registerBuiltin(napi.CheckTypedArray[uint64])

	// A napi.Value parameter accepts anything and receives an Any.
	converters[valueType] = Check[napi.Any](napi.CheckAny).Param("").Convert
}

func registerBuiltin[T napi.Value](check Check[T]) {
	converters[reflect.TypeFor[T]()] = check.Param("").Convert
}

// RegisterConverter makes T usable as a Generate parameter type. A later
// registration for the same type replaces the earlier one.
func RegisterConverter[T napi.Value](check Check[T]) {
	convertersMu.Lock()
	defer convertersMu.Unlock()

	converters[reflect.TypeFor[T]()] = check.Param("").Convert
}

func converterFor(t reflect.Type) (Converter, bool) {
	convertersMu.RLock()
	defer convertersMu.RUnlock()

	c, ok := converters[t]
	return c, ok
}

// Generate builds a trampoline for fn by reflection. fn must have the shape
//
//	func(napi.Env, P1, ..., Pn) (R, error)
//
// where every Pi has a registered converter and R implements napi.Value.
// Variadic functions are rejected.
func Generate(symbol string, fn any) (*Callback, error) {
	fv := reflect.ValueOf(fn)
	if fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, &SignatureError{Symbol: symbol, Reason: fmt.Sprintf("expected a function, got %T", fn)}
	}

	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, &SignatureError{Symbol: symbol, Reason: "variadic functions are not supported"}
	}
	if ft.NumIn() == 0 || ft.In(0) != envType {
		return nil, &SignatureError{Symbol: symbol, Reason: "first parameter must be napi.Env"}
	}
	if ft.NumOut() != 2 {
		return nil, &SignatureError{Symbol: symbol, Reason: fmt.Sprintf("expected 2 results, got %d", ft.NumOut())}
	}
	if !ft.Out(0).Implements(valueType) {
		return nil, &SignatureError{Symbol: symbol, Reason: fmt.Sprintf("result %v does not implement napi.Value", ft.Out(0))}
	}
	if ft.Out(1) != errorType {
		return nil, &SignatureError{Symbol: symbol, Reason: "second result must be error"}
	}

	params := make([]Param, ft.NumIn()-1)
	for i := range params {
		pt := ft.In(i + 1)
		conv, ok := converterFor(pt)
		if !ok {
			return nil, &SignatureError{Symbol: symbol, Reason: fmt.Sprintf("no converter for parameter %d of type %v", i, pt)}
		}
		params[i] = Param{Name: arg(i), Convert: conv}
	}

	Logger().Debug("generated trampoline",
		zap.String("symbol", symbol),
		zap.Stringer("signature", ft))

	return Build(symbol, params, func(env napi.Env, args []napi.Value) (napi.Value, error) {
		in := make([]reflect.Value, len(args)+1)
		in[0] = reflect.ValueOf(env)
		for i, a := range args {
			in[i+1] = reflect.ValueOf(a).Convert(ft.In(i + 1))
		}

		out := fv.Call(in)
		if e := out[1].Interface(); e != nil {
			return nil, e.(error)
		}
		if out[0].Kind() == reflect.Interface && out[0].IsNil() {
			return nil, nil
		}
		return out[0].Interface().(napi.Value), nil
	}), nil
}

// MustGenerate is Generate that panics on a bad signature.
func MustGenerate(symbol string, fn any) *Callback {
	cb, err := Generate(symbol, fn)
	if err != nil {
		panic(err)
	}
	return cb
}
