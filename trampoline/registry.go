package trampoline

import (
	"reflect"
	"sort"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/napi"
)

// Registry collects the callbacks one addon exports.
type Registry struct {
	funcs map[string]*Callback
	mu    sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]*Callback),
	}
}

// Register adds cb under its symbol. Symbols are unique per registry.
func (r *Registry) Register(cb *Callback) error {
	if cb == nil {
		return errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseGenerate).
			Message("nil callback").
			Build()
	}
	if cb.Symbol() == "" {
		return errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseGenerate).
			Message("symbol cannot be empty").
			Build()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, dup := r.funcs[cb.Symbol()]; dup {
		return errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseGenerate).
			Message("symbol %q already registered", cb.Symbol()).
			Build()
	}
	r.funcs[cb.Symbol()] = cb

	Logger().Debug("registered callback",
		zap.String("symbol", cb.Symbol()),
		zap.Int("arity", cb.Arity()))
	return nil
}

// MustRegister is Register that panics on error.
func (r *Registry) MustRegister(cbs ...*Callback) *Registry {
	for _, cb := range cbs {
		if err := r.Register(cb); err != nil {
			panic(err)
		}
	}
	return r
}

// RegisterFunc generates a trampoline for fn and registers it.
func (r *Registry) RegisterFunc(symbol string, fn any) error {
	cb, err := Generate(symbol, fn)
	if err != nil {
		return err
	}
	return r.Register(cb)
}

// RegisterMethods registers every exported method of h that Generate
// accepts. Method names become lowerCamelCase symbols (SumOfSquares ->
// sumOfSquares, HTTPGet -> httpGet). Methods with other shapes are skipped.
func (r *Registry) RegisterMethods(h any) error {
	rv := reflect.ValueOf(h)
	rt := rv.Type()

	for i := 0; i < rt.NumMethod(); i++ {
		method := rt.Method(i)
		if !method.IsExported() {
			continue
		}

		symbol := toLowerCamel(method.Name)
		cb, err := Generate(symbol, rv.Method(i).Interface())
		if err != nil {
			Logger().Debug("skipping method",
				zap.String("method", method.Name), zap.Error(err))
			continue
		}
		if err := r.Register(cb); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the callback registered under symbol.
func (r *Registry) Lookup(symbol string) (*Callback, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cb, ok := r.funcs[symbol]
	return cb, ok
}

// Callbacks returns all callbacks ordered by symbol.
func (r *Registry) Callbacks() []*Callback {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Callback, 0, len(r.funcs))
	for _, cb := range r.funcs {
		out = append(out, cb)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Symbol() < out[j].Symbol()
	})
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.funcs)
}

// Install creates one host function per callback and sets it on exports.
func (r *Registry) Install(env napi.Env, exports napi.Object) error {
	for _, cb := range r.Callbacks() {
		fn, err := napi.NewFunction(env, cb.Symbol(), cb.Entry())
		if err != nil {
			return err
		}
		if err := exports.SetNamed(cb.Symbol(), fn); err != nil {
			return err
		}
	}
	return nil
}

// Exports returns a fresh object holding every registered function.
func (r *Registry) Exports(env napi.Env) (napi.Object, error) {
	exports, err := napi.NewObject(env)
	if err != nil {
		return napi.Object{}, err
	}
	if err := r.Install(env, exports); err != nil {
		return napi.Object{}, err
	}
	return exports, nil
}

// toLowerCamel lowercases the leading word of a Go identifier. A leading
// acronym is lowercased up to the capital that starts the next word.
func toLowerCamel(s string) string {
	runes := []rune(s)

	end := 0
	for end < len(runes) && unicode.IsUpper(runes[end]) {
		end++
	}
	if end > 1 && end < len(runes) && unicode.IsLower(runes[end]) {
		end--
	}

	for i := 0; i < end; i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
