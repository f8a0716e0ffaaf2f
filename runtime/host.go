package runtime

import (
	"sort"

	"github.com/wippyai/napi-runtime/errors"
	"github.com/wippyai/napi-runtime/trampoline"
)

// Host is the interface for struct-based addons.
// All exported methods with a callback shape are exported, see
// trampoline.Registry.RegisterMethods.
type Host interface {
	// Namespace returns the name scripts pass to require.
	Namespace() string
}

// ExplicitRegistrar allows hosts to provide exact export names
// when automatic lowerCamelCase conversion doesn't apply.
type ExplicitRegistrar interface {
	Register() map[string]any
}

// RegisterHost builds a registry from h and loads it as an addon.
func (r *Runtime) RegisterHost(h Host) (*Addon, error) {
	reg, err := HostRegistry(h)
	if err != nil {
		return nil, err
	}
	return r.LoadAddon(h.Namespace(), reg)
}

// HostRegistry collects the callbacks h exports.
func HostRegistry(h Host) (*trampoline.Registry, error) {
	if h.Namespace() == "" {
		return nil, errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseHost).
			Message("namespace cannot be empty").
			Build()
	}

	reg := trampoline.NewRegistry()

	if er, ok := h.(ExplicitRegistrar); ok {
		funcs := er.Register()
		names := make([]string, 0, len(funcs))
		for name := range funcs {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			if err := reg.RegisterFunc(name, funcs[name]); err != nil {
				return nil, err
			}
		}
		return reg, nil
	}

	if err := reg.RegisterMethods(h); err != nil {
		return nil, err
	}
	if reg.Len() == 0 {
		return nil, errors.New(errors.KindInvalidArg).
			Phase(errors.PhaseGenerate).
			Message("%T exports no callbacks", h).
			Build()
	}
	return reg, nil
}
