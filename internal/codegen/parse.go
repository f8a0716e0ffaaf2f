package codegen

import (
	"fmt"
	"regexp"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/napi-runtime/errors"
)

// Interface is one parsed declaration block.
type Interface struct {
	Name  string
	Funcs []Func
}

// Func is one declared function.
type Func struct {
	Name   string
	Params []Param
	Result *Type
}

type Param struct {
	Name string
	Type Type
}

// Type is a declared parameter or result type. List is set for list<T>,
// with Elem holding T.
type Type struct {
	Elem wit.Type
	List bool
}

func (t Type) String() string {
	if t.List {
		return "list<" + typeName(t.Elem) + ">"
	}
	return typeName(t.Elem)
}

var (
	interfacePattern = regexp.MustCompile(`interface\s+([a-zA-Z][a-zA-Z0-9-]*)\s*\{`)
	funcPattern      = regexp.MustCompile(`(?:export\s+)?([a-zA-Z_][a-zA-Z0-9_-]*)\s*:\s*func\s*\(([^)]*)\)(?:\s*->\s*([^;]+))?`)
	commentPattern   = regexp.MustCompile(`//[^\n]*`)
)

// Parse extracts the interface declared in src.
// Pattern: [export] name: func(params) -> result;
// fallback names the interface when src declares none.
func Parse(src, fallback string) (*Interface, error) {
	src = commentPattern.ReplaceAllString(src, "")

	iface := &Interface{Name: fallback}
	if m := interfacePattern.FindStringSubmatch(src); m != nil {
		iface.Name = m[1]
	}
	if iface.Name == "" {
		return nil, parseError("no interface name")
	}

	seen := make(map[string]bool)
	for _, match := range funcPattern.FindAllStringSubmatch(src, -1) {
		fn := Func{Name: match[1]}
		if seen[fn.Name] {
			return nil, parseError("function %q declared twice", fn.Name)
		}
		seen[fn.Name] = true

		if paramsStr := strings.TrimSpace(match[2]); paramsStr != "" {
			for i, p := range splitParams(paramsStr) {
				name, typStr, ok := strings.Cut(p, ":")
				if !ok {
					return nil, parseError("%s: parameter %d has no type", fn.Name, i)
				}
				t, err := parseType(typStr)
				if err != nil {
					return nil, parseError("%s: parameter %s: %v", fn.Name, strings.TrimSpace(name), err)
				}
				fn.Params = append(fn.Params, Param{Name: strings.TrimSpace(name), Type: t})
			}
		}

		if resultStr := strings.TrimSpace(match[3]); resultStr != "" && resultStr != "()" {
			if strings.HasPrefix(resultStr, "(") {
				return nil, parseError("%s: multiple results are not supported", fn.Name)
			}
			t, err := parseType(resultStr)
			if err != nil {
				return nil, parseError("%s: result: %v", fn.Name, err)
			}
			fn.Result = &t
		}

		iface.Funcs = append(iface.Funcs, fn)
	}

	if len(iface.Funcs) == 0 {
		return nil, parseError("no functions found")
	}
	return iface, nil
}

// splitParams splits parameter list, handling nested angle brackets.
func splitParams(s string) []string {
	var result []string
	var current strings.Builder
	depth := 0

	for _, ch := range s {
		switch ch {
		case '<', '(':
			depth++
			current.WriteRune(ch)
		case '>', ')':
			depth--
			current.WriteRune(ch)
		case ',':
			if depth == 0 {
				if str := strings.TrimSpace(current.String()); str != "" {
					result = append(result, str)
				}
				current.Reset()
			} else {
				current.WriteRune(ch)
			}
		default:
			current.WriteRune(ch)
		}
	}

	if str := strings.TrimSpace(current.String()); str != "" {
		result = append(result, str)
	}

	return result
}

func parseType(s string) (Type, error) {
	s = strings.TrimSpace(s)

	if inner, ok := strings.CutPrefix(s, "list<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		if !ok {
			return Type{}, fmt.Errorf("unterminated list type %q", s)
		}
		elem, err := wit.ParseType(strings.TrimSpace(inner))
		if err != nil {
			return Type{}, err
		}
		if _, ok := typedArrays[typeName(elem)]; !ok {
			return Type{}, fmt.Errorf("list<%s> has no typed array form", typeName(elem))
		}
		return Type{Elem: elem, List: true}, nil
	}

	elem, err := wit.ParseType(s)
	if err != nil {
		return Type{}, err
	}
	return Type{Elem: elem}, nil
}

func parseError(format string, args ...any) error {
	return errors.New(errors.KindInvalidArg).
		Phase(errors.PhaseGenerate).
		Message(format, args...).
		Build()
}
