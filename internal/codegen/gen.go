// Package codegen turns WIT-style interface declarations into Go code that
// registers typed trampolines for every declared function.
package codegen

import (
	"bytes"
	"go/format"
	"go/token"
	"strings"
	"text/template"
	"unicode"

	"go.bytecodealliance.org/wit"
)

// MaxParams is the widest signature trampoline.FuncN covers.
const MaxParams = 6

// Options controls the emitted file.
type Options struct {
	Package string
	Source  string
}

type goType struct {
	Name  string
	Check string
}

var typedArrays = map[string]goType{
	"s8":  {"napi.Int8Array", "napi.CheckTypedArray[int8]"},
	"u8":  {"napi.Uint8Array", "napi.CheckTypedArray[uint8]"},
	"s16": {"napi.Int16Array", "napi.CheckTypedArray[int16]"},
	"u16": {"napi.Uint16Array", "napi.CheckTypedArray[uint16]"},
	"s32": {"napi.Int32Array", "napi.CheckTypedArray[int32]"},
	"u32": {"napi.Uint32Array", "napi.CheckTypedArray[uint32]"},
	"f32": {"napi.Float32Array", "napi.CheckTypedArray[float32]"},
	"f64": {"napi.Float64Array", "napi.CheckTypedArray[float64]"},
	"s64": {"napi.BigInt64Array", "napi.CheckTypedArray[int64]"},
	"u64": {"napi.BigUint64Array", "napi.CheckTypedArray[uint64]"},
}

var (
	booleanType   = goType{"napi.Boolean", "napi.CheckBoolean"}
	numberType    = goType{"napi.Number", "napi.CheckNumber"}
	stringType    = goType{"napi.String", "napi.CheckString"}
	undefinedType = goType{"napi.Undefined", "napi.CheckUndefined"}
)

func typeName(t wit.Type) string {
	switch t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.U8:
		return "u8"
	case wit.S16:
		return "s16"
	case wit.U16:
		return "u16"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.Char:
		return "char"
	case wit.String:
		return "string"
	default:
		return "unknown"
	}
}

// goTypeOf maps a declared type to its checked view.
func goTypeOf(t Type) goType {
	name := typeName(t.Elem)
	if t.List {
		return typedArrays[name]
	}
	switch name {
	case "bool":
		return booleanType
	case "char", "string":
		return stringType
	default:
		return numberType
	}
}

// Symbol is the export name scripts call fn by.
func (fn Func) Symbol() string {
	return toLowerCamel(fn.Name)
}

// JSName names the script-side type: a typed array constructor for lists,
// otherwise "boolean", "number" or "string".
func (t Type) JSName() string {
	g := goTypeOf(t)
	if t.List {
		return strings.TrimPrefix(g.Name, "napi.")
	}
	switch g {
	case booleanType:
		return "boolean"
	case stringType:
		return "string"
	default:
		return "number"
	}
}

type tmplParam struct {
	Name string
	Type goType
}

type tmplFunc struct {
	Symbol string
	Method string
	Params []tmplParam
	Result goType
	Decl   string
}

type tmplData struct {
	Package   string
	Source    string
	Interface string
	Funcs     []tmplFunc
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by napigen{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/wippyai/napi-runtime/napi"
	"github.com/wippyai/napi-runtime/trampoline"
)

// {{.Interface}} is implemented by the Go side of the {{.Interface}} addon.
type {{.Interface}} interface {
{{- range .Funcs}}
	// {{.Method}} backs {{.Decl}}.
	{{.Method}}(env napi.Env{{range .Params}}, {{.Name}} {{.Type.Name}}{{end}}) ({{.Result.Name}}, error)
{{- end}}
}

// {{.Interface}}Registry builds the callback table for impl.
func {{.Interface}}Registry(impl {{.Interface}}) *trampoline.Registry {
	return trampoline.NewRegistry().MustRegister(
{{- range .Funcs}}
		trampoline.Func{{len .Params}}("{{.Symbol}}", {{range .Params}}{{.Type.Check}}, {{end}}impl.{{.Method}}),
{{- end}}
	)
}
`))

// Generate renders the Go source for iface.
func Generate(iface *Interface, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, parseError("package name is required")
	}

	data := tmplData{
		Package:   opts.Package,
		Source:    opts.Source,
		Interface: toPascal(iface.Name),
	}

	methods := make(map[string]string)
	for _, fn := range iface.Funcs {
		if len(fn.Params) > MaxParams {
			return nil, parseError("%s: %d parameters, at most %d are supported", fn.Name, len(fn.Params), MaxParams)
		}

		tf := tmplFunc{
			Symbol: fn.Symbol(),
			Method: toPascal(fn.Name),
			Result: undefinedType,
			Decl:   declString(fn),
		}
		if prev, ok := methods[tf.Method]; ok {
			return nil, parseError("%s and %s map to the same method %s", prev, fn.Name, tf.Method)
		}
		methods[tf.Method] = fn.Name

		for _, p := range fn.Params {
			tf.Params = append(tf.Params, tmplParam{Name: paramName(p.Name), Type: goTypeOf(p.Type)})
		}
		if fn.Result != nil {
			tf.Result = goTypeOf(*fn.Result)
		}
		data.Funcs = append(data.Funcs, tf)
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return format.Source(buf.Bytes())
}

func declString(fn Func) string {
	var sb strings.Builder
	sb.WriteString(fn.Name)
	sb.WriteString(": func(")
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(p.Type.String())
	}
	sb.WriteString(")")
	if fn.Result != nil {
		sb.WriteString(" -> ")
		sb.WriteString(fn.Result.String())
	}
	return sb.String()
}

func paramName(s string) string {
	name := toLowerCamel(s)
	if token.IsKeyword(name) || name == "env" || name == "impl" {
		return name + "Arg"
	}
	return name
}

// toPascal converts kebab-case or snake_case to PascalCase.
// Example: "sum-of-squares" -> "SumOfSquares"
func toPascal(s string) string {
	var sb strings.Builder
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' }) {
		runes := []rune(part)
		runes[0] = unicode.ToUpper(runes[0])
		sb.WriteString(string(runes))
	}
	return sb.String()
}

// toLowerCamel converts kebab-case or snake_case to lowerCamelCase.
// Example: "sum-of-squares-seq" -> "sumOfSquaresSeq"
func toLowerCamel(s string) string {
	p := []rune(toPascal(s))
	if len(p) == 0 {
		return ""
	}
	p[0] = unicode.ToLower(p[0])
	return string(p)
}
