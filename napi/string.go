package napi

import (
	"unicode/utf8"

	"github.com/wippyai/napi-runtime/abi"
	"github.com/wippyai/napi-runtime/errors"
)

// String is a host string primitive.
type String struct {
	handle
}

// CheckString wraps raw if its typeof is "string".
func CheckString(env Env, raw abi.Value) (String, error) {
	if err := expectType(env, raw, abi.String, "String"); err != nil {
		return String{}, err
	}
	return String{handle{env: env, raw: raw}}, nil
}

func newString(env Env, raw abi.Value, status abi.Status) (String, error) {
	if err := env.HandleStatus(status); err != nil {
		return String{}, err
	}
	return String{handle{env: env, raw: raw}}, nil
}

// NewString creates a host string from UTF-8 text.
func NewString(env Env, s string) (String, error) {
	raw, status := env.host().CreateStringUTF8([]byte(s))
	return newString(env, raw, status)
}

// NewStringLatin1 creates a host string from ISO-8859-1 bytes.
func NewStringLatin1(env Env, b []byte) (String, error) {
	raw, status := env.host().CreateStringLatin1(b)
	return newString(env, raw, status)
}

// NewStringUTF16 creates a host string from UTF-16 code units.
func NewStringUTF16(env Env, u []uint16) (String, error) {
	raw, status := env.host().CreateStringUTF16(u)
	return newString(env, raw, status)
}

// AsObject reinterprets the handle as an object view.
func (s String) AsObject() Object { return Object{s.handle} }

// Bytes returns the UTF-8 encoding of the string. Lone surrogates are
// replaced by the host.
func (s String) Bytes() ([]byte, error) {
	return readString(s.handle, abi.Env.GetValueStringUTF8)
}

// Latin1 returns one byte per UTF-16 code unit, keeping the low eight bits.
func (s String) Latin1() ([]byte, error) {
	return readString(s.handle, abi.Env.GetValueStringLatin1)
}

// UTF16 returns the string's code units unchanged.
func (s String) UTF16() ([]uint16, error) {
	return readString(s.handle, abi.Env.GetValueStringUTF16)
}

// Text returns the string as Go text. Bytes that are not valid UTF-8 are
// reported as an error rather than passed through.
func (s String) Text() (string, error) {
	b, err := s.Bytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New(errors.KindStringExpected).
			Phase(errors.PhaseMarshal).
			Message("host returned invalid UTF-8").
			Build()
	}
	return string(b), nil
}

// readString runs the two-call protocol: query the length, then copy into a
// buffer with room for the terminator.
func readString[U byte | uint16](h handle, get func(abi.Env, abi.Value, []U) (int, abi.Status)) ([]U, error) {
	host := h.env.host()

	n, status := get(host, h.raw, nil)
	if err := h.env.HandleStatus(status); err != nil {
		return nil, err
	}

	buf := make([]U, n+1)
	copied, status := get(host, h.raw, buf)
	if err := h.env.HandleStatus(status); err != nil {
		return nil, err
	}
	return buf[:copied], nil
}
