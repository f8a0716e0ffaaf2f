package engine

import (
	"errors"
	"math"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dop251/goja"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/charmap"

	"github.com/wippyai/napi-runtime/abi"
)

// callEnv is the abi.Env of one native invocation.
type callEnv struct {
	engine      *GojaEngine
	this        goja.Value
	pending     goja.Value
	interrupted error
	args        []goja.Value
	handles     []abi.Value
	id          uint64
	info        abi.CallbackInfo
	closed      bool
}

var _ abi.Env = (*callEnv)(nil)

func (c *callEnv) close() {
	c.engine.release(c.handles)
	c.handles = nil
	c.closed = true
}

// live reports whether the environment may still be used.
func (c *callEnv) live() bool {
	if c.closed {
		Logger().Warn("environment used after its callback returned", zap.Uint64("scope", c.id))
		return false
	}
	return true
}

func (c *callEnv) put(v goja.Value) abi.Value {
	h := c.engine.put(v)
	c.handles = append(c.handles, h)
	return h
}

func (c *callEnv) lookup(h abi.Value) (goja.Value, bool) {
	return c.engine.get(h)
}

// value resolves h for a host call.
func (c *callEnv) value(h abi.Value) (goja.Value, abi.Status) {
	if !c.live() {
		return nil, abi.StatusInvalidArg
	}
	v, ok := c.lookup(h)
	if !ok {
		return nil, abi.StatusInvalidArg
	}
	return v, abi.StatusOK
}

func (c *callEnv) vm() *goja.Runtime { return c.engine.vm }
func (c *callEnv) h() *helpers       { return c.engine.helpers }

// call runs a helper. A JavaScript exception becomes the pending exception.
func (c *callEnv) call(fn goja.Callable, args ...goja.Value) (goja.Value, abi.Status) {
	ret, err := fn(goja.Undefined(), args...)
	if err == nil {
		return ret, abi.StatusOK
	}

	var exc *goja.Exception
	if errors.As(err, &exc) {
		c.pending = exc.Value()
		return nil, abi.StatusPendingException
	}

	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		c.interrupted = interrupted
		return nil, abi.StatusCancelled
	}

	Logger().Error("helper call failed", zap.Error(err))
	return nil, abi.StatusGenericFailure
}

// script is call for host calls that may run user JavaScript. Like Node it
// refuses to run while an exception is pending.
func (c *callEnv) script(fn goja.Callable, args ...goja.Value) (goja.Value, abi.Status) {
	if c.pending != nil {
		return nil, abi.StatusPendingException
	}
	return c.call(fn, args...)
}

func (c *callEnv) predicate(fn goja.Callable, h abi.Value) (bool, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return false, status
	}
	ret, status := c.call(fn, v)
	if status != abi.StatusOK {
		return false, status
	}
	return ret.ToBoolean(), abi.StatusOK
}

func (c *callEnv) tag(v goja.Value) (abi.ValueType, abi.Status) {
	ret, status := c.call(c.h().typeOf, v)
	if status != abi.StatusOK {
		return 0, status
	}
	switch ret.String() {
	case "undefined":
		return abi.Undefined, abi.StatusOK
	case "null":
		return abi.Null, abi.StatusOK
	case "boolean":
		return abi.Boolean, abi.StatusOK
	case "number":
		return abi.Number, abi.StatusOK
	case "string":
		return abi.String, abi.StatusOK
	case "symbol":
		return abi.Symbol, abi.StatusOK
	case "function":
		return abi.Function, abi.StatusOK
	case "bigint":
		return abi.BigInt, abi.StatusOK
	default:
		return abi.Object, abi.StatusOK
	}
}

// typed resolves h and requires its tag to be want.
func (c *callEnv) typed(h abi.Value, want abi.ValueType, mismatch abi.Status) (goja.Value, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return nil, status
	}
	t, status := c.tag(v)
	if status != abi.StatusOK {
		return nil, status
	}
	if t != want {
		return nil, mismatch
	}
	return v, abi.StatusOK
}

// object resolves h as a property target. null and undefined are rejected.
func (c *callEnv) object(h abi.Value) (goja.Value, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return nil, status
	}
	if goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, abi.StatusObjectExpected
	}
	return v, abi.StatusOK
}

func (c *callEnv) GetCbInfo(info abi.CallbackInfo, argv []abi.Value) (int, abi.Value, abi.Status) {
	if !c.live() || info != c.info {
		return 0, abi.Nil, abi.StatusInvalidArg
	}
	for i := range argv {
		if i < len(c.args) {
			argv[i] = c.put(c.args[i])
		} else {
			argv[i] = c.put(goja.Undefined())
		}
	}
	return len(c.args), c.put(c.this), abi.StatusOK
}

func (c *callEnv) Typeof(h abi.Value) (abi.ValueType, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return 0, status
	}
	return c.tag(v)
}

func (c *callEnv) IsArray(h abi.Value) (bool, abi.Status) {
	return c.predicate(c.h().isArray, h)
}

func (c *callEnv) IsArrayBuffer(h abi.Value) (bool, abi.Status) {
	return c.predicate(c.h().isArrayBuffer, h)
}

func (c *callEnv) IsBuffer(h abi.Value) (bool, abi.Status) {
	return c.predicate(c.h().isBuffer, h)
}

func (c *callEnv) IsError(h abi.Value) (bool, abi.Status) {
	return c.predicate(c.h().isError, h)
}

func (c *callEnv) IsTypedArray(h abi.Value) (bool, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return false, status
	}
	info, status := c.call(c.h().typedArrayInfo, v)
	if status != abi.StatusOK {
		return false, status
	}
	return !goja.IsNull(info), abi.StatusOK
}

func (c *callEnv) IsDataView(h abi.Value) (bool, abi.Status) {
	return c.predicate(c.h().isDataView, h)
}

func (c *callEnv) InstanceOf(h, constructor abi.Value) (bool, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return false, status
	}
	ctor, status := c.value(constructor)
	if status != abi.StatusOK {
		return false, status
	}
	if _, ok := goja.AssertFunction(ctor); !ok {
		return false, abi.StatusFunctionExpected
	}
	ret, status := c.script(c.h().instanceOf, v, ctor)
	if status != abi.StatusOK {
		return false, status
	}
	return ret.ToBoolean(), abi.StatusOK
}

func (c *callEnv) StrictEquals(a, b abi.Value) (bool, abi.Status) {
	va, status := c.value(a)
	if status != abi.StatusOK {
		return false, status
	}
	vb, status := c.value(b)
	if status != abi.StatusOK {
		return false, status
	}
	return va.StrictEquals(vb), abi.StatusOK
}

func (c *callEnv) CoerceToBool(h abi.Value) (abi.Value, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(c.vm().ToValue(v.ToBoolean())), abi.StatusOK
}

func (c *callEnv) coerce(fn goja.Callable, h abi.Value) (abi.Value, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	ret, status := c.script(fn, v)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

func (c *callEnv) CoerceToNumber(h abi.Value) (abi.Value, abi.Status) {
	return c.coerce(c.h().toNumber, h)
}

func (c *callEnv) CoerceToObject(h abi.Value) (abi.Value, abi.Status) {
	return c.coerce(c.h().toObject, h)
}

func (c *callEnv) CoerceToString(h abi.Value) (abi.Value, abi.Status) {
	return c.coerce(c.h().toString, h)
}

func (c *callEnv) constant(v goja.Value) (abi.Value, abi.Status) {
	if !c.live() {
		return abi.Nil, abi.StatusInvalidArg
	}
	return c.put(v), abi.StatusOK
}

func (c *callEnv) GetUndefined() (abi.Value, abi.Status) { return c.constant(goja.Undefined()) }
func (c *callEnv) GetNull() (abi.Value, abi.Status)      { return c.constant(goja.Null()) }
func (c *callEnv) GetGlobal() (abi.Value, abi.Status)    { return c.constant(c.vm().GlobalObject()) }

func (c *callEnv) GetBoolean(b bool) (abi.Value, abi.Status) {
	return c.constant(c.vm().ToValue(b))
}

func (c *callEnv) GetValueBool(h abi.Value) (bool, abi.Status) {
	v, status := c.typed(h, abi.Boolean, abi.StatusBooleanExpected)
	if status != abi.StatusOK {
		return false, status
	}
	return v.ToBoolean(), abi.StatusOK
}

func (c *callEnv) CreateInt32(n int32) (abi.Value, abi.Status) {
	return c.constant(c.vm().ToValue(n))
}

func (c *callEnv) CreateUint32(n uint32) (abi.Value, abi.Status) {
	return c.constant(c.vm().ToValue(n))
}

// CreateInt64 goes through float64 like every JavaScript number.
func (c *callEnv) CreateInt64(n int64) (abi.Value, abi.Status) {
	return c.constant(c.vm().ToValue(float64(n)))
}

func (c *callEnv) CreateDouble(f float64) (abi.Value, abi.Status) {
	return c.constant(c.vm().ToValue(f))
}

func (c *callEnv) number(h abi.Value) (goja.Value, abi.Status) {
	return c.typed(h, abi.Number, abi.StatusNumberExpected)
}

func (c *callEnv) GetValueInt32(h abi.Value) (int32, abi.Status) {
	v, status := c.number(h)
	if status != abi.StatusOK {
		return 0, status
	}
	return int32(toUint32(v.ToFloat())), abi.StatusOK
}

func (c *callEnv) GetValueUint32(h abi.Value) (uint32, abi.Status) {
	v, status := c.number(h)
	if status != abi.StatusOK {
		return 0, status
	}
	return toUint32(v.ToFloat()), abi.StatusOK
}

func (c *callEnv) GetValueInt64(h abi.Value) (int64, abi.Status) {
	v, status := c.number(h)
	if status != abi.StatusOK {
		return 0, status
	}
	if n, ok := v.Export().(int64); ok {
		return n, abi.StatusOK
	}
	return toInt64(v.ToFloat()), abi.StatusOK
}

func (c *callEnv) GetValueDouble(h abi.Value) (float64, abi.Status) {
	v, status := c.number(h)
	if status != abi.StatusOK {
		return 0, status
	}
	return v.ToFloat(), abi.StatusOK
}

const twoPow32 = 4294967296

// toUint32 implements ECMAScript ToUint32.
func toUint32(f float64) uint32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Mod(math.Trunc(f), twoPow32)
	if f < 0 {
		f += twoPow32
	}
	return uint32(f)
}

// toInt64 truncates, maps non-finite values to zero and saturates the rest.
func toInt64(f float64) int64 {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

func (c *callEnv) CreateStringUTF8(s []byte) (abi.Value, abi.Status) {
	return c.constant(c.vm().ToValue(string(s)))
}

func (c *callEnv) CreateStringLatin1(s []byte) (abi.Value, abi.Status) {
	text, err := charmap.ISO8859_1.NewDecoder().Bytes(s)
	if err != nil {
		return abi.Nil, abi.StatusGenericFailure
	}
	return c.constant(c.vm().ToValue(string(text)))
}

func (c *callEnv) CreateStringUTF16(s []uint16) (abi.Value, abi.Status) {
	return c.constant(goja.StringFromUTF16(s))
}

func (c *callEnv) str(h abi.Value) (goja.Value, abi.Status) {
	return c.typed(h, abi.String, abi.StatusStringExpected)
}

// codeUnits returns the exact UTF-16 content of a string value.
func codeUnits(v goja.Value) []uint16 {
	if s, ok := v.(goja.String); ok {
		u := make([]uint16, s.Length())
		for i := range u {
			u[i] = s.CharAt(i)
		}
		return u
	}
	return utf16.Encode([]rune(v.String()))
}

// copyOut implements the two-call size protocol shared by the string
// getters. fit shortens n so that no encoded character is split.
func copyOut[U byte | uint16](src, buf []U, fit func(n int) int) int {
	if buf == nil {
		return len(src)
	}
	if len(buf) == 0 {
		return 0
	}
	n := min(len(buf)-1, len(src))
	if fit != nil && n < len(src) {
		n = fit(n)
	}
	copy(buf, src[:n])
	buf[n] = 0
	return n
}

func (c *callEnv) GetValueStringUTF8(h abi.Value, buf []byte) (int, abi.Status) {
	v, status := c.str(h)
	if status != abi.StatusOK {
		return 0, status
	}
	src := []byte(v.String())
	return copyOut(src, buf, func(n int) int {
		for n > 0 && !utf8.RuneStart(src[n]) {
			n--
		}
		return n
	}), abi.StatusOK
}

// GetValueStringLatin1 keeps the low byte of every code unit.
func (c *callEnv) GetValueStringLatin1(h abi.Value, buf []byte) (int, abi.Status) {
	v, status := c.str(h)
	if status != abi.StatusOK {
		return 0, status
	}
	units := codeUnits(v)
	src := make([]byte, len(units))
	for i, u := range units {
		src[i] = byte(u)
	}
	return copyOut(src, buf, nil), abi.StatusOK
}

func (c *callEnv) GetValueStringUTF16(h abi.Value, buf []uint16) (int, abi.Status) {
	v, status := c.str(h)
	if status != abi.StatusOK {
		return 0, status
	}
	return copyOut(codeUnits(v), buf, nil), abi.StatusOK
}

func (c *callEnv) CreateObject() (abi.Value, abi.Status) {
	return c.constant(c.vm().NewObject())
}

func (c *callEnv) CreateArray() (abi.Value, abi.Status) {
	return c.constant(c.vm().NewArray())
}

func (c *callEnv) CreateArrayWithLength(n int) (abi.Value, abi.Status) {
	if !c.live() || n < 0 {
		return abi.Nil, abi.StatusInvalidArg
	}
	ret, status := c.call(c.h().newArray, c.vm().ToValue(n))
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

func (c *callEnv) GetArrayLength(h abi.Value) (uint32, abi.Status) {
	isArray, status := c.IsArray(h)
	if status != abi.StatusOK {
		return 0, status
	}
	if !isArray {
		return 0, abi.StatusArrayExpected
	}
	v, _ := c.lookup(h)
	return uint32(v.ToObject(c.vm()).Get("length").ToInteger()), abi.StatusOK
}

func (c *callEnv) GetPrototype(h abi.Value) (abi.Value, abi.Status) {
	v, status := c.object(h)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	ret, status := c.script(c.h().getPrototype, v)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

func (c *callEnv) GetPropertyNames(h abi.Value) (abi.Value, abi.Status) {
	v, status := c.object(h)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	ret, status := c.script(c.h().propertyNames, v)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

// property runs a property helper on (obj, key, extra...).
func (c *callEnv) property(fn goja.Callable, obj abi.Value, key goja.Value, extra ...goja.Value) (goja.Value, abi.Status) {
	o, status := c.object(obj)
	if status != abi.StatusOK {
		return nil, status
	}
	return c.script(fn, append([]goja.Value{o, key}, extra...)...)
}

func (c *callEnv) SetProperty(obj, key, val abi.Value) abi.Status {
	k, status := c.value(key)
	if status != abi.StatusOK {
		return status
	}
	v, status := c.value(val)
	if status != abi.StatusOK {
		return status
	}
	_, status = c.property(c.h().setProp, obj, k, v)
	return status
}

func (c *callEnv) GetProperty(obj, key abi.Value) (abi.Value, abi.Status) {
	k, status := c.value(key)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	ret, status := c.property(c.h().getProp, obj, k)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

func (c *callEnv) test(fn goja.Callable, obj abi.Value, key goja.Value) (bool, abi.Status) {
	ret, status := c.property(fn, obj, key)
	if status != abi.StatusOK {
		return false, status
	}
	return ret.ToBoolean(), abi.StatusOK
}

func (c *callEnv) HasProperty(obj, key abi.Value) (bool, abi.Status) {
	k, status := c.value(key)
	if status != abi.StatusOK {
		return false, status
	}
	return c.test(c.h().hasProp, obj, k)
}

// HasOwnProperty requires the key to be a name: a string or a symbol.
func (c *callEnv) HasOwnProperty(obj, key abi.Value) (bool, abi.Status) {
	k, status := c.value(key)
	if status != abi.StatusOK {
		return false, status
	}
	t, status := c.tag(k)
	if status != abi.StatusOK {
		return false, status
	}
	if t != abi.String && t != abi.Symbol {
		return false, abi.StatusNameExpected
	}
	return c.test(c.h().hasOwn, obj, k)
}

func (c *callEnv) DeleteProperty(obj, key abi.Value) (bool, abi.Status) {
	k, status := c.value(key)
	if status != abi.StatusOK {
		return false, status
	}
	return c.test(c.h().deleteProp, obj, k)
}

func (c *callEnv) index(i uint32) goja.Value {
	return c.vm().ToValue(i)
}

func (c *callEnv) SetElement(obj abi.Value, i uint32, val abi.Value) abi.Status {
	v, status := c.value(val)
	if status != abi.StatusOK {
		return status
	}
	_, status = c.property(c.h().setProp, obj, c.index(i), v)
	return status
}

func (c *callEnv) GetElement(obj abi.Value, i uint32) (abi.Value, abi.Status) {
	ret, status := c.property(c.h().getProp, obj, c.index(i))
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

func (c *callEnv) HasElement(obj abi.Value, i uint32) (bool, abi.Status) {
	return c.test(c.h().hasProp, obj, c.index(i))
}

func (c *callEnv) DeleteElement(obj abi.Value, i uint32) (bool, abi.Status) {
	return c.test(c.h().deleteProp, obj, c.index(i))
}

func (c *callEnv) CreateArrayBuffer(length int) ([]byte, abi.Value, abi.Status) {
	if !c.live() || length < 0 {
		return nil, abi.Nil, abi.StatusInvalidArg
	}
	ab := c.vm().NewArrayBuffer(make([]byte, length))
	return ab.Bytes(), c.put(c.vm().ToValue(ab)), abi.StatusOK
}

func (c *callEnv) GetArrayBufferInfo(h abi.Value) ([]byte, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return nil, status
	}
	ab, ok := v.Export().(goja.ArrayBuffer)
	if !ok {
		return nil, abi.StatusInvalidArg
	}
	return ab.Bytes(), abi.StatusOK
}

func (c *callEnv) CreateBuffer(length int) ([]byte, abi.Value, abi.Status) {
	if !c.live() || length < 0 {
		return nil, abi.Nil, abi.StatusInvalidArg
	}
	buf, status := c.call(c.h().newBuffer, c.vm().ToValue(length))
	if status != abi.StatusOK {
		return nil, abi.Nil, status
	}
	info, status := c.typedArrayInfo(buf)
	if status != abi.StatusOK {
		return nil, abi.Nil, status
	}
	return info.Data, c.put(buf), abi.StatusOK
}

func (c *callEnv) GetBufferInfo(h abi.Value) ([]byte, abi.Status) {
	isBuffer, status := c.IsBuffer(h)
	if status != abi.StatusOK {
		return nil, status
	}
	if !isBuffer {
		return nil, abi.StatusInvalidArg
	}
	v, _ := c.lookup(h)
	info, status := c.typedArrayInfo(v)
	if status != abi.StatusOK {
		return nil, status
	}
	return info.Data, abi.StatusOK
}

func (c *callEnv) CreateTypedArray(t abi.TypedArrayType, length int, arrayBuffer abi.Value, byteOffset int) (abi.Value, abi.Status) {
	if !t.Valid() || length < 0 || byteOffset < 0 {
		return abi.Nil, abi.StatusInvalidArg
	}
	buf, status := c.value(arrayBuffer)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	if _, ok := buf.Export().(goja.ArrayBuffer); !ok {
		return abi.Nil, abi.StatusInvalidArg
	}
	vm := c.vm()
	ret, status := c.script(c.h().newTypedArray,
		vm.ToValue(int(t)), buf, vm.ToValue(byteOffset), vm.ToValue(length))
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

func (c *callEnv) GetTypedArrayInfo(h abi.Value) (abi.TypedArrayInfo, abi.Status) {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return abi.TypedArrayInfo{}, status
	}
	info, status := c.typedArrayInfo(v)
	if status != abi.StatusOK {
		return abi.TypedArrayInfo{}, status
	}
	return info, abi.StatusOK
}

// typedArrayInfo describes v. The ArrayBuffer handle is only allocated when
// the value is a typed array.
func (c *callEnv) typedArrayInfo(v goja.Value) (abi.TypedArrayInfo, abi.Status) {
	ret, status := c.call(c.h().typedArrayInfo, v)
	if status != abi.StatusOK {
		return abi.TypedArrayInfo{}, status
	}
	if goja.IsNull(ret) {
		return abi.TypedArrayInfo{}, abi.StatusInvalidArg
	}

	fields := ret.ToObject(c.vm())
	t := abi.TypedArrayType(fields.Get("0").ToInteger())
	buffer := fields.Get("1")
	offset := int(fields.Get("2").ToInteger())
	length := int(fields.Get("3").ToInteger())

	ab, ok := buffer.Export().(goja.ArrayBuffer)
	if !ok {
		return abi.TypedArrayInfo{}, abi.StatusGenericFailure
	}
	end := offset + length*t.ElementSize()
	data := ab.Bytes()
	if end > len(data) {
		return abi.TypedArrayInfo{}, abi.StatusGenericFailure
	}

	return abi.TypedArrayInfo{
		Data:        data[offset:end:end],
		ArrayBuffer: c.put(buffer),
		Type:        t,
		Length:      length,
		ByteOffset:  offset,
	}, abi.StatusOK
}

func (c *callEnv) createError(kind int, code, msg abi.Value) (abi.Value, abi.Status) {
	m, status := c.str(msg)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	codeVal := goja.Undefined()
	if code != abi.Nil {
		if codeVal, status = c.str(code); status != abi.StatusOK {
			return abi.Nil, status
		}
	}
	ret, status := c.call(c.h().makeError, c.vm().ToValue(kind), codeVal, m)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}

const (
	kindError = iota
	kindTypeError
	kindRangeError
)

func (c *callEnv) CreateError(code, msg abi.Value) (abi.Value, abi.Status) {
	return c.createError(kindError, code, msg)
}

func (c *callEnv) CreateTypeError(code, msg abi.Value) (abi.Value, abi.Status) {
	return c.createError(kindTypeError, code, msg)
}

func (c *callEnv) CreateRangeError(code, msg abi.Value) (abi.Value, abi.Status) {
	return c.createError(kindRangeError, code, msg)
}

func (c *callEnv) Throw(h abi.Value) abi.Status {
	v, status := c.value(h)
	if status != abi.StatusOK {
		return status
	}
	if c.pending != nil {
		return abi.StatusPendingException
	}
	c.pending = v
	return abi.StatusOK
}

func (c *callEnv) throwError(kind int, code, msg string) abi.Status {
	if !c.live() || !abi.IsCString(code) || !abi.IsCString(msg) {
		return abi.StatusInvalidArg
	}
	if c.pending != nil {
		return abi.StatusPendingException
	}
	codeVal := goja.Undefined()
	if code != "" {
		codeVal = c.vm().ToValue(code)
	}
	exc, status := c.call(c.h().makeError, c.vm().ToValue(kind), codeVal, c.vm().ToValue(msg))
	if status != abi.StatusOK {
		return status
	}
	c.pending = exc
	return abi.StatusOK
}

func (c *callEnv) ThrowError(code, msg string) abi.Status {
	return c.throwError(kindError, code, msg)
}

func (c *callEnv) ThrowTypeError(code, msg string) abi.Status {
	return c.throwError(kindTypeError, code, msg)
}

func (c *callEnv) ThrowRangeError(code, msg string) abi.Status {
	return c.throwError(kindRangeError, code, msg)
}

func (c *callEnv) IsExceptionPending() (bool, abi.Status) {
	if !c.live() {
		return false, abi.StatusInvalidArg
	}
	return c.pending != nil, abi.StatusOK
}

func (c *callEnv) GetAndClearLastException() (abi.Value, abi.Status) {
	if !c.live() {
		return abi.Nil, abi.StatusInvalidArg
	}
	if c.pending == nil {
		return c.put(goja.Undefined()), abi.StatusOK
	}
	v := c.pending
	c.pending = nil
	return c.put(v), abi.StatusOK
}

func (c *callEnv) CreateFunction(name string, cb abi.Callback) (abi.Value, abi.Status) {
	if !c.live() || cb == nil {
		return abi.Nil, abi.StatusInvalidArg
	}
	return c.put(c.engine.NewFunction(name, cb)), abi.StatusOK
}

func (c *callEnv) CallFunction(recv, fn abi.Value, args []abi.Value) (abi.Value, abi.Status) {
	this, status := c.value(recv)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	f, status := c.value(fn)
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	callable, ok := goja.AssertFunction(f)
	if !ok {
		return abi.Nil, abi.StatusFunctionExpected
	}

	argv := make([]goja.Value, len(args))
	for i, a := range args {
		if argv[i], status = c.value(a); status != abi.StatusOK {
			return abi.Nil, status
		}
	}

	if c.pending != nil {
		return abi.Nil, abi.StatusPendingException
	}
	ret, status := c.call(func(goja.Value, ...goja.Value) (goja.Value, error) {
		return callable(this, argv...)
	})
	if status != abi.StatusOK {
		return abi.Nil, status
	}
	return c.put(ret), abi.StatusOK
}
