package intercept

import (
	"bytes"
	"encoding"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// NoArguments is the fingerprint of an empty argument list.
const NoArguments = "no-arguments"

const nilToken = "nil"

// Fingerprinter derives a cache key from a call's argument list.
// Implementations must be deterministic and safe for concurrent use.
type Fingerprinter interface {
	Fingerprint(args []any) (string, error)
}

// Encoder turns one argument into bytes. Equal values must encode identically.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

type cborEncoder struct {
	mode cbor.EncMode
}

func (e cborEncoder) Encode(v any) ([]byte, error) {
	return e.mode.Marshal(v)
}

var defaultCBOR = func() Encoder {
	opts := cbor.CoreDetEncOptions()
	opts.Time = cbor.TimeRFC3339Nano
	mode, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return cborEncoder{mode: mode}
}()

// CBOR encodes with RFC 8949 core deterministic encoding, so map key order
// does not affect the result.
func CBOR() Encoder {
	return defaultCBOR
}

type msgpackEncoder struct{}

func (msgpackEncoder) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Msgpack encodes with MessagePack, sorting map keys.
func Msgpack() Encoder {
	return msgpackEncoder{}
}

// TokenFingerprinter hashes each argument to a token and joins the tokens with "|".
//
// A token is the 16 hex digits of xxhash64 over the argument's dynamic type
// name and its encoding, so 1 and int64(1) differ. A nil argument is "nil".
//
// Encoders only see exported, untagged struct fields. Arguments whose type
// may hold anything else (unexported or skipped fields, interface values) are
// encoded with their Go-syntax representation (%#v) instead, so values that
// differ only in those fields never share a token. Pointers inside such
// arguments contribute their address, not their target.
//
// The zero value is not usable; create one with NewTokenFingerprinter.
type TokenFingerprinter struct {
	encoder Encoder
}

// NewTokenFingerprinter uses enc for argument values, or CBOR when enc is nil.
func NewTokenFingerprinter(enc Encoder) TokenFingerprinter {
	if enc == nil {
		enc = CBOR()
	}
	return TokenFingerprinter{encoder: enc}
}

func (f TokenFingerprinter) Fingerprint(args []any) (string, error) {
	if len(args) == 0 {
		return NoArguments, nil
	}
	tokens := make([]string, len(args))
	for i, arg := range args {
		token, err := f.token(arg)
		if err != nil {
			return "", fmt.Errorf("%w: argument %d (%T): %w", ErrFingerprint, i, arg, err)
		}
		tokens[i] = token
	}
	return strings.Join(tokens, "|"), nil
}

func (f TokenFingerprinter) token(arg any) (string, error) {
	if arg == nil {
		return nilToken, nil
	}
	typ := reflect.TypeOf(arg)
	var encoded []byte
	if hidesFields(typ) {
		encoded = fmt.Appendf(nil, "%#v", arg)
	} else {
		var err error
		if encoded, err = f.encoder.Encode(arg); err != nil {
			return "", err
		}
	}
	d := xxhash.New()
	_, _ = d.WriteString(typ.String())
	_, _ = d.Write([]byte{0})
	_, _ = d.Write(encoded)
	return fmt.Sprintf("%016x", d.Sum64()), nil
}

var (
	binaryMarshalerType = reflect.TypeFor[encoding.BinaryMarshaler]()
	hiddenByType        sync.Map // reflect.Type -> bool
)

// hidesFields reports whether values of t may carry state an Encoder skips.
// Types that marshal themselves to binary are trusted to encode all of it.
func hidesFields(t reflect.Type) bool {
	if v, ok := hiddenByType.Load(t); ok {
		return v.(bool)
	}
	hides := scanHidden(t, map[reflect.Type]bool{})
	hiddenByType.Store(t, hides)
	return hides
}

func scanHidden(t reflect.Type, visiting map[reflect.Type]bool) bool {
	if visiting[t] || t.Implements(binaryMarshalerType) {
		return false
	}
	visiting[t] = true

	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Struct:
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() || skipsField(field.Tag) || scanHidden(field.Type, visiting) {
				return true
			}
		}
	case reflect.Pointer, reflect.Slice, reflect.Array:
		return scanHidden(t.Elem(), visiting)
	case reflect.Map:
		return scanHidden(t.Key(), visiting) || scanHidden(t.Elem(), visiting)
	}
	return false
}

func skipsField(tag reflect.StructTag) bool {
	for _, key := range []string{"cbor", "msgpack", "json"} {
		if name, _, _ := strings.Cut(tag.Get(key), ","); name == "-" {
			return true
		}
	}
	return false
}
