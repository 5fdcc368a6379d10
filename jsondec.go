// Package jsondec decodes UTF-8 encoded JSON text (RFC 8259) into plain Go
// values, with byte-exact error positions and optional incremental feeding
// of input fragments.
//
// Decoded values use nil, bool, int64, float64, string, []any and
// map[string]any. Integer literals and float literals stay distinguished:
// 1 decodes as int64(1) while 1.0 decodes as float64(1). Duplicate object
// keys collapse to the last occurrence.
package jsondec

import (
	"iter"

	"github.com/lukeod/jsondec/decoder"
)

// Option configures a decode call.
type Option func(*options)

type options struct {
	keys decoder.KeyFunc
}

// WithKeyFunc installs a custom transform applied to every object key.
func WithKeyFunc(fn decoder.KeyFunc) Option {
	return func(o *options) { o.keys = fn }
}

// WithInternedKeys makes every object key share storage through the
// process-wide key pool, so repeated keys across documents alias one string.
func WithInternedKeys() Option {
	return func(o *options) { o.keys = internKey }
}

// WithExistingKeys accepts only keys already present in the key pool, either
// from RegisterKeys or from earlier interned decodes. Unknown keys fail the
// decode.
func WithExistingKeys() Option {
	return func(o *options) { o.keys = existingKey }
}

func apply(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Decode parses data as a single complete JSON value. Trailing
// non-whitespace input and truncated input are errors.
func Decode(data []byte, opts ...Option) (any, error) {
	v, trailing, err := DecodePartial(data, opts...)
	if err != nil {
		return nil, err
	}
	if len(trailing) > 0 {
		return nil, &decoder.SyntaxError{
			Kind:     decoder.ErrTrailingInput,
			Position: int64(len(data) - len(trailing)),
			Extra:    trailing,
		}
	}
	return v, nil
}

// DecodeString is Decode for string input.
func DecodeString(s string, opts ...Option) (any, error) {
	return Decode([]byte(s), opts...)
}

// DecodePartial parses one JSON value from the front of data. A complete
// value followed by extra bytes returns those bytes instead of failing;
// trailing aliases data.
func DecodePartial(data []byte, opts ...Option) (v any, trailing []byte, err error) {
	o := apply(opts)
	d := decoder.New(o.keys)
	res, err := d.Step(data)
	if err != nil {
		return nil, nil, err
	}
	if res != nil {
		return res.Value, res.Trailing, nil
	}
	v, err = d.Finish()
	if err != nil {
		return nil, nil, err
	}
	return v, nil, nil
}

// DecodeSeq parses a single complete JSON value from a sequence of input
// chunks. Error positions are absolute: offsets into the concatenation of
// all chunks. Chunks after the one completing the value are not consumed;
// non-whitespace bytes after the value within that chunk are an error.
func DecodeSeq(chunks iter.Seq[[]byte], opts ...Option) (any, error) {
	o := apply(opts)
	d := decoder.New(o.keys)
	for chunk := range chunks {
		res, err := d.Step(chunk)
		if err != nil {
			return nil, err
		}
		if res == nil {
			continue
		}
		if len(res.Trailing) > 0 {
			return nil, &decoder.SyntaxError{
				Kind:     decoder.ErrTrailingInput,
				Position: d.InputOffset(),
				Extra:    res.Trailing,
			}
		}
		return res.Value, nil
	}
	return d.Finish()
}
