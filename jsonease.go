// Package jsonease is a JSON value codec: a recursive-descent
// decoder, a layered type-dispatching encoder and a
// structure-preserving pretty-printer.
//
// The codec comes in three tiers. Basic speaks pure JSON. Advanced
// extends the six JSON shapes with UUIDs, dates, times, datetimes
// with offsets, complex numbers and ranges. Custom adds generic
// object serialization on encode and target-type reconstruction on
// decode.
//
//	JSON     Basic            Advanced                    Custom
//	object   *Object          + complex128, *Range        + struct values
//	array    Array            any slice/array             any slice/array
//	string   string           + uuid, date, time          + uuid, date, time
//	number   int64, float64   int64, float64              int64, float64
//	bool     bool             bool                        bool
//	null     nil              nil                         nil
package jsonease

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"

	"github.com/jsonease/jsonease/internal/decoder"
	"github.com/jsonease/jsonease/internal/encoder"
	"github.com/jsonease/jsonease/internal/errors"
	"github.com/jsonease/jsonease/internal/formatter"
)

// Tier selects the decoder/encoder layering for a call.
type Tier int

const (
	// Basic recognizes only the six raw JSON value shapes.
	Basic Tier = iota
	// Advanced adds the extended value kinds.
	Advanced
	// Custom adds generic objects and target-type reconstruction.
	Custom
)

// String returns the tier's lowercase name.
func (t Tier) String() string {
	switch t {
	case Basic:
		return "basic"
	case Advanced:
		return "advanced"
	case Custom:
		return "custom"
	}
	return "unknown"
}

// ParseTier maps a tier name to its Tier value.
func ParseTier(name string) (Tier, error) {
	switch strings.ToLower(name) {
	case "basic":
		return Basic, nil
	case "advanced":
		return Advanced, nil
	case "custom":
		return Custom, nil
	}
	return Custom, errors.NewInputError("unknown tier "+name, errors.ErrInvalidTier)
}

type options struct {
	tier     Tier
	indent   int
	doFormat bool
	target   any
	encoding string
	maxDepth int
}

// Option configures Loads, Load, Dumps and Dump.
type Option func(*options)

// WithTier selects the codec tier. The default is Custom.
func WithTier(t Tier) Option {
	return func(o *options) { o.tier = t }
}

// WithIndent pretty-prints the encoded text through a format pass
// with the given indent width and default separators.
func WithIndent(n int) Option {
	return func(o *options) {
		o.indent = n
		o.doFormat = true
	}
}

// WithTarget makes a decode reconstruct an instance of the
// prototype's type from the decoded value. Supplying a target always
// decodes at the Custom tier.
func WithTarget(prototype any) Option {
	return func(o *options) { o.target = prototype }
}

// WithEncoding names the IANA character encoding of raw byte input.
// Output is always UTF-8.
func WithEncoding(name string) Option {
	return func(o *options) { o.encoding = name }
}

// WithMaxDepth overrides the decoder's nesting limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

func buildOptions(opts []Option) options {
	o := options{tier: Custom, indent: 4}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Loads decodes JSON text into a value tree. With a target option it
// additionally reconstructs an instance of the target type.
func Loads(s string, opts ...Option) (any, error) {
	o := buildOptions(opts)
	tier := o.tier
	if o.target != nil {
		tier = Custom
	}
	d := decoder.New(decoderTier(tier))
	if o.maxDepth > 0 {
		d = d.WithMaxDepth(o.maxDepth)
	}
	if o.target != nil {
		return d.DecodeAs(s, o.target)
	}
	return d.Decode(s)
}

// Load reads all of r and decodes it like Loads, transcoding the
// bytes first when an encoding option names a non-UTF-8 charset.
func Load(r io.Reader, opts ...Option) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewInputError("failed to read input", err)
	}
	o := buildOptions(opts)
	text, err := Transcode(data, o.encoding)
	if err != nil {
		return nil, err
	}
	return Loads(text, opts...)
}

// Dumps encodes a value as JSON text. A []byte value is treated as
// raw text in the configured encoding and encoded as a string.
func Dumps(v any, opts ...Option) (string, error) {
	o := buildOptions(opts)
	if b, ok := v.([]byte); ok {
		text, err := Transcode(b, o.encoding)
		if err != nil {
			return "", err
		}
		v = text
	}
	e := encoder.New(encoderTier(o.tier))
	text, err := e.Encode(v)
	if err != nil {
		return "", err
	}
	if o.doFormat {
		f := formatter.New()
		f.Indent = o.indent
		return f.Format(text)
	}
	return text, nil
}

// Dump writes the Dumps result for v to w.
func Dump(w io.Writer, v any, opts ...Option) error {
	text, err := Dumps(v, opts...)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return errors.NewOutputError("failed to write output", err)
	}
	return nil
}

// FormatOption configures Format.
type FormatOption func(*formatter.Formatter)

// WithAlign sets the base indentation of the top-level value.
func WithAlign(n int) FormatOption {
	return func(f *formatter.Formatter) { f.Align = n }
}

// WithIndentWidth sets the spaces added per nesting level.
func WithIndentWidth(n int) FormatOption {
	return func(f *formatter.Formatter) { f.Indent = n }
}

// WithItemSeparator sets the separator between elements and members.
func WithItemSeparator(sep string) FormatOption {
	return func(f *formatter.Formatter) { f.ItemSep = sep }
}

// WithKeySeparator sets the separator between a key and its value.
func WithKeySeparator(sep string) FormatOption {
	return func(f *formatter.Formatter) { f.KeySep = sep }
}

// WithLineEnding sets the line ending written inside containers.
func WithLineEnding(eol string) FormatOption {
	return func(f *formatter.Formatter) { f.EOL = eol }
}

// Format pretty-prints JSON text without renormalizing its tokens.
// Defaults: no base alignment, 4-space indent, ",\r\n" item
// separator, ": " key separator, CRLF line endings.
func Format(s string, opts ...FormatOption) (string, error) {
	f := formatter.New()
	for _, opt := range opts {
		opt(f)
	}
	return f.Format(s)
}

// Valid reports whether s is well-formed JSON at the Basic tier.
func Valid(s string) bool {
	_, err := decoder.New(decoder.TierBasic).Decode(s)
	return err == nil
}

func decoderTier(t Tier) decoder.Tier {
	switch t {
	case Basic:
		return decoder.TierBasic
	case Advanced:
		return decoder.TierAdvanced
	default:
		return decoder.TierCustom
	}
}

func encoderTier(t Tier) encoder.Tier {
	switch t {
	case Basic:
		return encoder.TierBasic
	case Advanced:
		return encoder.TierAdvanced
	default:
		return encoder.TierCustom
	}
}

// Transcode converts raw bytes in the named IANA charset to a UTF-8
// string. An empty or UTF-8 name is a passthrough.
func Transcode(data []byte, name string) (string, error) {
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return string(data), nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", errors.NewInputError("unknown encoding "+name, err)
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return "", errors.NewInputError("failed to decode input as "+name, err)
	}
	return string(out), nil
}
