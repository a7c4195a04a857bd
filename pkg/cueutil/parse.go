// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// DefaultMaxFileSize bounds the size of a document accepted by Decode.
const DefaultMaxFileSize int64 = 4 << 20

type (
	// Option tunes Decode.
	Option func(*options)

	options struct {
		filename    string
		maxFileSize int64
		concrete    bool
	}
)

// WithFilename names the document in error messages.
func WithFilename(name string) Option {
	return func(o *options) { o.filename = name }
}

// WithMaxFileSize overrides DefaultMaxFileSize.
func WithMaxFileSize(n int64) Option {
	return func(o *options) { o.maxFileSize = n }
}

// WithConcrete controls whether every value must be concrete after
// unification. It defaults to true.
func WithConcrete(concrete bool) Option {
	return func(o *options) { o.concrete = concrete }
}

// Decode unifies data with the schema definition at defPath (e.g. "#Config")
// and decodes the result into a T.
func Decode[T any](schema, data []byte, defPath string, opts ...Option) (*T, error) {
	o := options{filename: "<input>", maxFileSize: DefaultMaxFileSize, concrete: true}
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileBytes(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: compile schema: %w", schemaValue.Err())
	}
	def := schemaValue.LookupPath(cue.ParsePath(defPath))
	if def.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s: %w", defPath, def.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), o.filename)
	}

	unified := def.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, o.filename)
	}

	var out T
	if err := unified.Decode(&out); err != nil {
		return nil, FormatError(err, o.filename)
	}
	return &out, nil
}

// CheckFileSize fails when data is larger than maxSize bytes.
func CheckFileSize(data []byte, maxSize int64, filename string) error {
	if int64(len(data)) > maxSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxSize)
	}
	return nil
}
