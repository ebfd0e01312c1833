package dsc

import (
	"fmt"

	"github.com/KimNorgaard/go-dsc/parser"
)

const (
	defaultMaxDepth = parser.DefaultMaxDepth
	defaultIndent   = 2
)

// Option configures Lex, Parse and Format.
type Option func(*options) error

type options struct {
	maxDepth int
	maxSize  int
	indent   *int
}

func newOptions(opts []Option) (*options, error) {
	o := &options{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// MaxDepth returns an Option that sets the maximum expression nesting depth
// accepted by Parse. This helps prevent stack overflows on deeply nested
// input.
//
// The depth n must be a positive integer.
func MaxDepth(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("dsc: max depth must be a positive integer")
		}
		o.maxDepth = n
		return nil
	}
}

// MaxSize returns an Option that rejects source larger than n bytes with
// ErrInputTooLarge. By default the size is unlimited.
//
// The size n must be a positive integer.
func MaxSize(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return fmt.Errorf("dsc: max size must be a positive integer")
		}
		o.maxSize = n
		return nil
	}
}

// Indent returns an Option that sets the number of spaces Format uses per
// nesting level. Zero writes everything on a single line.
func Indent(spaces int) Option {
	return func(o *options) error {
		if spaces < 0 {
			return fmt.Errorf("dsc: indent must not be negative")
		}
		o.indent = &spaces
		return nil
	}
}

func (o *options) checkSize(src []byte) error {
	if o.maxSize > 0 && len(src) > o.maxSize {
		return fmt.Errorf("dsc: %d bytes exceeds limit of %d: %w", len(src), o.maxSize, ErrInputTooLarge)
	}
	return nil
}
