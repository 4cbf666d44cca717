package marker

import (
	"fmt"
)

type options struct {
	collation Collation
}

// Option configures Process.
type Option func(*options)

// WithCollation sets the ordering used by the sort stage.
func WithCollation(c Collation) Option {
	return func(o *options) {
		o.collation = c
	}
}

// Process runs the full pipeline on raw file content. Every failure,
// including a panic in one of the stages, is returned as a ProcessingError.
func Process(raw []byte, opts ...Option) (res Result, err error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	defer func() {
		if r := recover(); r != nil {
			res = Result{}
			err = NewProcessingError(fmt.Errorf("panic: %v", r))
		}
	}()

	doc, err := Decode(raw)
	if err != nil {
		return Result{}, NewProcessingError(err)
	}

	return Extract(doc, o.collation), nil
}
