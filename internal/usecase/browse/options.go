package browse

import (
	"io"
	"log/slog"
)

type options struct {
	log        *slog.Logger
	staleGuard bool
}

// Option configures a loader.
type Option func(*options)

func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithStaleGuard makes a loader discard responses of fetches that were
// superseded by a newer one. Without it, overlapping fetches race and the
// last one to resolve wins.
func WithStaleGuard() Option {
	return func(o *options) { o.staleGuard = true }
}

func buildOptions(opts []Option) options {
	o := options{
		log: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
