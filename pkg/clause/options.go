package clause

import "log/slog"

// Option configures clause construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger traces normalization at debug level. Logging never changes the result.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	return o
}
