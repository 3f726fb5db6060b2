package htmlx

import "log/slog"

// Options configures a parse. The zero value is the default configuration:
// verbose root mode, no debug tracing.
type Options struct {
	rootMode Mode
	logger   *slog.Logger
}

// Option mutates Options; apply one or more via Parse's variadic opts.
type Option func(*Options)

// WithConciseRoot starts the parse in concise (indentation-sensitive) mode
// instead of the default verbose mode. Useful for hosts that always feed
// concise-syntax fragments (e.g. template bodies known ahead of time to
// use the indentation dialect).
func WithConciseRoot() Option {
	return func(o *Options) { o.rootMode = Concise }
}

// WithDebugLogger turns on slog.LevelDebug tracing of state transitions
// (enter/exit/return) to the given logger. Nil disables tracing, which is
// also the default — the hot path never touches a logger unless this is
// set, the same gate the teacher's lexer.NewWithDebug uses rather than an
// environment-variable check on every token.
func WithDebugLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.logger = logger }
}

func defaultOptions() Options {
	return Options{rootMode: Verbose}
}
