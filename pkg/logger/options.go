package logger

import (
	"io"
	"log/slog"
	"os"
)

// Option configures a logger built by New or NewWithSentry.
type Option func(*options)

type options struct {
	writer     io.Writer
	level      slog.Leveler
	text       bool
	addSource  bool
	extractors []ContextExtractor
}

func defaultOptions() *options {
	return &options{
		writer: os.Stdout,
		level:  slog.LevelInfo,
	}
}

// WithWriter sets the log destination. Defaults to os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithLevel sets the minimum level. Defaults to slog.LevelInfo.
func WithLevel(level slog.Leveler) Option {
	return func(o *options) {
		if level != nil {
			o.level = level
		}
	}
}

// WithText switches the output format from JSON to logfmt-style text.
func WithText() Option {
	return func(o *options) {
		o.text = true
	}
}

// WithSource adds the caller's file and line to every record.
func WithSource() Option {
	return func(o *options) {
		o.addSource = true
	}
}

// WithExtractors appends context extractors applied on every log call.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

func (o *options) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level, AddSource: o.addSource}
	if o.text {
		return slog.NewTextHandler(o.writer, ho)
	}
	return slog.NewJSONHandler(o.writer, ho)
}
