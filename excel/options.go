package excel

import "go.uber.org/zap"

// Options holds configuration for a Document.
type Options struct {
	logger       *zap.Logger
	defaultSheet string
	password     string
}

func defaultOptions() *Options {
	return &Options{
		logger: zap.NewNop(),
	}
}

// Option configures a Document.
type Option func(*Options)

// WithLogger sets the logger used for merge, unmerge and session events.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithDefaultSheet sets the sheet used for references without a sheet name
// (default: the workbook's active sheet).
func WithDefaultSheet(name string) Option {
	return func(o *Options) { o.defaultSheet = name }
}

// WithPassword sets the password used to open and save an encrypted workbook.
func WithPassword(password string) Option {
	return func(o *Options) { o.password = password }
}
