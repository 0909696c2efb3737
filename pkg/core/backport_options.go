package core

import (
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/bdsqqq/resource-pack-backporter/pkg/handlers"
	"github.com/bdsqqq/resource-pack-backporter/pkg/writers"
)

// Option is a functor to build a backporter with some options
type Option func(*Backporter)

// Logger injects a logging facility into the pipeline
func Logger(l *zap.Logger) Option {
	return func(b *Backporter) {
		if l != nil {
			b.l = l
		}
	}
}

// SourceFs sets the filesystem the input pack is read from
func SourceFs(fs afero.Fs) Option {
	return func(b *Backporter) {
		b.srcFs = fs
	}
}

// DestFs sets the filesystem artifacts are written to
func DestFs(fs afero.Fs) Option {
	return func(b *Backporter) {
		b.dstFs = fs
	}
}

// Fs sets one filesystem for both input and output
func Fs(fs afero.Fs) Option {
	return func(b *Backporter) {
		b.srcFs = fs
		b.dstFs = fs
	}
}

// ClearOutput controls whether the output directory is cleared before
// the first write (enabled by default)
func ClearOutput(clear bool) Option {
	return func(b *Backporter) {
		b.clear = clear
	}
}

// Handlers replaces the default extraction-rule registry
func Handlers(r *handlers.Registry) Option {
	return func(b *Backporter) {
		b.handlers = r
	}
}

// Writers replaces the default writer registry
func Writers(r *writers.Registry) Option {
	return func(b *Backporter) {
		b.writers = r
	}
}

// Mergers replaces the default merger list
func Mergers(ms ...Merger) Option {
	return func(b *Backporter) {
		b.mergers = ms
	}
}
