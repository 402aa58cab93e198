package painter

import (
	"log/slog"

	"github.com/gogpu/gputypes"
)

// DefaultBatchQuads is the default number of quads per batch.
const DefaultBatchQuads = 200

// Config holds Painter settings. Start from DefaultConfig.
type Config struct {
	// BatchQuads is the quad capacity of one batch. Reaching it forces a
	// flush. Valid range: 1 to 16383.
	BatchQuads int

	// ScreenFormat is the format of views passed to SetScreen.
	ScreenFormat gputypes.TextureFormat

	// Logger, when not nil, replaces the package logger (see SetLogger).
	Logger *slog.Logger
}

// DefaultConfig returns the default settings: 200 quads per batch and a
// BGRA8 screen.
func DefaultConfig() Config {
	return Config{
		BatchQuads:   DefaultBatchQuads,
		ScreenFormat: gputypes.TextureFormatBGRA8Unorm,
	}
}

// Option configures a Painter during creation.
//
// Example:
//
//	p, err := painter.New(device, queue,
//	    painter.WithBatchQuads(512),
//	    painter.WithScreenFormat(gputypes.TextureFormatRGBA8Unorm))
type Option func(*Config)

// WithBatchQuads sets the batch capacity in quads.
func WithBatchQuads(n int) Option {
	return func(c *Config) {
		c.BatchQuads = n
	}
}

// WithScreenFormat sets the surface format used for Screen draws.
func WithScreenFormat(format gputypes.TextureFormat) Option {
	return func(c *Config) {
		c.ScreenFormat = format
	}
}

// WithLogger installs l as the package logger while creating the Painter.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithConfig replaces all settings at once, typically with values read
// from an asset manifest. Zero fields keep their defaults.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		if cfg.BatchQuads != 0 {
			c.BatchQuads = cfg.BatchQuads
		}
		if cfg.ScreenFormat != gputypes.TextureFormatUndefined {
			c.ScreenFormat = cfg.ScreenFormat
		}
		if cfg.Logger != nil {
			c.Logger = cfg.Logger
		}
	}
}
