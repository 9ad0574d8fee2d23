package assetpack

import "log/slog"

// packConfig holds configuration for container packing.
type packConfig struct {
	logger      *slog.Logger
	progress    ProgressFunc
	strictNames bool
	maxAssets   int
}

// PackOption configures container packing.
type PackOption func(*packConfig)

// PackWithLogger sets the logger for pack operations.
// If not set, logging is disabled.
func PackWithLogger(logger *slog.Logger) PackOption {
	return func(cfg *packConfig) {
		cfg.logger = logger
	}
}

// PackWithProgress sets a callback that receives one event per packed asset.
func PackWithProgress(fn ProgressFunc) PackOption {
	return func(cfg *packConfig) {
		cfg.progress = fn
	}
}

// PackWithStrictNames makes Pack fail with ErrNameCollision when two assets
// share the same stored name after truncation to MaxNameLen bytes.
//
// The default keeps the format's permissive behavior: colliding names are
// stored as separate, identically named table records, and lookups find the
// first.
func PackWithStrictNames() PackOption {
	return func(cfg *packConfig) {
		cfg.strictNames = true
	}
}

// PackWithMaxAssets limits the number of assets in a container.
// Zero uses DefaultMaxAssets. Negative means no limit.
func PackWithMaxAssets(n int) PackOption {
	return func(cfg *packConfig) {
		cfg.maxAssets = n
	}
}
