package assetpack

import "log/slog"

type unpackConfig struct {
	logger    *slog.Logger
	progress  ProgressFunc
	overwrite bool
	workers   int // 0 = auto, <0 = serial, >0 = fixed count
}

// UnpackOption configures Unpack.
type UnpackOption func(*unpackConfig)

// UnpackWithOverwrite allows overwriting existing files.
// By default, existing files are skipped and counted in UnpackStats.Skipped.
func UnpackWithOverwrite(overwrite bool) UnpackOption {
	return func(c *unpackConfig) {
		c.overwrite = overwrite
	}
}

// UnpackWithWorkers sets the number of concurrent entry writers.
// Values < 0 force serial extraction. Zero uses automatic selection.
// Values > 0 force a specific worker count.
func UnpackWithWorkers(n int) UnpackOption {
	return func(c *unpackConfig) {
		c.workers = n
	}
}

// UnpackWithLogger sets the logger for unpack operations.
// If not set, logging is disabled.
func UnpackWithLogger(logger *slog.Logger) UnpackOption {
	return func(c *unpackConfig) {
		c.logger = logger
	}
}

// UnpackWithProgress sets a callback invoked once per written entry.
func UnpackWithProgress(fn ProgressFunc) UnpackOption {
	return func(c *unpackConfig) {
		c.progress = fn
	}
}

func (c unpackConfig) workerCount(entries int) int {
	switch {
	case c.workers < 0:
		return 1
	case c.workers > 0:
		return c.workers
	}
	return max(1, min(defaultUnpackWorkers, entries))
}

func (c unpackConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}
