package assetpack

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// ResolveRoot returns the first entry in roots that exists and is a
// directory. Candidates are tried in order, so callers list preferred
// locations first. If none match, ResolveRoot returns ErrSourceNotFound.
func ResolveRoot(roots []string) (string, error) {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err == nil && info.IsDir() {
			return root, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrSourceNotFound, strings.Join(roots, ", "))
}

// ResolveAssets reads the named files under root and returns them as assets,
// in the order requested.
//
// Names that do not exist under root are collected and returned in missing
// rather than failing the call; if every requested name is missing the error
// is ErrNoFilesResolved (missing is still populated). Any other read failure
// aborts immediately. Names are resolved inside root only; paths escaping it
// are rejected by the underlying os.Root.
func ResolveAssets(ctx context.Context, root string, names []string, opts ...ResolveOption) ([]Asset, []string, error) {
	var cfg resolveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r, err := os.OpenRoot(root)
	if err != nil {
		return nil, nil, fmt.Errorf("open source root: %w", err)
	}
	defer r.Close()
	fsys := r.FS()

	assets := make([]Asset, 0, len(names))
	var missing []string
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		content, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			cfg.log().Warn("source file missing", "root", root, "name", name)
			missing = append(missing, name)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read source %q: %w", name, err)
		}
		cfg.log().Debug("resolved source file", "name", name, "size", len(content))
		if cfg.progress != nil {
			cfg.progress(ProgressEvent{
				Stage: StageResolving,
				Name:  name,
				Size:  uint32(len(content)),
				Done:  i + 1,
				Total: len(names),
			})
		}
		assets = append(assets, Asset{Name: name, Content: content})
	}

	if len(names) > 0 && len(assets) == 0 {
		return nil, missing, fmt.Errorf("%w: under %s", ErrNoFilesResolved, root)
	}
	return assets, missing, nil
}

type resolveConfig struct {
	logger   *slog.Logger
	progress ProgressFunc
}

// ResolveOption configures ResolveAssets.
type ResolveOption func(*resolveConfig)

// ResolveWithLogger sets the logger for resolution operations.
func ResolveWithLogger(logger *slog.Logger) ResolveOption {
	return func(c *resolveConfig) {
		c.logger = logger
	}
}

// ResolveWithProgress sets a callback invoked once per resolved file.
func ResolveWithProgress(fn ProgressFunc) ResolveOption {
	return func(c *resolveConfig) {
		c.progress = fn
	}
}

func (c resolveConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(slog.DiscardHandler)
}
