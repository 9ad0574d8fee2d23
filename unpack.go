package assetpack

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// UnpackStats reports the outcome of an Unpack operation.
type UnpackStats struct {
	// FileCount is the number of entries written.
	FileCount int
	// TotalBytes is the number of content bytes written, tags excluded.
	TotalBytes uint64
	// Skipped is the number of entries left alone because the destination
	// file already existed.
	Skipped int
}

// defaultUnpackWorkers caps automatic worker selection.
const defaultUnpackWorkers = 4

// Unpack writes every entry's content to destDir, one file per entry.
//
// Files are written atomically using temp files and renames, so a failed
// extraction never leaves partial content at a final path. Entry names must
// be valid fs paths; a container whose table would escape destDir is
// rejected before anything is written.
//
// By default:
//   - Existing files are skipped (use UnpackWithOverwrite to overwrite)
//   - Entries are written concurrently (use UnpackWithWorkers to change)
func (c *Container) Unpack(destDir string, opts ...UnpackOption) (UnpackStats, error) {
	var cfg unpackConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, e := range c.entries {
		if !fs.ValidPath(e.Name) {
			return UnpackStats{}, &fs.PathError{Op: "unpack", Path: e.Name, Err: fs.ErrInvalid}
		}
	}

	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return UnpackStats{}, fmt.Errorf("create destination %s: %w", destDir, err)
	}
	root, err := os.OpenRoot(destDir)
	if err != nil {
		return UnpackStats{}, fmt.Errorf("open destination root: %w", err)
	}
	defer root.Close()

	workers := cfg.workerCount(len(c.entries))
	cfg.log().Debug("unpacking container", "entries", len(c.entries), "dest", destDir, "workers", workers)

	var written, bytes, skipped, done atomic.Int64

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for _, e := range c.entries {
		g.Go(func() error {
			rel := filepath.FromSlash(e.Name)
			if !cfg.overwrite {
				if _, err := root.Stat(rel); err == nil {
					skipped.Add(1)
					done.Add(1)
					return nil
				}
			}
			if dir := path.Dir(e.Name); dir != "." {
				if err := root.MkdirAll(filepath.FromSlash(dir), 0o750); err != nil {
					return fmt.Errorf("create directory %s: %w", dir, err)
				}
			}
			if err := writeEntryAtomic(root, rel, c.Payload(e)); err != nil {
				return fmt.Errorf("unpack %s: %w", e.Name, err)
			}
			written.Add(1)
			bytes.Add(int64(e.Size))
			n := done.Add(1)
			if cfg.progress != nil {
				cfg.progress(ProgressEvent{
					Stage:  StageUnpacking,
					Name:   e.Name,
					Offset: e.Offset,
					Size:   e.Size,
					Done:   int(n),
					Total:  len(c.entries),
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return UnpackStats{}, err
	}

	return UnpackStats{
		FileCount:  int(written.Load()),
		TotalBytes: uint64(bytes.Load()),
		Skipped:    int(skipped.Load()),
	}, nil
}

// writeEntryAtomic writes content to a temp file inside root, then renames
// it to rel, ensuring atomic replacement of the target file.
func writeEntryAtomic(root *os.Root, rel string, content []byte) error {
	tmp, tmpRel, err := createTempIn(root, filepath.Dir(rel))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		root.Remove(tmpRel)
		return fmt.Errorf("write content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		root.Remove(tmpRel)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := root.Rename(tmpRel, rel); err != nil {
		root.Remove(tmpRel)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

func createTempIn(root *os.Root, dir string) (*os.File, string, error) {
	const attempts = 10
	for range attempts {
		suffix, err := randomSuffix()
		if err != nil {
			return nil, "", err
		}
		rel := filepath.Join(dir, ".assetpack-"+suffix)
		f, err := root.OpenFile(rel, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			return f, rel, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", errors.New("create temp file: exhausted retries")
}

func randomSuffix() (string, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
