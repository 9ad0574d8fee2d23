package assetpack

import (
	"bytes"
	"io"
	"io/fs"
	"time"
)

var (
	_ fs.File     = (*entryFile)(nil)
	_ io.ReaderAt = (*entryFile)(nil)
	_ io.Seeker   = (*entryFile)(nil)

	_ fs.ReadDirFile = (*rootDir)(nil)
)

// entryFile is an open handle on a single container entry.
type entryFile struct {
	e Entry
	r *bytes.Reader
}

func newEntryFile(e Entry, content []byte) *entryFile {
	return &entryFile{e: e, r: bytes.NewReader(content)}
}

func (f *entryFile) Stat() (fs.FileInfo, error) { return entryInfo{e: f.e}, nil }
func (f *entryFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *entryFile) Close() error               { return nil }

func (f *entryFile) ReadAt(p []byte, off int64) (int, error) { return f.r.ReadAt(p, off) }
func (f *entryFile) Seek(offset int64, whence int) (int64, error) {
	return f.r.Seek(offset, whence)
}

// entryInfo reports table metadata through fs.FileInfo.
type entryInfo struct {
	e Entry
}

func (i entryInfo) Name() string       { return i.e.Name }
func (i entryInfo) Size() int64        { return int64(i.e.Size) }
func (i entryInfo) Mode() fs.FileMode  { return 0o444 }
func (i entryInfo) ModTime() time.Time { return time.Time{} }
func (i entryInfo) IsDir() bool        { return false }
func (i entryInfo) Sys() any           { return i.e }

// rootDir is the handle for ".", the container's only directory.
type rootDir struct {
	c   *Container
	pos int
}

func (d *rootDir) Stat() (fs.FileInfo, error) { return rootDirInfo{}, nil }
func (d *rootDir) Close() error               { return nil }

func (d *rootDir) Read([]byte) (int, error) {
	return 0, &fs.PathError{Op: "read", Path: ".", Err: fs.ErrInvalid}
}

// ReadDir returns up to n directory entries, continuing from the previous
// call. With n <= 0 it returns all remaining entries.
func (d *rootDir) ReadDir(n int) ([]fs.DirEntry, error) {
	remaining := len(d.c.entries) - d.pos
	if remaining <= 0 {
		if n <= 0 {
			return nil, nil
		}
		return nil, io.EOF
	}
	if n <= 0 || n > remaining {
		n = remaining
	}
	dirents := make([]fs.DirEntry, n)
	for i := range n {
		dirents[i] = fs.FileInfoToDirEntry(entryInfo{e: d.c.entries[d.pos+i]})
	}
	d.pos += n
	return dirents, nil
}

type rootDirInfo struct{}

func (rootDirInfo) Name() string       { return "." }
func (rootDirInfo) Size() int64        { return 0 }
func (rootDirInfo) Mode() fs.FileMode  { return fs.ModeDir | 0o555 }
func (rootDirInfo) ModTime() time.Time { return time.Time{} }
func (rootDirInfo) IsDir() bool        { return true }
func (rootDirInfo) Sys() any           { return nil }
