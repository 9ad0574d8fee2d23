package assetpack

import (
	"encoding/binary"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"sort"
	"strings"

	"github.com/opencontainers/go-digest"
)

// Interface compliance.
var (
	_ fs.FS         = (*Container)(nil)
	_ fs.StatFS     = (*Container)(nil)
	_ fs.ReadFileFS = (*Container)(nil)
	_ fs.ReadDirFS  = (*Container)(nil)
)

// Container provides read access to a packed asset container.
//
// A Container is fully validated at Load time: header lengths, the additive
// checksum, every table record's bounds, and every entry's framing tag. Once
// constructed it never fails structurally.
//
// Container implements fs.FS and related interfaces over the entry
// namespace. The namespace is flat; "." is the only directory.
type Container struct {
	data    []byte
	payload []byte
	entries []Entry
	sorted  bool

	checksum    uint32
	combinedLen uint32
}

// Load parses and validates a container from data.
//
// The provided data is retained by the Container; callers must not modify
// it after calling Load.
func Load(data []byte) (*Container, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes, want at least %d", ErrInvalidContainer, len(data), HeaderSize)
	}

	fileCount := binary.LittleEndian.Uint32(data[0:4])
	checksum := binary.LittleEndian.Uint32(data[4:8])
	combinedLen := binary.LittleEndian.Uint32(data[8:12])

	combined := data[HeaderSize:]
	if uint64(combinedLen) != uint64(len(combined)) {
		return nil, fmt.Errorf("%w: combined length %d, have %d bytes", ErrInvalidContainer, combinedLen, len(combined))
	}

	tableLen := uint64(fileCount) * RecordSize
	if tableLen > uint64(len(combined)) {
		return nil, fmt.Errorf("%w: table needs %d bytes, have %d", ErrInvalidContainer, tableLen, len(combined))
	}

	if sum := Checksum(combined); sum != checksum {
		return nil, fmt.Errorf("%w: header 0x%08X, computed 0x%08X", ErrChecksumMismatch, checksum, sum)
	}

	payload := combined[tableLen:]
	entries := make([]Entry, 0, fileCount)
	sorted := true
	for i := range int(fileCount) {
		e := parseRecord(combined[i*RecordSize : (i+1)*RecordSize])
		end := uint64(e.Offset) + TagSize + uint64(e.Size)
		if end > uint64(len(payload)) {
			return nil, fmt.Errorf("%w: entry %q spans [%d:%d), payload is %d bytes",
				ErrInvalidContainer, e.Name, e.Offset, end, len(payload))
		}
		if payload[e.Offset] != magicTag[0] || payload[e.Offset+1] != magicTag[1] {
			return nil, fmt.Errorf("%w: entry %q at offset %d", ErrBadTag, e.Name, e.Offset)
		}
		if i > 0 && strings.Compare(entries[i-1].Name, e.Name) > 0 {
			sorted = false
		}
		entries = append(entries, e)
	}

	return &Container{
		data:        data,
		payload:     payload,
		entries:     entries,
		sorted:      sorted,
		checksum:    checksum,
		combinedLen: combinedLen,
	}, nil
}

// LoadFile reads and validates the container at path.
func LoadFile(path string) (*Container, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided path is intentional
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return Load(data)
}

// Len returns the number of entries in the container.
func (c *Container) Len() int {
	return len(c.entries)
}

// Checksum returns the additive checksum stored in the header. It is
// verified against the combined region during Load.
func (c *Container) Checksum() uint32 {
	return c.checksum
}

// CombinedLength returns the byte length of the table plus payload region.
func (c *Container) CombinedLength() uint32 {
	return c.combinedLen
}

// Size returns the total container size in bytes, header included.
func (c *Container) Size() int64 {
	return int64(len(c.data))
}

// Bytes returns the raw container bytes.
// The returned slice aliases the loaded data and must be treated as immutable.
func (c *Container) Bytes() []byte {
	return c.data
}

// Digest returns the sha256 digest of the full container bytes.
//
// The digest is a build-provenance identifier for the artifact; it is not
// part of the wire format (the loader checks only the additive checksum).
func (c *Container) Digest() digest.Digest {
	return digest.FromBytes(c.data)
}

// Lookup returns the table entry for name.
//
// The query is truncated by the table's 32-byte name rule before comparing,
// so a caller holding the original (long) file name finds its entry. When
// several records share a stored name, the first in table order wins.
func (c *Container) Lookup(name string) (Entry, bool) {
	key := truncateName(name)
	if c.sorted {
		i := sort.Search(len(c.entries), func(i int) bool {
			return c.entries[i].Name >= key
		})
		if i < len(c.entries) && c.entries[i].Name == key {
			return c.entries[i], true
		}
		return Entry{}, false
	}
	// Foreign containers are not required to sort their tables; fall back
	// to the loader's linear scan.
	for _, e := range c.entries {
		if e.Name == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Entries returns an iterator over all entries in table order.
func (c *Container) Entries() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		for _, e := range c.entries {
			if !yield(e) {
				return
			}
		}
	}
}

// Names returns all stored entry names in table order.
func (c *Container) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

// Payload returns the content bytes for an entry, tag excluded.
// The returned slice aliases the container data and must be treated as
// immutable. Entries not obtained from this container may be out of range;
// Payload panics in that case, matching slice semantics.
func (c *Container) Payload(e Entry) []byte {
	start := uint64(e.Offset) + TagSize
	return c.payload[start : start+uint64(e.Size)]
}

// ReadFile implements fs.ReadFileFS.
//
// ReadFile returns a copy of the named entry's content.
func (c *Container) ReadFile(name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrInvalid}
	}
	e, ok := c.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "readfile", Path: name, Err: fs.ErrNotExist}
	}
	content := make([]byte, e.Size)
	copy(content, c.Payload(e))
	return content, nil
}

// Open implements fs.FS.
//
// Open returns an fs.File reading the named entry's content. The returned
// file also implements io.ReaderAt and io.Seeker; payloads are stored raw,
// so random access is always available.
func (c *Container) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return &rootDir{c: c}, nil
	}
	e, ok := c.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return newEntryFile(e, c.Payload(e)), nil
}

// Stat implements fs.StatFS.
func (c *Container) Stat(name string) (fs.FileInfo, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrInvalid}
	}
	if name == "." {
		return rootDirInfo{}, nil
	}
	e, ok := c.Lookup(name)
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
	return entryInfo{e: e}, nil
}

// ReadDir implements fs.ReadDirFS.
//
// The namespace is flat: only "." is a directory, and it lists every entry
// in table order.
func (c *Container) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}
	if name != "." {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrNotExist}
	}
	dirents := make([]fs.DirEntry, len(c.entries))
	for i, e := range c.entries {
		dirents[i] = fs.FileInfoToDirEntry(entryInfo{e: e})
	}
	return dirents, nil
}
