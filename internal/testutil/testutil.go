// Package testutil provides container fixtures for tests.
//
// Containers are assembled here by hand, independent of the packer, so
// packer and loader tests compare against a second construction of the
// format rather than against themselves.
package testutil

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// TestAsset describes one entry for BuildContainer.
type TestAsset struct {
	Name    string
	Content []byte
	Width   uint16
	Height  uint16
}

// BuildContainer assembles a complete container image: 12-byte header,
// 44-byte table records in ascending name order, then tagged payloads.
func BuildContainer(tb testing.TB, assets []TestAsset) []byte {
	tb.Helper()

	sorted := slices.Clone(assets)
	slices.SortStableFunc(sorted, func(a, b TestAsset) int {
		return strings.Compare(a.Name, b.Name)
	})

	var table, payload []byte
	for _, a := range sorted {
		name := a.Name
		if len(name) > 32 {
			name = name[:32]
		}
		var rec [44]byte
		copy(rec[:32], name)
		binary.LittleEndian.PutUint32(rec[32:36], uint32(len(a.Content)))
		binary.LittleEndian.PutUint32(rec[36:40], uint32(len(payload)))
		binary.LittleEndian.PutUint16(rec[40:42], a.Width)
		binary.LittleEndian.PutUint16(rec[42:44], a.Height)
		table = append(table, rec[:]...)
		payload = append(payload, 0x5A, 0x5A)
		payload = append(payload, a.Content...)
	}

	combined := append(table, payload...)
	out := make([]byte, 12, 12+len(combined))
	binary.LittleEndian.PutUint32(out[0:4], uint32(len(sorted)))
	binary.LittleEndian.PutUint32(out[4:8], sumBytes(combined))
	binary.LittleEndian.PutUint32(out[8:12], uint32(len(combined)))
	return append(out, combined...)
}

// FlipByte returns a copy of data with the byte at off inverted.
func FlipByte(tb testing.TB, data []byte, off int) []byte {
	tb.Helper()
	out := slices.Clone(data)
	out[off] ^= 0xFF
	return out
}

// PatchHeaderChecksum recomputes the checksum over data[12:] and writes it
// into the header, so fixtures corrupted elsewhere still pass the checksum
// and exercise deeper validation paths.
func PatchHeaderChecksum(tb testing.TB, data []byte) {
	tb.Helper()
	binary.LittleEndian.PutUint32(data[4:8], sumBytes(data[12:]))
}

// SourceDir writes files into a fresh temp directory and returns its path.
func SourceDir(tb testing.TB, files map[string][]byte) string {
	tb.Helper()
	dir := tb.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			tb.Fatalf("mkdir for %s: %v", name, err)
		}
		if err := os.WriteFile(path, content, 0o644); err != nil {
			tb.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

// WriteContainer builds a container and writes it to a file under a fresh
// temp directory, returning the file path.
func WriteContainer(tb testing.TB, assets []TestAsset) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "assets.bin")
	if err := os.WriteFile(path, BuildContainer(tb, assets), 0o644); err != nil {
		tb.Fatalf("write container: %v", err)
	}
	return path
}

func sumBytes(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return sum
}
