package assetpack

import "encoding/binary"

// Fixed layout sizes of the container format. All multi-byte integers are
// little-endian and unsigned.
const (
	// HeaderSize is the byte length of the container header
	// (file count, checksum, combined length).
	HeaderSize = 12

	// RecordSize is the byte length of one file table record.
	RecordSize = 44

	// MaxNameLen is the byte length of the name field in a table record.
	// Longer names are truncated; shorter names are zero-padded.
	MaxNameLen = 32

	// TagSize is the byte length of the framing tag preceding each payload.
	TagSize = 2

	// MagicTag is the framing sentinel written before every payload.
	MagicTag uint16 = 0x5A5A
)

// magicTag is the on-wire form of MagicTag. Both bytes are equal, so byte
// order is irrelevant, but the loader compares raw bytes.
var magicTag = [TagSize]byte{0x5A, 0x5A}

// Checksum computes the container's integrity sum over data: the additive
// sum of all byte values, modulo 2^32.
//
// This is the exact algorithm the embedded loader recomputes over the
// combined region (file table plus payload). It is a heuristic guard against
// truncation and corruption, not a CRC, and collisions are accepted.
func Checksum(data []byte) uint32 {
	var sum uint32
	for _, b := range data {
		sum += uint32(b)
	}
	return sum
}

// truncateName applies the table's name rule: the first MaxNameLen bytes of
// the UTF-8 encoding. Truncation is byte-wise and may split a multi-byte
// rune; the table stores whatever bytes result.
func truncateName(name string) string {
	if len(name) > MaxNameLen {
		return name[:MaxNameLen]
	}
	return name
}

// appendHeader appends the 12-byte container header to dst.
func appendHeader(dst []byte, fileCount, checksum, combinedLen uint32) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, fileCount)
	dst = binary.LittleEndian.AppendUint32(dst, checksum)
	dst = binary.LittleEndian.AppendUint32(dst, combinedLen)
	return dst
}

// appendRecord appends one 44-byte table record to dst.
func appendRecord(dst []byte, e Entry) []byte {
	var name [MaxNameLen]byte
	copy(name[:], truncateName(e.Name))
	dst = append(dst, name[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, e.Size)
	dst = binary.LittleEndian.AppendUint32(dst, e.Offset)
	dst = binary.LittleEndian.AppendUint16(dst, e.Width)
	dst = binary.LittleEndian.AppendUint16(dst, e.Height)
	return dst
}

// parseRecord decodes one 44-byte table record. The stored name has its
// zero padding stripped.
func parseRecord(rec []byte) Entry {
	_ = rec[RecordSize-1]
	name := rec[:MaxNameLen]
	end := len(name)
	for end > 0 && name[end-1] == 0 {
		end--
	}
	return Entry{
		Name:   string(name[:end]),
		Size:   binary.LittleEndian.Uint32(rec[32:36]),
		Offset: binary.LittleEndian.Uint32(rec[36:40]),
		Width:  binary.LittleEndian.Uint16(rec[40:42]),
		Height: binary.LittleEndian.Uint16(rec[42:44]),
	}
}
