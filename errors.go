package assetpack

import "errors"

// Sentinel errors reported by the packer.
var (
	// ErrEmptyInput is returned when Pack is invoked with no assets.
	ErrEmptyInput = errors.New("assetpack: no assets to pack")

	// ErrSizeOverflow is returned when a payload size, an offset, or the
	// combined region length exceeds the format's 32-bit fields.
	ErrSizeOverflow = errors.New("assetpack: size overflow")

	// ErrTooManyAssets is returned when the asset count exceeds the
	// configured limit.
	ErrTooManyAssets = errors.New("assetpack: too many assets")

	// ErrNameCollision is returned in strict-names mode when two assets
	// share the same stored (truncated) name.
	ErrNameCollision = errors.New("assetpack: truncated name collision")
)

// Sentinel errors reported by the source resolver.
var (
	// ErrSourceNotFound is returned when none of the candidate source roots
	// exist.
	ErrSourceNotFound = errors.New("assetpack: no source root found")

	// ErrNoFilesResolved is returned when a source root exists but none of
	// the desired files do.
	ErrNoFilesResolved = errors.New("assetpack: no asset files resolved")
)

// Sentinel errors reported by the container reader.
var (
	// ErrInvalidContainer is returned when the header, table, or region
	// lengths are inconsistent with the data.
	ErrInvalidContainer = errors.New("assetpack: invalid container")

	// ErrChecksumMismatch is returned when the header checksum does not
	// match the combined region.
	ErrChecksumMismatch = errors.New("assetpack: checksum mismatch")

	// ErrBadTag is returned when an entry's framing tag is not 0x5A5A.
	ErrBadTag = errors.New("assetpack: bad magic tag")
)
