package assetpack

// Asset is one named blob to be packed into a container.
type Asset struct {
	// Name is the entry's identifier, a file name without any path. Names
	// longer than MaxNameLen bytes are truncated when stored in the table;
	// see PackWithStrictNames for collision detection.
	Name string

	// Content is the raw payload. It is written to the container verbatim,
	// preceded by the framing tag.
	Content []byte

	// Width and Height are metadata for image assets. They are zero for
	// fonts and other non-image assets.
	Width  uint16
	Height uint16
}

// Entry is one resolved file table record.
type Entry struct {
	// Name is the stored (possibly truncated) entry name.
	Name string

	// Size is the payload length in bytes, excluding the framing tag.
	Size uint32

	// Offset is the position of the entry's 2-byte tag within the payload
	// region. The payload content starts at Offset+TagSize.
	Offset uint32

	// Width and Height mirror the corresponding Asset fields.
	Width  uint16
	Height uint16
}
