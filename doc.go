// Package assetpack builds and reads the flat asset container consumed by
// memory-mapped asset loaders on embedded targets.
//
// A container is a single file holding a 12-byte header, a fixed-stride file
// table, and the concatenated asset payloads, each framed by a 2-byte magic
// tag. The loader mmaps the partition and slices payloads out by table
// offset, so the byte layout is a frozen wire contract:
//
//	Header (12 bytes, little-endian):
//	  u32 file_count
//	  u32 checksum         additive sum of FileTable+Payload, mod 2^32
//	  u32 combined_length  byte length of FileTable+Payload
//
//	FileTable (44 bytes per entry, sorted by name):
//	  [32] name, UTF-8, truncated and zero-padded
//	  [4]  size    payload length, tag excluded
//	  [4]  offset  position of the entry's 0x5A5A tag in the payload region
//	  [2]  width
//	  [2]  height
//
//	Payload, per entry in table order:
//	  [2]    magic tag 0x5A 0x5A
//	  [size] raw content
//
// Packing is deterministic: entries are sorted by name before layout, so the
// same set of assets always produces byte-identical output regardless of
// input order.
//
// # Quick Start
//
// Pack font files into a container and write it atomically:
//
//	root, err := assetpack.ResolveRoot(roots)
//	if err != nil {
//	    return err
//	}
//	assets, missing, err := assetpack.ResolveAssets(ctx, root, names)
//	if err != nil {
//	    return err
//	}
//	data, err := assetpack.Pack(assets)
//	if err != nil {
//	    return err
//	}
//	err = assetpack.Save("assets.bin", data)
//
// Read a container back:
//
//	c, err := assetpack.LoadFile("assets.bin")
//	if err != nil {
//	    return err
//	}
//	content, err := c.ReadFile("font_puhui_common_14_1.bin")
//
// Load validates the header length, the checksum, and every entry's framing
// tag, so a Container is known-consistent once constructed. Container also
// implements fs.FS over the (flat) entry namespace.
package assetpack
