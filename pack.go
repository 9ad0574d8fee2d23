package assetpack

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strings"
)

// DefaultMaxAssets is the default limit used when no PackWithMaxAssets
// option is set.
const DefaultMaxAssets = 65_536

// Pack builds a container from assets.
//
// Assets are sorted by name (byte-wise ascending) before layout, making the
// output a pure function of the input set: identical assets produce
// byte-identical containers regardless of iteration order. The sort is
// stable, so assets sharing a name keep their relative input order and are
// stored as separate table records.
//
// Pack performs no I/O and never emits partial output: the result is a
// complete container or an error. Persisting the bytes is the caller's job;
// see Save.
func Pack(assets []Asset, opts ...PackOption) ([]byte, error) {
	cfg := packConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &packer{cfg: cfg}

	if len(assets) == 0 {
		return nil, ErrEmptyInput
	}
	maxAssets := cfg.maxAssets
	if maxAssets == 0 {
		maxAssets = DefaultMaxAssets
	}
	if maxAssets > 0 && len(assets) > maxAssets {
		return nil, ErrTooManyAssets
	}

	sorted := make([]Asset, len(assets))
	copy(sorted, assets)
	slices.SortStableFunc(sorted, func(a, b Asset) int {
		return strings.Compare(a.Name, b.Name)
	})

	if cfg.strictNames {
		if err := checkNameCollisions(sorted); err != nil {
			return nil, err
		}
	}

	p.log().Info("packing assets", "count", len(sorted))

	entries, payload, err := p.appendPayload(sorted)
	if err != nil {
		return nil, err
	}

	table := make([]byte, 0, RecordSize*len(entries))
	for _, e := range entries {
		table = appendRecord(table, e)
	}

	combined := uint64(len(table)) + uint64(len(payload))
	if combined > math.MaxUint32 {
		return nil, ErrSizeOverflow
	}

	// Additive sums compose: sum(table ++ payload) == sum(table)+sum(payload).
	checksum := Checksum(table) + Checksum(payload)

	out := make([]byte, 0, HeaderSize+int(combined))
	out = appendHeader(out, uint32(len(entries)), checksum, uint32(combined))
	out = append(out, table...)
	out = append(out, payload...)

	p.log().Debug("container built",
		"files", len(entries),
		"bytes", len(out),
		"checksum", fmt.Sprintf("0x%08X", checksum))
	return out, nil
}

// packer holds state for a single Pack invocation.
type packer struct {
	cfg packConfig
}

// log returns the logger, falling back to a discard logger if nil.
func (p *packer) log() *slog.Logger {
	if p.cfg.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.cfg.logger
}

// reportProgress sends a progress event if a callback is configured.
func (p *packer) reportProgress(e ProgressEvent) {
	if p.cfg.progress == nil {
		return
	}
	p.cfg.progress(e)
}

// appendPayload frames each asset with the magic tag, accumulates the
// payload region, and records the table entry for each. Assets must already
// be in table order.
func (p *packer) appendPayload(assets []Asset) ([]Entry, []byte, error) {
	var total uint64
	for _, a := range assets {
		total += uint64(TagSize) + uint64(len(a.Content))
	}
	if total > math.MaxUint32 {
		return nil, nil, ErrSizeOverflow
	}

	entries := make([]Entry, 0, len(assets))
	payload := make([]byte, 0, total)
	for i, a := range assets {
		entry := Entry{
			Name:   truncateName(a.Name),
			Size:   uint32(len(a.Content)),
			Offset: uint32(len(payload)),
			Width:  a.Width,
			Height: a.Height,
		}
		payload = append(payload, magicTag[:]...)
		payload = append(payload, a.Content...)
		entries = append(entries, entry)

		p.log().Debug("packed asset", "name", a.Name, "offset", entry.Offset, "size", entry.Size)
		p.reportProgress(ProgressEvent{
			Stage:  StagePacking,
			Name:   a.Name,
			Offset: entry.Offset,
			Size:   entry.Size,
			Done:   i + 1,
			Total:  len(assets),
		})
	}
	return entries, payload, nil
}

// checkNameCollisions reports assets whose names collide after truncation.
// Assets must already be sorted by full name, which makes colliding stored
// names adjacent.
func checkNameCollisions(sorted []Asset) error {
	for i := 1; i < len(sorted); i++ {
		name := truncateName(sorted[i].Name)
		if truncateName(sorted[i-1].Name) == name {
			return fmt.Errorf("%w: %q", ErrNameCollision, name)
		}
	}
	return nil
}
