package assetpack

import (
	"encoding/binary"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PiuQiuPiaQia/assetpack/internal/testutil"
)

func TestPack_GoldenContainer(t *testing.T) {
	t.Parallel()

	// Input deliberately unsorted; the table must come out in name order.
	assets := []Asset{
		{Name: "b.bin", Content: []byte{3}},
		{Name: "a.bin", Content: []byte{1, 2}},
	}

	want := make([]byte, 0, 107)
	want = append(want, 2, 0, 0, 0)       // file count
	want = append(want, 0x06, 0x05, 0, 0) // checksum 0x00000506
	want = append(want, 95, 0, 0, 0)      // combined length
	want = append(want, []byte("a.bin")...)
	want = append(want, make([]byte, 27)...) // name padding
	want = append(want, 2, 0, 0, 0)          // size
	want = append(want, 0, 0, 0, 0)          // offset
	want = append(want, 0, 0, 0, 0)          // width, height
	want = append(want, []byte("b.bin")...)
	want = append(want, make([]byte, 27)...)
	want = append(want, 1, 0, 0, 0)
	want = append(want, 4, 0, 0, 0)
	want = append(want, 0, 0, 0, 0)
	want = append(want, 0x5A, 0x5A, 1, 2) // a.bin
	want = append(want, 0x5A, 0x5A, 3)    // b.bin

	got, err := Pack(assets)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPack_MatchesIndependentConstruction(t *testing.T) {
	t.Parallel()

	assets := []Asset{
		{Name: "font_puhui_common_20_4.bin", Content: []byte("glyph data, twenty point")},
		{Name: "font_puhui_common_14_1.bin", Content: []byte("glyph data")},
		{Name: "icon.bin", Content: []byte{0xDE, 0xAD, 0xBE, 0xEF}, Width: 32, Height: 32},
	}
	fixtures := make([]testutil.TestAsset, len(assets))
	for i, a := range assets {
		fixtures[i] = testutil.TestAsset{Name: a.Name, Content: a.Content, Width: a.Width, Height: a.Height}
	}

	got, err := Pack(assets)
	require.NoError(t, err)
	assert.Equal(t, testutil.BuildContainer(t, fixtures), got)
}

func TestPack_Deterministic(t *testing.T) {
	t.Parallel()

	assets := []Asset{
		{Name: "c.bin", Content: []byte("ccc")},
		{Name: "a.bin", Content: []byte("a")},
		{Name: "d.bin", Content: []byte("dddd")},
		{Name: "b.bin", Content: []byte("bb")},
	}

	first, err := Pack(assets)
	require.NoError(t, err)

	shuffled := slices.Clone(assets)
	slices.Reverse(shuffled)
	second, err := Pack(shuffled)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestPack_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := Pack(nil)
	require.ErrorIs(t, err, ErrEmptyInput)

	_, err = Pack([]Asset{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

func TestPack_SizeLaw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		assets []Asset
	}{
		{"single empty payload", []Asset{{Name: "empty.bin"}}},
		{"single", []Asset{{Name: "one.bin", Content: make([]byte, 1000)}}},
		{"several", []Asset{
			{Name: "a", Content: make([]byte, 7)},
			{Name: "b", Content: make([]byte, 13)},
			{Name: "c", Content: make([]byte, 1)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := Pack(tt.assets)
			require.NoError(t, err)

			var contentLen int
			for _, a := range tt.assets {
				contentLen += len(a.Content)
			}
			n := len(tt.assets)
			assert.Len(t, out, HeaderSize+RecordSize*n+TagSize*n+contentLen)
		})
	}
}

func TestPack_ChecksumLaw(t *testing.T) {
	t.Parallel()

	out, err := Pack([]Asset{
		{Name: "x.bin", Content: []byte{0xFF, 0xFF, 0x01}},
		{Name: "y.bin", Content: []byte("payload")},
	})
	require.NoError(t, err)

	stored := binary.LittleEndian.Uint32(out[4:8])
	assert.Equal(t, Checksum(out[HeaderSize:]), stored)
}

func TestPack_TableSortedByName(t *testing.T) {
	t.Parallel()

	out, err := Pack([]Asset{
		{Name: "zeta.bin", Content: []byte("z")},
		{Name: "alpha.bin", Content: []byte("a")},
		{Name: "mid.bin", Content: []byte("m")},
	})
	require.NoError(t, err)

	c, err := Load(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha.bin", "mid.bin", "zeta.bin"}, c.Names())
}

func TestPack_TruncatesLongNames(t *testing.T) {
	t.Parallel()

	longName := strings.Repeat("n", 40) + ".bin"
	out, err := Pack([]Asset{{Name: longName, Content: []byte("data")}})
	require.NoError(t, err)

	c, err := Load(out)
	require.NoError(t, err)

	e, ok := c.Lookup(longName)
	require.True(t, ok, "lookup by the original long name must find the truncated record")
	assert.Equal(t, longName[:MaxNameLen], e.Name)
	assert.Len(t, e.Name, MaxNameLen)
}

func TestPack_TruncationCollisions(t *testing.T) {
	t.Parallel()

	shared := strings.Repeat("x", MaxNameLen)
	assets := []Asset{
		{Name: shared + "-first", Content: []byte("first")},
		{Name: shared + "-second", Content: []byte("second")},
	}

	t.Run("permissive default keeps both records", func(t *testing.T) {
		t.Parallel()

		out, err := Pack(assets)
		require.NoError(t, err)

		c, err := Load(out)
		require.NoError(t, err)
		assert.Equal(t, 2, c.Len())

		// Lookup resolves to the first record in table order.
		e, ok := c.Lookup(shared)
		require.True(t, ok)
		assert.Equal(t, []byte("first"), c.Payload(e))
	})

	t.Run("strict names fails", func(t *testing.T) {
		t.Parallel()

		_, err := Pack(assets, PackWithStrictNames())
		require.ErrorIs(t, err, ErrNameCollision)
	})

	t.Run("strict names passes distinct sets", func(t *testing.T) {
		t.Parallel()

		_, err := Pack([]Asset{
			{Name: "a.bin", Content: []byte("a")},
			{Name: "b.bin", Content: []byte("b")},
		}, PackWithStrictNames())
		require.NoError(t, err)
	})
}

func TestPack_DuplicateNamesKeepInputOrder(t *testing.T) {
	t.Parallel()

	out, err := Pack([]Asset{
		{Name: "dup.bin", Content: []byte("first")},
		{Name: "dup.bin", Content: []byte("second")},
	})
	require.NoError(t, err)

	c, err := Load(out)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	e, ok := c.Lookup("dup.bin")
	require.True(t, ok)
	assert.Equal(t, []byte("first"), c.Payload(e))
}

func TestPack_WidthHeightStored(t *testing.T) {
	t.Parallel()

	out, err := Pack([]Asset{
		{Name: "img.bin", Content: []byte("pixels"), Width: 240, Height: 135},
	})
	require.NoError(t, err)

	c, err := Load(out)
	require.NoError(t, err)

	e, ok := c.Lookup("img.bin")
	require.True(t, ok)
	assert.Equal(t, uint16(240), e.Width)
	assert.Equal(t, uint16(135), e.Height)
}

func TestPack_MaxAssets(t *testing.T) {
	t.Parallel()

	assets := []Asset{
		{Name: "a", Content: []byte("a")},
		{Name: "b", Content: []byte("b")},
		{Name: "c", Content: []byte("c")},
	}

	_, err := Pack(assets, PackWithMaxAssets(2))
	require.ErrorIs(t, err, ErrTooManyAssets)

	_, err = Pack(assets, PackWithMaxAssets(3))
	require.NoError(t, err)

	_, err = Pack(assets, PackWithMaxAssets(-1))
	require.NoError(t, err)
}

func TestPack_ProgressEvents(t *testing.T) {
	t.Parallel()

	var events []ProgressEvent
	_, err := Pack([]Asset{
		{Name: "b.bin", Content: []byte("bb")},
		{Name: "a.bin", Content: []byte("a")},
	}, PackWithProgress(func(ev ProgressEvent) {
		events = append(events, ev)
	}))
	require.NoError(t, err)

	require.Len(t, events, 2)
	assert.Equal(t, StagePacking, events[0].Stage)
	assert.Equal(t, "a.bin", events[0].Name)
	assert.Equal(t, uint32(0), events[0].Offset)
	assert.Equal(t, 1, events[0].Done)
	assert.Equal(t, 2, events[0].Total)
	assert.Equal(t, "b.bin", events[1].Name)
	assert.Equal(t, uint32(3), events[1].Offset)
	assert.Equal(t, 2, events[1].Done)
}
