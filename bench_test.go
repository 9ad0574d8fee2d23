package assetpack

import (
	"fmt"
	"math/rand"
	"testing"
)

var (
	benchSinkBytes []byte
	benchSinkEntry Entry
	benchSinkSum   uint32
	benchSinkInt   int
)

func makeBenchAssets(b *testing.B, count, size int) []Asset {
	b.Helper()
	r := rand.New(rand.NewSource(42)) //nolint:gosec // deterministic fixture data
	assets := make([]Asset, count)
	for i := range assets {
		content := make([]byte, size)
		r.Read(content)
		assets[i] = Asset{Name: fmt.Sprintf("asset_%03d.bin", i), Content: content}
	}
	return assets
}

func BenchmarkPack(b *testing.B) {
	cases := []struct {
		name      string
		fileCount int
		fileSize  int
	}{
		{name: "files=16/size=4k", fileCount: 16, fileSize: 4 << 10},
		{name: "files=64/size=16k", fileCount: 64, fileSize: 16 << 10},
		{name: "files=256/size=4k", fileCount: 256, fileSize: 4 << 10},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			assets := makeBenchAssets(b, bc.fileCount, bc.fileSize)
			b.SetBytes(int64(bc.fileCount * bc.fileSize))

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				data, err := Pack(assets)
				if err != nil {
					b.Fatal(err)
				}
				benchSinkBytes = data
			}
		})
	}
}

func BenchmarkLoad(b *testing.B) {
	cases := []struct {
		name      string
		fileCount int
		fileSize  int
	}{
		{name: "files=16/size=4k", fileCount: 16, fileSize: 4 << 10},
		{name: "files=256/size=4k", fileCount: 256, fileSize: 4 << 10},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			data, err := Pack(makeBenchAssets(b, bc.fileCount, bc.fileSize))
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(len(data)))

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				c, err := Load(data)
				if err != nil {
					b.Fatal(err)
				}
				benchSinkInt = c.Len()
			}
		})
	}
}

func BenchmarkLookup(b *testing.B) {
	cases := []struct {
		name      string
		fileCount int
	}{
		{name: "files=16", fileCount: 16},
		{name: "files=256", fileCount: 256},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			assets := makeBenchAssets(b, bc.fileCount, 64)
			data, err := Pack(assets)
			if err != nil {
				b.Fatal(err)
			}
			c, err := Load(data)
			if err != nil {
				b.Fatal(err)
			}
			names := c.Names()

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; b.Loop(); i++ {
				name := names[i%len(names)]
				entry, ok := c.Lookup(name)
				if !ok {
					b.Fatalf("missing entry for %q", name)
				}
				benchSinkEntry = entry
			}
		})
	}
}

func BenchmarkReadFile(b *testing.B) {
	cases := []struct {
		name      string
		fileCount int
		fileSize  int
	}{
		{name: "files=64/size=4k", fileCount: 64, fileSize: 4 << 10},
		{name: "files=64/size=64k", fileCount: 64, fileSize: 64 << 10},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			assets := makeBenchAssets(b, bc.fileCount, bc.fileSize)
			data, err := Pack(assets)
			if err != nil {
				b.Fatal(err)
			}
			c, err := Load(data)
			if err != nil {
				b.Fatal(err)
			}
			names := c.Names()
			b.SetBytes(int64(bc.fileSize))

			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; b.Loop(); i++ {
				content, err := c.ReadFile(names[i%len(names)])
				if err != nil {
					b.Fatal(err)
				}
				benchSinkBytes = content
			}
		})
	}
}

func BenchmarkChecksum(b *testing.B) {
	cases := []struct {
		name string
		size int
	}{
		{name: "size=4k", size: 4 << 10},
		{name: "size=64k", size: 64 << 10},
		{name: "size=1m", size: 1 << 20},
	}

	for _, bc := range cases {
		b.Run(bc.name, func(b *testing.B) {
			data := make([]byte, bc.size)
			rand.New(rand.NewSource(7)).Read(data) //nolint:gosec // deterministic fixture data
			b.SetBytes(int64(bc.size))

			b.ReportAllocs()
			b.ResetTimer()
			for b.Loop() {
				benchSinkSum = Checksum(data)
			}
		})
	}
}
