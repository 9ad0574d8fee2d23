package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/PiuQiuPiaQia/assetpack"
	"github.com/PiuQiuPiaQia/assetpack/internal/manifest"
)

func runPack(args []string) int {
	flags := pflag.NewFlagSet("pack", pflag.ContinueOnError)
	var (
		configPath  string
		roots       []string
		files       []string
		out         string
		strictNames bool
		verbose     bool
	)
	flags.StringVarP(&configPath, "config", "c", "", "manifest naming roots, files, and output (YAML or JSON)")
	flags.StringArrayVar(&roots, "root", nil, "candidate source directory, repeatable; first existing wins")
	flags.StringArrayVar(&files, "file", nil, "file name to pack, repeatable")
	flags.StringVarP(&out, "out", "o", "", "output container path")
	flags.BoolVar(&strictNames, "strict-names", false, "fail when names collide after 32-byte truncation")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}

	logger := newLogger(verbose)

	m := manifest.Default()
	if configPath != "" {
		loaded, err := manifest.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitFailure
		}
		m = loaded.WithDefaults()
	}
	if len(roots) > 0 {
		m.Roots = roots
	}
	if len(files) > 0 {
		m.Files = files
	}
	if out != "" {
		m.Output = out
	}

	root, err := assetpack.ResolveRoot(m.Roots)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		fmt.Fprintln(os.Stderr, `run "idf.py reconfigure" to fetch managed components, or pass --root`)
		return exitNoSource
	}
	fmt.Printf("source root: %s\n", root)

	assets, missing, err := assetpack.ResolveAssets(context.Background(), root, m.Files,
		assetpack.ResolveWithLogger(logger),
		assetpack.ResolveWithProgress(func(ev assetpack.ProgressEvent) {
			fmt.Printf("  found: %s (%d bytes)\n", ev.Name, ev.Size)
		}),
	)
	for _, name := range missing {
		fmt.Printf("  missing: %s\n", name)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, assetpack.ErrNoFilesResolved) {
			return exitNothingToPack
		}
		return exitReadFailure
	}

	fmt.Printf("\npacking %d files...\n", len(assets))

	packOpts := []assetpack.PackOption{
		assetpack.PackWithLogger(logger),
		assetpack.PackWithProgress(func(ev assetpack.ProgressEvent) {
			fmt.Printf("  + %s @ offset %d, size %d\n", ev.Name, ev.Offset, ev.Size)
		}),
	}
	if strictNames {
		packOpts = append(packOpts, assetpack.PackWithStrictNames())
	}

	data, err := assetpack.Pack(assets, packOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, assetpack.ErrEmptyInput) {
			return exitNothingToPack
		}
		return exitFailure
	}

	c, err := assetpack.Load(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: packed container failed validation: %v\n", err)
		return exitFailure
	}

	if err := assetpack.Save(m.Output, data); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitWriteFailure
	}

	fmt.Printf("\ncontainer written: %s\n", m.Output)
	fmt.Printf("  files:    %d\n", c.Len())
	fmt.Printf("  size:     %d bytes (%.2f KB)\n", c.Size(), float64(c.Size())/1024)
	fmt.Printf("  checksum: 0x%08X\n", c.Checksum())
	fmt.Printf("  digest:   %s\n", c.Digest())
	fmt.Println()
	fmt.Println("flash the assets partition with:")
	fmt.Printf("  parttool.py write_partition --partition-name=assets --input=%s\n", m.Output)
	return exitOK
}
