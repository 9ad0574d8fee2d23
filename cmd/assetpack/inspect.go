package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/PiuQiuPiaQia/assetpack"
)

type containerInfo struct {
	FileCount      int         `json:"file_count"`
	Checksum       string      `json:"checksum"`
	CombinedLength uint32      `json:"combined_length"`
	Size           int64       `json:"size"`
	Digest         string      `json:"digest"`
	Entries        []entryInfo `json:"entries,omitempty"`
}

type entryInfo struct {
	Name   string `json:"name"`
	Size   uint32 `json:"size"`
	Offset uint32 `json:"offset"`
	Width  uint16 `json:"width,omitempty"`
	Height uint16 `json:"height,omitempty"`
}

func describe(c *assetpack.Container, withEntries bool) containerInfo {
	info := containerInfo{
		FileCount:      c.Len(),
		Checksum:       fmt.Sprintf("0x%08X", c.Checksum()),
		CombinedLength: c.CombinedLength(),
		Size:           c.Size(),
		Digest:         c.Digest().String(),
	}
	if withEntries {
		info.Entries = make([]entryInfo, 0, c.Len())
		for e := range c.Entries() {
			info.Entries = append(info.Entries, entryInfo{
				Name:   e.Name,
				Size:   e.Size,
				Offset: e.Offset,
				Width:  e.Width,
				Height: e.Height,
			})
		}
	}
	return info
}

// loadExitCode distinguishes a corrupt container from an unreadable one.
func loadExitCode(err error) int {
	switch {
	case errors.Is(err, assetpack.ErrInvalidContainer),
		errors.Is(err, assetpack.ErrChecksumMismatch),
		errors.Is(err, assetpack.ErrBadTag):
		return exitFailure
	default:
		return exitReadFailure
	}
}

func runInspect(args []string) int {
	flags := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	jsonOut := flags.Bool("json", false, "emit machine-readable JSON")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: assetpack inspect [--json] <container>")
		return exitFailure
	}

	c, err := assetpack.LoadFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return loadExitCode(err)
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(describe(c, true)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return exitFailure
		}
		return exitOK
	}

	info := describe(c, false)
	fmt.Printf("container: %s\n", flags.Arg(0))
	fmt.Printf("  files:           %d\n", info.FileCount)
	fmt.Printf("  size:            %d bytes\n", info.Size)
	fmt.Printf("  combined length: %d bytes\n", info.CombinedLength)
	fmt.Printf("  checksum:        %s\n", info.Checksum)
	fmt.Printf("  digest:          %s\n", info.Digest)
	fmt.Println()
	fmt.Printf("%-32s  %10s  %10s  %5s  %6s\n", "NAME", "SIZE", "OFFSET", "WIDTH", "HEIGHT")
	for e := range c.Entries() {
		fmt.Printf("%-32s  %10d  %10d  %5d  %6d\n", e.Name, e.Size, e.Offset, e.Width, e.Height)
	}
	return exitOK
}

func runVerify(args []string) int {
	flags := pflag.NewFlagSet("verify", pflag.ContinueOnError)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: assetpack verify <container>")
		return exitFailure
	}

	path := flags.Arg(0)
	c, err := assetpack.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify failed: %v\n", err)
		return loadExitCode(err)
	}

	fmt.Printf("ok: %s\n", path)
	fmt.Printf("  files:    %d\n", c.Len())
	fmt.Printf("  checksum: 0x%08X\n", c.Checksum())
	fmt.Printf("  digest:   %s\n", c.Digest())
	return exitOK
}
