package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/PiuQiuPiaQia/assetpack"
)

func runUnpack(args []string) int {
	flags := pflag.NewFlagSet("unpack", pflag.ContinueOnError)
	var (
		dest      string
		overwrite bool
		workers   int
		verbose   bool
	)
	flags.StringVarP(&dest, "dest", "d", ".", "destination directory")
	flags.BoolVar(&overwrite, "overwrite", false, "overwrite existing files")
	flags.IntVar(&workers, "workers", 0, "concurrent writers: <0 serial, 0 auto, >0 fixed")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: assetpack unpack [--dest DIR] <container>")
		return exitFailure
	}

	c, err := assetpack.LoadFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return loadExitCode(err)
	}

	stats, err := c.Unpack(dest,
		assetpack.UnpackWithOverwrite(overwrite),
		assetpack.UnpackWithWorkers(workers),
		assetpack.UnpackWithLogger(newLogger(verbose)),
		assetpack.UnpackWithProgress(func(ev assetpack.ProgressEvent) {
			fmt.Printf("  + %s (%d bytes)\n", ev.Name, ev.Size)
		}),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitWriteFailure
	}

	fmt.Printf("unpacked %d files (%d bytes) to %s", stats.FileCount, stats.TotalBytes, dest)
	if stats.Skipped > 0 {
		fmt.Printf(", skipped %d existing", stats.Skipped)
	}
	fmt.Println()
	return exitOK
}
