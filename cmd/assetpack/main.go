// Command assetpack builds, inspects, and serves mmap asset containers.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Exit codes, one per failure condition so build scripts can branch on them.
const (
	exitOK            = 0
	exitFailure       = 1
	exitNoSource      = 2
	exitNothingToPack = 3
	exitReadFailure   = 4
	exitWriteFailure  = 5
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cmd := "pack"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "pack":
		return runPack(args)
	case "inspect":
		return runInspect(args)
	case "verify":
		return runVerify(args)
	case "unpack":
		return runUnpack(args)
	case "serve":
		return runServe(args)
	case "help":
		usage(os.Stdout)
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage(os.Stderr)
		return exitFailure
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: assetpack [command] [flags]

commands:
  pack     resolve source files and write a container (default)
  inspect  print a container's header and file table
  verify   validate a container's checksum and framing
  unpack   extract a container's entries to a directory
  serve    serve a container's entries over HTTP
  help     show this help

run "assetpack <command> --help" for command flags
`)
}

func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
