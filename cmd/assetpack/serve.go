package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/spf13/pflag"

	"github.com/PiuQiuPiaQia/assetpack"
)

func runServe(args []string) int {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	addr := flags.String("addr", ":8080", "listen address")
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, err)
		return exitFailure
	}
	if flags.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: assetpack serve [--addr HOST:PORT] <container>")
		return exitFailure
	}

	c, err := assetpack.LoadFile(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return loadExitCode(err)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	logger.Info("serving container", "path", flags.Arg(0), "addr", *addr, "files", c.Len())
	srv := &http.Server{
		Addr:              *addr,
		Handler:           newServer(c, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

type assetServer struct {
	c      *assetpack.Container
	logger *slog.Logger
	router *httprouter.Router
}

func newServer(c *assetpack.Container, logger *slog.Logger) *assetServer {
	s := &assetServer{c: c, logger: logger}
	router := httprouter.New()
	router.GET("/healthz", s.health)
	router.GET("/v1/container", s.describeContainer)
	router.GET("/v1/assets", s.listAssets)
	router.GET("/v1/assets/:name", s.serveAsset)
	s.router = router
	return s
}

func (s *assetServer) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	s.logger.Info("request", "method", req.Method, "url", req.URL.String())
	s.router.ServeHTTP(w, req)
}

func (s *assetServer) health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{Status: "ok"})
}

func (s *assetServer) describeContainer(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, describe(s.c, false))
}

func (s *assetServer) listAssets(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	writeJSON(w, http.StatusOK, describe(s.c, true).Entries)
}

func (s *assetServer) serveAsset(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
	name := ps.ByName("name")
	e, ok := s.c.Lookup(name)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no asset named %q", name))
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.FormatUint(uint64(e.Size), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(s.c.Payload(e)); err != nil {
		s.logger.Warn("write asset response", "name", name, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // response already committed
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
