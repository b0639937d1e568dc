// Package server exposes the converter over HTTP: a single upload endpoint
// returning generated HTML as JSON.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"ptc/config"
	"ptc/convert"
	"ptc/convert/html"
	"ptc/css"
	"ptc/state"
)

// UploadField is the multipart form field name the endpoint expects.
const UploadField = "pptFile"

type Server struct {
	cfg  config.ServerConfig
	log  *zap.Logger
	opts html.Options

	// uploads are spooled here before parsing, always a temp directory
	// outside of tests
	spoolDir string
}

// Run starts the HTTP front end and blocks until the context is canceled or
// the listener fails.
func Run(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("server")

	var sheet *css.Stylesheet
	if env.Cfg.Document.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Document.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Document.StylesheetPath, err)
		}
		sheet = css.NewParser(env.Log).Parse(data, env.Cfg.Document.StylesheetPath)
		for _, w := range sheet.Warnings {
			log.Warn("Stylesheet construct skipped", zap.String("detail", w))
		}
	}

	if cmd.IsSet("host") {
		env.Cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		env.Cfg.Server.Port = int(cmd.Int("port"))
	}

	srv := New(env.Cfg.Server, html.Options{
		Stylesheet:     sheet,
		ThemeOverrides: env.Cfg.Document.ThemeOverrides,
	}, log)

	addr := net.JoinHostPort(env.Cfg.Server.Host, strconv.Itoa(env.Cfg.Server.Port))
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		timeout := time.Duration(env.Cfg.Server.ShutdownTimeout) * time.Second
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		log.Info("Shutting down")
		done <- httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("Listening", zap.String("address", addr))
	if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return <-done
}

// New creates a Server serving conversions with the given configuration.
func New(cfg config.ServerConfig, opts html.Options, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	opts.Log = log
	return &Server{
		cfg:      cfg,
		log:      log,
		opts:     opts,
		spoolDir: os.TempDir(),
	}
}

// Routes builds the handler tree with CORS applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /convert", s.handleConvert)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return s.cors(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	maxBytes := s.cfg.MaxUploadMBytes * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile(UploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		s.fail(w, http.StatusBadRequest, fmt.Sprintf("form field %q is missing in request", UploadField))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, http.StatusRequestEntityTooLarge, "upload exceeds size limit")
			return
		}
		s.log.Error("Unable to read upload", zap.Error(err))
		s.fail(w, http.StatusInternalServerError, "unable to read upload")
		return
	}

	if !convert.IsPresentationData(data) {
		s.fail(w, http.StatusUnprocessableEntity, "uploaded file is not a PPTX presentation")
		return
	}

	// Spool under a fresh name, uploads may share file names.
	tmpName := filepath.Join(s.spoolDir, uuid.NewString()+".pptx")
	if err := os.WriteFile(tmpName, data, 0600); err != nil {
		s.log.Error("Unable to spool upload", zap.Error(err))
		s.fail(w, http.StatusInternalServerError, "unable to store upload")
		return
	}
	defer os.Remove(tmpName)

	out, err := html.ConvertFile(tmpName, s.opts)
	if err != nil {
		s.log.Warn("Conversion rejected", zap.String("upload", header.Filename), zap.Error(err))
		s.fail(w, http.StatusUnprocessableEntity, "uploaded file is not a PPTX presentation")
		return
	}

	s.log.Info("Conversion completed",
		zap.String("upload", header.Filename), zap.Int("size", len(data)), zap.Duration("elapsed", time.Since(start)))
	s.respond(w, http.StatusOK, map[string]string{"html": out})
}

func (s *Server) fail(w http.ResponseWriter, status int, msg string) {
	s.respond(w, status, map[string]string{"error": msg})
}

func (s *Server) respond(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Debug("Unable to write response", zap.Error(err))
	}
}

// cors allows browser clients from configured origins to call the API.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := s.allowOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) allowOrigin(origin string) string {
	if slices.Contains(s.cfg.CORSOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(s.cfg.CORSOrigins, origin) {
		return origin
	}
	return ""
}
