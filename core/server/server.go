/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/ksv-py/custom-interpreter/core/config"
	"github.com/ksv-py/custom-interpreter/core/expr"
	"github.com/ksv-py/custom-interpreter/core/pipeline"
	"github.com/ksv-py/custom-interpreter/core/query"
	"github.com/ksv-py/custom-interpreter/core/rendering"
	"github.com/ksv-py/custom-interpreter/core/views"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

// Server represents the playground server with all its dependencies
type Server struct {
	Echo *echo.Echo

	renderer *rendering.PlaygroundRenderer
	cfg      config.ServeConfig
	logger   *slog.Logger
}

// NewServer creates a new playground server
func NewServer(cfg config.ServeConfig, logger *slog.Logger) (*Server, error) {
	renderer, err := rendering.NewPlaygroundRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		Echo:     e,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	s.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogLatency:   true,
		LogURIPath:   true,
		LogMethod:    true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error == nil {
				s.logger.LogAttrs(context.Background(), slog.LevelInfo, "REQUEST",
					slog.String("id", v.RequestID),
					slog.String("method", v.Method),
					slog.String("path", v.URIPath),
					slog.Int("status", v.Status),
					slog.Duration("latency", v.Latency),
				)
			} else {
				s.logger.LogAttrs(context.Background(), slog.LevelError, "REQUEST_ERROR",
					slog.String("id", v.RequestID),
					slog.String("method", v.Method),
					slog.String("path", v.URIPath),
					slog.Int("status", v.Status),
					slog.String("err", v.Error.Error()),
				)
			}
			return nil
		},
	}))
	s.Echo.Use(middleware.Recover())
	// Form encoding can triple the size of the source text.
	s.Echo.Use(middleware.BodyLimit(fmt.Sprintf("%dB", 3*s.cfg.MaxSourceBytes+1024)))
}

func (s *Server) setupRoutes() {
	s.Echo.GET("/", s.handlePlayground)
	s.Echo.POST("/", s.handlePlayground)
	s.Echo.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
}

// handlePlayground renders the page for a GET query or a submitted form
func (s *Server) handlePlayground(c echo.Context) error {
	requestURL := *c.Request().URL
	if c.Request().Method == http.MethodPost {
		form, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
		}
		requestURL.RawQuery = form.Encode()
	}

	var page bytes.Buffer
	if result := s.HandlePlaygroundRequest(&page, &requestURL); result != nil {
		if result.Error != nil {
			return echo.NewHTTPError(result.StatusCode, result.Message).SetInternal(result.Error)
		}
		return echo.NewHTTPError(result.StatusCode, result.Message)
	}
	return c.HTMLBlob(http.StatusOK, page.Bytes())
}

// PlaygroundHandlerResult represents the result of handling a playground request
type PlaygroundHandlerResult struct {
	Error      error
	StatusCode int
	Message    string
}

// TimingCollector collects timing measurements for various operations
type TimingCollector struct {
	entries []views.TimingEntry
	start   time.Time
}

// NewTimingCollector creates a new timing collector
func NewTimingCollector() *TimingCollector {
	return &TimingCollector{start: time.Now()}
}

// Record records a timing entry
func (tc *TimingCollector) Record(operation string, duration time.Duration) {
	tc.entries = append(tc.entries, views.TimingEntry{
		Operation:  operation,
		DurationMs: fmt.Sprintf("%.2f", float64(duration.Microseconds())/1000.0),
	})
}

// GetEntries returns all timing entries
func (tc *TimingCollector) GetEntries() []views.TimingEntry {
	return tc.entries
}

// TotalMs returns total elapsed time in milliseconds as formatted string
func (tc *TimingCollector) TotalMs() string {
	return fmt.Sprintf("%.2f", float64(time.Since(tc.start).Microseconds())/1000.0)
}

// HandlePlaygroundRequest runs the requested mode over the requested source
// and writes the rendered page. Returns an error result if the request is
// invalid, nil on success.
func (s *Server) HandlePlaygroundRequest(w io.Writer, requestURL *url.URL) *PlaygroundHandlerResult {
	timing := NewTimingCollector()

	// Parse URL into Query
	parseStart := time.Now()
	q := query.NewQuery(requestURL)
	timing.Record("Parse Query", time.Since(parseStart))

	mode, err := pipeline.ParseMode(q.Mode)
	if err != nil {
		return &PlaygroundHandlerResult{StatusCode: http.StatusBadRequest, Message: err.Error()}
	}
	if len(q.Source) > s.cfg.MaxSourceBytes {
		return &PlaygroundHandlerResult{
			StatusCode: http.StatusRequestEntityTooLarge,
			Message:    fmt.Sprintf("source exceeds %d bytes", s.cfg.MaxSourceBytes),
		}
	}

	// Each request gets its own runner; nothing is shared between runs.
	runStart := time.Now()
	var stdout, stderr bytes.Buffer
	code := pipeline.NewRunner(&stdout, &stderr, pipeline.WithLogger(s.logger)).Run(mode, q.Source)
	timing.Record("Run "+string(mode), time.Since(runStart))

	var tokens []expr.Token
	if q.ShowTokens {
		scanStart := time.Now()
		tokens, _ = expr.Scan(q.Source, io.Discard)
		timing.Record("Scan Tokens", time.Since(scanStart))
	}

	vmStart := time.Now()
	viewModel := views.BuildPlaygroundViewModel(q, views.RunResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: code,
	}, tokens)
	timing.Record("Build ViewModel", time.Since(vmStart))

	viewModel.RenderTimeMs = timing.TotalMs()
	viewModel.TimingBreakdown = timing.GetEntries()

	if err := s.renderer.Render(w, viewModel); err != nil {
		return &PlaygroundHandlerResult{
			Error:      err,
			StatusCode: http.StatusInternalServerError,
			Message:    "failed to render page",
		}
	}
	return nil
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Echo,
		ReadTimeout:  s.cfg.ReadTimeout.Duration,
		WriteTimeout: s.cfg.WriteTimeout.Duration,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("Server starting", "addr", "http://"+s.cfg.Addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutdown started")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
