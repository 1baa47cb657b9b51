package portal

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/andybalholm/brotli"

	"scoutsie/internal/config"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func probeConfig(url string) *config.PortalConfig {
	return &config.PortalConfig{BaseURL: url, ProbeTimeout: 5 * time.Second}
}

func TestProbeOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>login</body></html>"))
	}))
	defer srv.Close()

	if err := Probe(context.Background(), probeConfig(srv.URL), testLogger); err != nil {
		t.Errorf("Probe: %v", err)
	}
}

func TestProbeGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("<html><body>login</body></html>"))
		gz.Close()
	}))
	defer srv.Close()

	if err := Probe(context.Background(), probeConfig(srv.URL), testLogger); err != nil {
		t.Errorf("Probe with gzip body: %v", err)
	}
}

func TestProbeBrotli(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "br")
		br := brotli.NewWriter(w)
		br.Write([]byte("<html><body>login</body></html>"))
		br.Close()
	}))
	defer srv.Close()

	if err := Probe(context.Background(), probeConfig(srv.URL), testLogger); err != nil {
		t.Errorf("Probe with brotli body: %v", err)
	}
}

func TestProbeClientErrorTolerated(t *testing.T) {
	// 4xx means the portal answered; only server failures abort the run.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer srv.Close()

	if err := Probe(context.Background(), probeConfig(srv.URL), testLogger); err != nil {
		t.Errorf("Probe with 403: %v", err)
	}
}

func TestProbeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := Probe(context.Background(), probeConfig(srv.URL), testLogger)
	if !errors.Is(err, ErrPortalUnreachable) {
		t.Errorf("expected ErrPortalUnreachable, got %v", err)
	}
}

func TestProbeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	err := Probe(context.Background(), probeConfig(srv.URL), testLogger)
	if !errors.Is(err, ErrPortalUnreachable) {
		t.Errorf("expected ErrPortalUnreachable, got %v", err)
	}
}
