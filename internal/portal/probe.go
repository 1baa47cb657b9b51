package portal

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"

	"scoutsie/internal/config"
)

// Probe checks that the portal answers over plain HTTP before the cost of a
// Chromium launch is paid. The portal renders client-side, so only
// reachability and status are checked, never content.
func Probe(ctx context.Context, cfg *config.PortalConfig, logger *slog.Logger) error {
	log := logger.With("component", "portal_probe")

	client := &http.Client{
		Timeout: cfg.ProbeTimeout,
		Transport: &http.Transport{
			TLSHandshakeTimeout: 10 * time.Second,
			// Decompression is handled below, including brotli.
			DisableCompression: true,
		},
	}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.BaseURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPortalUnreachable, err)
	}
	req.Header.Set("User-Agent", "scoutsie/"+config.Version)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate, br")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: timed out after %s", ErrPortalUnreachable, cfg.ProbeTimeout)
		}
		return fmt.Errorf("%w: %v", ErrPortalUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: HTTP %d", ErrPortalUnreachable, resp.StatusCode)
	}

	reader, err := decompressReader(resp, io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPortalUnreachable, err)
	}
	n, err := io.Copy(io.Discard, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPortalUnreachable, err)
	}

	log.Debug("portal probe ok",
		"url", cfg.BaseURL,
		"status", resp.StatusCode,
		"bytes", n,
		"duration", time.Since(start),
	)
	return nil
}

// decompressReader wraps a reader with the appropriate decompressor.
// Handles gzip, deflate, and brotli (br) encodings.
func decompressReader(resp *http.Response, reader io.Reader) (io.Reader, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		return gzip.NewReader(reader)
	case "deflate":
		return flate.NewReader(reader), nil
	case "br":
		return brotli.NewReader(reader), nil
	default:
		return reader, nil
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
