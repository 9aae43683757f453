// Package util holds helpers shared by the integration and end-to-end tests:
// docker gating, HTTP polling and disposable Mosquitto and InfluxDB
// containers.
package util

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	MosquittoReadyTimeout = 5 * time.Second
	MetricTimeout         = 5 * time.Second

	pollInterval = 50 * time.Millisecond
)

// DockerAvailable reports whether container based tests may run. It reads
// DOCKER_AVAILABLE, which CI sets on runners with a docker daemon.
func DockerAvailable() bool {
	switch os.Getenv("DOCKER_AVAILABLE") {
	case "1", "true":
		return true
	}
	return false
}

// poll calls try every pollInterval until it returns true or ctx is done.
func poll(ctx context.Context, try func() bool) error {
	t := time.NewTicker(pollInterval)
	defer t.Stop()
	for {
		if try() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// WaitForBody polls url until its response body contains substr.
func WaitForBody(ctx context.Context, url, substr string) error {
	var last string
	err := poll(ctx, func() bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return false
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return false
		}
		last = string(body)
		return strings.Contains(last, substr)
	})
	if err != nil {
		return fmt.Errorf("%q not served by %s (last body %d bytes): %w", substr, url, len(last), err)
	}
	return nil
}

// WaitForMetric waits until the Prometheus endpoint exposes substr.
func WaitForMetric(ctx context.Context, metricsURL, substr string) error {
	return WaitForBody(ctx, metricsURL, substr)
}
