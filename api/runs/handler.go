// Package runs exposes the persisted run history over HTTP.
package runs

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kilianp07/ridership/core/metrics"
	"github.com/kilianp07/ridership/core/runlog"
	"github.com/kilianp07/ridership/pkg/export"
)

// Path is the route the handler is mounted on.
const Path = "/api/runs"

// NewHandler returns an HTTP handler exposing run records via GET /api/runs.
// Requests must include an Authorization header with "Bearer <token>" when
// token is non-empty. Supported query parameters are scenario, start and end
// (RFC3339), limit and format (json, csv or yaml). JSON responses carry the
// full records; csv and yaml carry the run summaries only.
func NewHandler(store runlog.Store, token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		q, err := parseQuery(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		records, err := store.Query(r.Context(), q)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if records == nil {
			records = []runlog.Record{}
		}

		format := r.URL.Query().Get("format")
		switch format {
		case "", export.FormatJSON:
			w.Header().Set("Content-Type", "application/json")
			if err := json.NewEncoder(w).Encode(records); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		case export.FormatCSV, export.FormatYAML:
			summaries := make([]metrics.RunSummary, len(records))
			for i, rec := range records {
				summaries[i] = rec.Summary
			}
			w.Header().Set("Content-Type", contentType(format))
			if err := export.Write(w, format, summaries); err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		default:
			http.Error(w, fmt.Sprintf("unsupported format %q", format), http.StatusBadRequest)
		}
	})
}

func parseQuery(r *http.Request) (runlog.Query, error) {
	v := r.URL.Query()
	q := runlog.Query{Scenario: v.Get("scenario")}
	if s := v.Get("start"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("invalid start: %w", err)
		}
		q.Start = t
	}
	if s := v.Get("end"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return q, fmt.Errorf("invalid end: %w", err)
		}
		q.End = t
	}
	if s := v.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return q, fmt.Errorf("invalid limit %q", s)
		}
		q.Limit = n
	}
	return q, nil
}

func contentType(format string) string {
	if format == export.FormatCSV {
		return "text/csv"
	}
	return "application/yaml"
}
