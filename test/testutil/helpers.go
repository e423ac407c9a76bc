// Package testutil provides test helper functions for unit and integration tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/flight-search/interconnecting-flights/internal/infrastructure/timeutil"
)

// LoadTestJSON loads a file from the test/testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(testDataDir(t), filename))
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

func testDataDir(t *testing.T) string {
	t.Helper()

	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// testutil lives in test/testutil
	return filepath.Join(filepath.Dir(currentFile), "..", "testdata")
}

// MustParseLocal parses a local date-time such as "2018-03-01T07:00".
// It fails the test if parsing fails.
func MustParseLocal(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := timeutil.ParseLocalDateTime(value)
	if err != nil {
		t.Fatalf("Failed to parse local date time %s: %v", value, err)
	}
	return parsed
}

// DecodeJSON unmarshals data into a new T, failing the test on error.
func DecodeJSON[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		t.Fatalf("Failed to decode JSON %q: %v", string(data), err)
	}
	return v
}

// UpstreamServer serves the files under test/testdata the way the timetable
// API does: /routes from routes.json and
// /schedules/{from}/{to}/years/{y}/months/{m} from
// schedules/{from}-{to}-{y}-{m}.json. Missing files answer 404.
// The server is closed when the test ends.
func UpstreamServer(t *testing.T) *httptest.Server {
	t.Helper()

	dir := testDataDir(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var file string
		switch {
		case r.URL.Path == "/routes":
			file = "routes.json"
		case strings.HasPrefix(r.URL.Path, "/schedules/"):
			// from, to, "years", y, "months", m
			parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/schedules/"), "/")
			if len(parts) != 6 {
				http.NotFound(w, r)
				return
			}
			file = filepath.Join("schedules", strings.Join([]string{parts[0], parts[1], parts[3], parts[5]}, "-")+".json")
		default:
			http.NotFound(w, r)
			return
		}

		data, err := os.ReadFile(filepath.Join(dir, file))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}
