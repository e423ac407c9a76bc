package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeUpstream(t *testing.T) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/routes", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"airportFrom":"DUB","airportTo":"STN","operator":"RYANAIR"},
			{"airportFrom":"STN","airportTo":"WRO","operator":"RYANAIR"}
		]`))
	})
	mux.HandleFunc("/schedules/DUB/STN/years/2018/months/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"month":3,"days":[{"day":1,"flights":[{"number":"1","departureTime":"06:25","arrivalTime":"07:35"}]}]}`))
	})
	mux.HandleFunc("/schedules/STN/WRO/years/2018/months/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"month":3,"days":[{"day":1,"flights":[{"number":"2","departureTime":"09:50","arrivalTime":"13:20"}]}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("RYANAIR_ROUTES_URL", srv.URL+"/routes")
	t.Setenv("RYANAIR_SCHEDULES_URL", srv.URL+"/schedules")
	t.Setenv("CACHE_BACKEND", "memory")
}

func TestSearchCommand(t *testing.T) {
	fakeUpstream(t)

	var out bytes.Buffer
	err := Execute(context.Background(), &out, []string{
		"search",
		"--departure", "dub",
		"--arrival", "WRO",
		"--from", "2018-03-01T06:00",
		"--to", "2018-03-01T23:00",
		"--cache", "none",
	})
	require.NoError(t, err)

	var result []struct {
		Stops int `json:"stops"`
		Legs  []struct {
			DepartureAirport  string `json:"departureAirport"`
			ArrivalAirport    string `json:"arrivalAirport"`
			DepartureDateTime string `json:"departureDateTime"`
			ArrivalDateTime   string `json:"arrivalDateTime"`
		} `json:"legs"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result, 2)

	assert.Equal(t, 0, result[0].Stops)
	assert.Empty(t, result[0].Legs)

	assert.Equal(t, 1, result[1].Stops)
	require.Len(t, result[1].Legs, 2)
	assert.Equal(t, "STN", result[1].Legs[0].ArrivalAirport)
	assert.Equal(t, "2018-03-01T07:35", result[1].Legs[0].ArrivalDateTime)
	assert.Equal(t, "2018-03-01T09:50", result[1].Legs[1].DepartureDateTime)

	assert.Equal(t, "memory", os.Getenv("CACHE_BACKEND"), "the cache flag leaves the environment alone")
}

func TestSearchCommand_UnknownCacheBackend(t *testing.T) {
	fakeUpstream(t)

	err := Execute(context.Background(), &bytes.Buffer{}, []string{
		"search",
		"--departure", "DUB",
		"--arrival", "WRO",
		"--from", "2018-03-01T06:00",
		"--to", "2018-03-01T23:00",
		"--cache", "disk",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_BACKEND must be one of")
}

func TestSearchCommand_InvalidArguments(t *testing.T) {
	fakeUpstream(t)

	err := Execute(context.Background(), &bytes.Buffer{}, []string{
		"search",
		"--departure", "DUB",
		"--arrival", "WRO",
		"--from", "tomorrow",
		"--to", "2018-03-01T23:00",
		"--max-stops", "9",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid arguments")
}

func TestSearchCommand_SameAirport(t *testing.T) {
	fakeUpstream(t)

	err := Execute(context.Background(), &bytes.Buffer{}, []string{
		"search",
		"--departure", "DUB",
		"--arrival", "DUB",
		"--from", "2018-03-01T06:00",
		"--to", "2018-03-01T23:00",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "departure and arrival can not be the same")
}

func TestSearchCommand_RequiredFlags(t *testing.T) {
	err := Execute(context.Background(), &bytes.Buffer{}, []string{"search", "--departure", "DUB"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
