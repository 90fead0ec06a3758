package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/daniil11ru/trail/cli/tracker/domain"
	"github.com/daniil11ru/trail/cli/tracker/dto/db/in/insert"
	"github.com/daniil11ru/trail/cli/tracker/dto/db/out"
	repo "github.com/daniil11ru/trail/cli/tracker/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memorySource implements source.Primary in memory.
type memorySource struct {
	mu      sync.Mutex
	records []out.Location
	apiKeys []out.ApiKey

	failRead  bool
	failWrite bool

	nextID int32
	clock  time.Time
}

func newMemorySource(keys ...uint64) *memorySource {
	s := &memorySource{clock: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
	for i, key := range keys {
		s.apiKeys = append(s.apiKeys, out.ApiKey{ID: int32(i + 1), Key: key})
	}
	return s
}

func (s *memorySource) AddLocation(_ context.Context, location insert.Location) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWrite {
		return 0, errSourceDown
	}

	s.nextID++
	s.clock = s.clock.Add(time.Second)
	s.records = append(s.records, out.Location{
		ID:        s.nextID,
		UID:       location.UID,
		Timestamp: s.clock,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	})
	return s.nextID, nil
}

func (s *memorySource) GetLastLocation(_ context.Context, uid uint64) (out.Location, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failRead {
		return out.Location{}, false, errSourceDown
	}

	var last out.Location
	found := false
	for _, record := range s.records {
		if record.UID != uid {
			continue
		}
		if !found || record.Timestamp.After(last.Timestamp) {
			last = record
			found = true
		}
	}
	return last, found, nil
}

func (s *memorySource) GetApiKeys(_ context.Context) ([]out.ApiKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failRead {
		return nil, errSourceDown
	}
	return s.apiKeys, nil
}

var errSourceDown = &sourceError{"source is down"}

type sourceError struct{ s string }

func (e *sourceError) Error() string { return e.s }

func newTestController(t *testing.T, src *memorySource) *Controller {
	t.Helper()

	primaryRepository := repo.Primary{Source: src}

	registry := &domain.ApiKeyRegistry{Repository: &primaryRepository}
	require.NoError(t, registry.Refresh(context.Background()))

	handler := NewHandler(
		&domain.UpdateLocation{PrimaryRepository: primaryRepository},
		&domain.QueryLocation{PrimaryRepository: primaryRepository},
	)

	controller, err := NewController(handler, &domain.ResolveCredential{Registry: registry})
	require.NoError(t, err)

	return controller
}

func doRequest(c *Controller, method, body string, headers map[string][]string) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != "" {
		buf = bytes.NewBufferString(body)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, "/loc", buf)
	for name, values := range headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func authHeader(key string) map[string][]string {
	return map[string][]string{"x-api-key": {key}}
}

func TestLocationScenario(t *testing.T) {
	src := newMemorySource(111)
	controller := newTestController(t, src)

	// Первая фиксация.
	w := doRequest(controller, http.MethodPut, `{"lat": 40.0, "lng": -73.0}`, authHeader("111"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"Initial"`, w.Body.String())

	// Вторая фиксация на 0.1 градуса севернее.
	w = doRequest(controller, http.MethodPut, `{"lat": 40.1, "lng": -73.0}`, authHeader("111"))
	require.Equal(t, http.StatusOK, w.Code)

	var updateBody struct {
		DistTraveled struct {
			Km float64 `json:"km"`
		} `json:"DistTraveled"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updateBody))
	assert.InDelta(t, 11.1, updateBody.DistTraveled.Km, 0.05)

	// Запрос последнего местоположения.
	w = doRequest(controller, http.MethodGet, "", authHeader("111"))
	require.Equal(t, http.StatusOK, w.Code)

	var queryBody struct {
		Location struct {
			Timestamp string `json:"timestamp"`
			Location  struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"Location"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queryBody))
	assert.Equal(t, 40.1, queryBody.Location.Location.Lat)
	assert.Equal(t, -73.0, queryBody.Location.Location.Lng)

	ts, err := time.Parse(time.RFC3339, queryBody.Location.Timestamp)
	require.NoError(t, err)
	assert.True(t, ts.After(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)))
}

func TestGetLocation_MissingWhenNoHistory(t *testing.T) {
	src := newMemorySource(111)
	controller := newTestController(t, src)

	w := doRequest(controller, http.MethodGet, "", authHeader("111"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"Missing"`, w.Body.String())
}

func TestAuthentication_ClientErrors(t *testing.T) {
	src := newMemorySource(111)
	controller := newTestController(t, src)

	tests := []struct {
		name    string
		headers map[string][]string
	}{
		{
			name:    "missing header",
			headers: nil,
		},
		{
			name:    "duplicated header",
			headers: map[string][]string{"x-api-key": {"111", "111"}},
		},
		{
			name:    "malformed key",
			headers: authHeader("not-a-key"),
		},
		{
			name:    "unregistered key",
			headers: authHeader("999"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(controller, http.MethodGet, "", tt.headers)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			w = doRequest(controller, http.MethodPut, `{"lat": 40.0, "lng": -73.0}`, tt.headers)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	// Ни один неаутентифицированный запрос не должен был ничего записать.
	assert.Empty(t, src.records)
}

func TestPutLocation_BodyValidation(t *testing.T) {
	src := newMemorySource(111)
	controller := newTestController(t, src)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not json"},
		{name: "empty object", body: `{}`},
		{name: "missing lng", body: `{"lat": 40.0}`},
		{name: "latitude out of range", body: `{"lat": 91.0, "lng": 0.0}`},
		{name: "longitude out of range", body: `{"lat": 0.0, "lng": -181.0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(controller, http.MethodPut, tt.body, authHeader("111"))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}

	assert.Empty(t, src.records)
}

func TestStoreFailureIsServerError(t *testing.T) {
	src := newMemorySource(111)
	controller := newTestController(t, src)
	src.failRead = true

	w := doRequest(controller, http.MethodPut, `{"lat": 40.0, "lng": -73.0}`, authHeader("111"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(controller, http.MethodGet, "", authHeader("111"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
