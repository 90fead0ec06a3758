package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/daniil11ru/trail/cli/tracker/dto/db/in/insert"
	"github.com/daniil11ru/trail/cli/tracker/dto/db/out"
)

var errSourceDown = errors.New("source is down")

// fakeSource implements source.Primary in memory and records the order of
// calls, so tests can assert that reads happen before writes.
type fakeSource struct {
	mu      sync.Mutex
	records []out.Location
	apiKeys []out.ApiKey
	calls   []string

	failRead  bool
	failWrite bool

	nextID int32
	clock  time.Time
}

func newFakeSource() *fakeSource {
	return &fakeSource{clock: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeSource) AddLocation(_ context.Context, location insert.Location) (int32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "AddLocation")
	if f.failWrite {
		return 0, errSourceDown
	}

	f.nextID++
	f.clock = f.clock.Add(time.Second)
	f.records = append(f.records, out.Location{
		ID:        f.nextID,
		UID:       location.UID,
		Timestamp: f.clock,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
	})
	return f.nextID, nil
}

func (f *fakeSource) GetLastLocation(_ context.Context, uid uint64) (out.Location, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "GetLastLocation")
	if f.failRead {
		return out.Location{}, false, errSourceDown
	}

	var last out.Location
	found := false
	for _, record := range f.records {
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

func (f *fakeSource) GetApiKeys(_ context.Context) ([]out.ApiKey, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, "GetApiKeys")
	if f.failRead {
		return nil, errSourceDown
	}
	return f.apiKeys, nil
}

func (f *fakeSource) countFor(uid uint64) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, record := range f.records {
		if record.UID == uid {
			n++
		}
	}
	return n
}
