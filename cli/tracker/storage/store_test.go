package storage

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	payload []byte
}

func (e *testEvent) ToBytes() ([]byte, error) {
	return e.payload, nil
}

type mockSaver struct {
	mu    sync.Mutex
	saved [][]byte
	err   error
}

func (m *mockSaver) Save(msg interface{ ToBytes() ([]byte, error) }) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return m.err
	}

	data, err := msg.ToBytes()
	if err != nil {
		return err
	}
	m.saved = append(m.saved, data)
	return nil
}

func (m *mockSaver) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saved)
}

func TestRepository_SaveFansOutToAllStorages(t *testing.T) {
	first := &mockSaver{}
	second := &mockSaver{}

	repo := NewRepository()
	repo.AddStore(first)
	repo.AddStore(second)

	require.NoError(t, repo.Save(&testEvent{payload: []byte("fix")}))

	assert.Equal(t, 1, first.count())
	assert.Equal(t, 1, second.count())
	assert.Equal(t, []byte("fix"), first.saved[0])
}

func TestRepository_SavePropagatesStorageError(t *testing.T) {
	broken := &mockSaver{err: errors.New("connection lost")}

	repo := NewRepository()
	repo.AddStore(broken)

	err := repo.Save(&testEvent{payload: []byte("fix")})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")
}

func TestRepository_LoadStoragesEmptyConfig(t *testing.T) {
	repo := NewRepository()

	assert.ErrorIs(t, repo.LoadStorages(nil), ErrInvalidStorage)
	assert.ErrorIs(t, repo.LoadStorages(map[string]map[string]string{}), ErrInvalidStorage)
}

func TestRepository_LoadStoragesUnknownStorage(t *testing.T) {
	repo := NewRepository()

	err := repo.LoadStorages(map[string]map[string]string{
		"kafka": {"host": "localhost"},
	})

	assert.ErrorIs(t, err, ErrUnknownStorage)
}

func TestAsyncRepository_SaveIsDeliveredByWorkers(t *testing.T) {
	saver := &mockSaver{}
	repo := NewRepository()
	repo.AddStore(saver)

	async := NewAsyncRepository(repo, 16, 2)
	defer async.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, async.Save(&testEvent{payload: []byte("fix")}))
	}

	require.Eventually(t, func() bool {
		return saver.count() == 5
	}, time.Second, 10*time.Millisecond)
}

func TestAsyncRepository_SaveAfterCloseFails(t *testing.T) {
	async := NewAsyncRepository(NewRepository(), 1, 1)
	async.Close()

	assert.Error(t, async.Save(&testEvent{payload: []byte("fix")}))
}
