package mock

import (
	"sync"
	"time"
)

// KVStore is an in-memory github.KVStore counting its calls.
type KVStore struct {
	m       sync.Mutex
	values  map[string][]byte
	reads   int
	updates int
	gate    <-chan struct{}

	// ReadErr is returned from every ReadKey call when set.
	ReadErr error
}

// NewKVStore creates KVStore holding values.
// With non-nil gate every UpdateKey waits for a value from it, and panics after a second without one.
func NewKVStore(values map[string][]byte, gate <-chan struct{}) *KVStore {
	if values == nil {
		values = make(map[string][]byte)
	}
	return &KVStore{
		values: values,
		gate:   gate,
	}
}

// ReadKey returns value stored under key.
func (s *KVStore) ReadKey(key []byte) ([]byte, error) {
	s.m.Lock()
	defer s.m.Unlock()

	s.reads++
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return s.values[string(key)], nil
}

// UpdateKey stores value under key.
func (s *KVStore) UpdateKey(key []byte, value []byte) error {
	if s.gate != nil {
		select {
		case <-s.gate:
		case <-time.After(time.Second):
			panic("kvstore update not released")
		}
	}

	s.m.Lock()
	defer s.m.Unlock()

	s.updates++
	s.values[string(key)] = value

	return nil
}

// Value returns value stored under key without counting a read.
func (s *KVStore) Value(key string) []byte {
	s.m.Lock()
	defer s.m.Unlock()

	return s.values[key]
}

// Reads returns ReadKey call count.
func (s *KVStore) Reads() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.reads
}

// Updates returns UpdateKey call count.
func (s *KVStore) Updates() int {
	s.m.Lock()
	defer s.m.Unlock()

	return s.updates
}
