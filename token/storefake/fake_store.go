package storefake

import (
	"sync"

	"github.com/jrsteele09/go-auth-client/token"
)

var _ token.Store = (*FakeStore)(nil)

// FakeStore is an in-memory token.Store for tests. SaveErr, when set, is
// returned from Save without updating the record.
type FakeStore struct {
	lock   sync.Mutex
	record *token.Record

	SaveCalls  int
	LoadCalls  int
	ClearCalls int
	SaveErr    error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (f *FakeStore) Save(record *token.Record) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.SaveCalls++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	copied := *record
	f.record = &copied
	return nil
}

func (f *FakeStore) Load() (*token.Record, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.LoadCalls++
	if f.record == nil {
		return nil, false
	}
	copied := *f.record
	return &copied, true
}

func (f *FakeStore) Clear() error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.ClearCalls++
	f.record = nil
	return nil
}

func (f *FakeStore) Exists() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.record != nil
}

// SetRecord seeds the store with a record, bypassing the counters.
func (f *FakeStore) SetRecord(record *token.Record) {
	f.lock.Lock()
	defer f.lock.Unlock()
	copied := *record
	f.record = &copied
}

// Record returns the currently stored record, or nil.
func (f *FakeStore) Record() *token.Record {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.record == nil {
		return nil
	}
	copied := *f.record
	return &copied
}
