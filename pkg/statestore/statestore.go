// Package statestore is the in-memory dictionary database mocked endpoints
// operate on. The root is a map of named collections, each an ordered list of
// records; helpers cover the find/add/update/delete patterns the simulators
// repeat, returning copies for read paths and direct references for
// modification paths.
package statestore

import (
	"reflect"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Record is one item in a collection.
type Record = map[string]any

// Store is the root dictionary. A single store backs one simulated service;
// endpoints reach collections through it rather than ambient globals.
type Store struct {
	mu   sync.RWMutex
	data map[string]any
}

// New creates an empty store.
func New() *Store {
	return &Store{data: map[string]any{}}
}

// Seed replaces the store's entire contents. Intended for test fixtures and
// harness setup.
func (s *Store) Seed(data map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil {
		data = map[string]any{}
	}
	s.data = data
}

// Reset empties the store.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[string]any{}
}

// Collection returns a direct reference to the named collection, initializing
// it when absent. Mutating the returned slice's records mutates the store.
func (s *Store) Collection(name string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if list, ok := s.data[name].([]Record); ok {
		return list
	}
	list := []Record{}
	s.data[name] = list
	return list
}

// SetCollection replaces the named collection wholesale. Needed after
// deletions, since those produce a new backing slice.
func (s *Store) SetCollection(name string, list []Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = list
}

// Snapshot returns a deep copy of the store's contents for assertions that
// must not alias live state.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return deepCopyMap(s.data)
}

func deepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return deepCopyMap(x)
	case []Record:
		out := make([]Record, len(x))
		for i, r := range x {
			out[i] = deepCopyMap(r)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return deepCopyTyped(x)
	}
}

// deepCopyTyped clones typed slices and maps ([]string, map[string]int, ...)
// that the concrete cases above do not cover, so a snapshot never shares a
// backing array with live state. Scalars pass through unchanged.
func deepCopyTyped(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			if elem := deepCopyValue(rv.Index(i).Interface()); elem != nil {
				out.Index(i).Set(reflect.ValueOf(elem))
			}
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		for iter := rv.MapRange(); iter.Next(); {
			if val := deepCopyValue(iter.Value().Interface()); val != nil {
				out.SetMapIndex(iter.Key(), reflect.ValueOf(val))
			} else {
				out.SetMapIndex(iter.Key(), reflect.Zero(rv.Type().Elem()))
			}
		}
		return out.Interface()
	default:
		return v
	}
}

// FindInList returns a copy of the first record whose key equals value, or
// nil when no record matches. Use it on read paths; mutating the copy leaves
// the store intact.
func FindInList(list []Record, key string, value any) Record {
	if ref := RefInList(list, key, value); ref != nil {
		return deepCopyMap(ref)
	}
	return nil
}

// RefInList returns a direct reference to the first matching record.
// Modifying it modifies the store; reserve it for modification paths.
func RefInList(list []Record, key string, value any) Record {
	for _, rec := range list {
		if rec[key] == value {
			return rec
		}
	}
	return nil
}

// AddUnique appends a record unless uniqueKey is set and another record
// already holds the same value for it. It returns the appended list and a
// reference to the new record, or the original list and nil on conflict.
func AddUnique(list []Record, rec Record, uniqueKey string) ([]Record, Record) {
	if uniqueKey != "" {
		if v, ok := rec[uniqueKey]; ok && RefInList(list, uniqueKey, v) != nil {
			return list, nil
		}
	}
	return append(list, rec), rec
}

// UpdateInList merges payload into the record matching key=value and returns
// a reference to it, or nil when no record matches.
func UpdateInList(list []Record, key string, value any, payload Record) Record {
	rec := RefInList(list, key, value)
	if rec == nil {
		return nil
	}
	for k, v := range payload {
		rec[k] = v
	}
	return rec
}

// DeleteFromList removes the first record matching key=value. It returns the
// remaining list and whether a record was removed.
func DeleteFromList(list []Record, key string, value any) ([]Record, bool) {
	for i, rec := range list {
		if rec[key] == value {
			return append(list[:i:i], list[i+1:]...), true
		}
	}
	return list, false
}

// HasNameConflict reports whether any record already uses name under
// nameField, for pre-create validation.
func HasNameConflict(list []Record, name string, nameField string) bool {
	return RefInList(list, nameField, name) != nil
}

// NewID generates a new universally unique identifier string.
func NewID() string {
	return uuid.NewString()
}

// NowISO returns the current UTC timestamp in ISO-8601 format with a Z
// suffix, the timestamp format shared across the simulator corpus.
func NowISO() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000000Z07:00")
}
