// Copyright 2026 The sbomvet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bolt provides a bbolt-backed run store. bbolt serializes update
// transactions, which gives Reserve its atomic check-and-reserve semantics
// across goroutines and processes sharing the database file.
package bolt

import (
	"encoding/json"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/sbomvet/sbomvet/runstore"
)

var runsBucket = []byte("runs")

// Store persists run records in a bbolt database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening run store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing run store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Reserve implements runstore.Store.
func (s *Store) Reserve(rec *runstore.Record) (bool, error) {
	reserved := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(runsBucket)
		key := []byte(rec.Fingerprint.Key())
		if bucket.Get(key) != nil {
			return nil
		}
		encoded, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if err := bucket.Put(key, encoded); err != nil {
			return err
		}
		reserved = true
		return nil
	})
	return reserved, err
}

// Update implements runstore.Store.
func (s *Store) Update(rec *runstore.Record) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		encoded, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return tx.Bucket(runsBucket).Put([]byte(rec.Fingerprint.Key()), encoded)
	})
}

// Get implements runstore.Store.
func (s *Store) Get(fp runstore.Fingerprint) (*runstore.Record, bool, error) {
	var rec *runstore.Record
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(runsBucket).Get([]byte(fp.Key()))
		if raw == nil {
			return nil
		}
		decoded := runstore.Record{}
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return err
		}
		rec = &decoded
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rec, rec != nil, nil
}

// Delete implements runstore.Store.
func (s *Store) Delete(fp runstore.Fingerprint) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).Delete([]byte(fp.Key()))
	})
}
