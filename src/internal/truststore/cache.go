// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package truststore

import (
	"os"
	"path/filepath"
	"time"
)

// CacheFileName is the fixed name of the persisted bundle slot inside the
// cache directory. The slot holds the raw body of the last successful fetch.
const CacheFileName = "rp-certificates-cache.pem"

// CacheStore persists one opaque byte blob at a fixed path inside an
// app-private directory. It is the durable fallback source when a live
// fetch yields no usable data.
//
// The slot is only ever replaced whole. It is never deleted by this
// component and carries no TTL; staleness is reported, not enforced.
type CacheStore struct {
	dir string
}

// NewCacheStore creates a cache store rooted at dir, creating the directory
// if it does not exist.
func NewCacheStore(dir string) (*CacheStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &CacheStore{dir: dir}, nil
}

// Path returns the full path of the cache slot.
func (s *CacheStore) Path() string { return filepath.Join(s.dir, CacheFileName) }

// Exists reports whether the cache slot has been written before.
func (s *CacheStore) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

// LastModified returns the time the cache slot was last written.
func (s *CacheStore) LastModified() (time.Time, error) {
	info, err := os.Stat(s.Path())
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Read returns the whole content of the cache slot.
func (s *CacheStore) Read() ([]byte, error) {
	return os.ReadFile(s.Path())
}

// Write replaces the cache slot with data as a whole value.
//
// The data is staged in a temp file in the same directory and renamed into
// place, so a reader never observes a partially written slot.
func (s *CacheStore) Write(data []byte) error {
	tmp, err := os.CreateTemp(s.dir, CacheFileName+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.Path())
}
