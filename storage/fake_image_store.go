package storage

import (
	"context"
	"io"
	"io/ioutil"
	"sync"
)

// FakeImageStore keeps uploads in memory.
type FakeImageStore struct {
	mu    sync.Mutex
	Files map[string][]byte
}

func NewFakeImageStore() *FakeImageStore {
	return &FakeImageStore{Files: map[string][]byte{}}
}

func (s *FakeImageStore) Upload(ctx context.Context, fileName string, contentType string, body io.Reader) (string, error) {
	data, err := ioutil.ReadAll(body)
	if err != nil {
		return "", err
	}
	url := "https://images.example.com/" + imageKey(fileName)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Files[url] = data
	return url, nil
}
