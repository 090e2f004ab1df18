// Package storagetest provides an in-memory storage.ObjectStore with failure
// injection for tests of the packages built on top of it.
package storagetest

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophdrive/internal/storage"
)

// PresignCall records one PresignGet invocation.
type PresignCall struct {
	Key string
	TTL time.Duration
}

// Memory is a concurrency-safe in-memory object store. Presigned URLs are
// deterministic: "https://store.test/<key>?ttl=<seconds>".
type Memory struct {
	mu      sync.Mutex
	objects map[string]storage.ObjectInfo
	data    map[string][]byte

	// Now stamps LastModified on Put. Defaults to time.Now.
	Now func() time.Time

	// Failure injection. A nil hook means success.
	ListErr    error
	DeleteErr  error
	PutErr     func(key string) error
	PresignErr func(key string) error

	// BeforeList runs at the start of every List, outside the lock.
	BeforeList func()

	puts     []string
	presigns []PresignCall
	deletes  []string
}

var _ storage.ObjectStore = (*Memory)(nil)

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]storage.ObjectInfo),
		data:    make(map[string][]byte),
		Now:     time.Now,
	}
}

// Seed stores an object directly, bypassing hooks and call recording.
func (m *Memory) Seed(key string, body []byte, modified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = storage.ObjectInfo{Key: key, Size: int64(len(body)), LastModified: modified}
	m.data[key] = body
}

func (m *Memory) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string, onProgress func(sent int64)) (string, error) {
	m.mu.Lock()
	m.puts = append(m.puts, key)
	hook := m.PutErr
	m.mu.Unlock()

	var buf []byte
	chunk := make([]byte, 4)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := body.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
			if onProgress != nil {
				onProgress(int64(len(buf)))
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
	}

	if hook != nil {
		if err := hook(key); err != nil {
			return "", err
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = storage.ObjectInfo{Key: key, Size: int64(len(buf)), LastModified: m.Now().UTC()}
	m.data[key] = buf
	return "memory://" + key, nil
}

func (m *Memory) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	m.mu.Lock()
	m.presigns = append(m.presigns, PresignCall{Key: key, TTL: ttl})
	hook := m.PresignErr
	m.mu.Unlock()

	if hook != nil {
		if err := hook(key); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("https://store.test/%s?ttl=%d", url.PathEscape(key), int64(ttl.Seconds())), nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]storage.ObjectInfo, error) {
	if m.BeforeList != nil {
		m.BeforeList()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ListErr != nil {
		return nil, m.ListErr
	}

	out := make([]storage.ObjectInfo, 0, len(m.objects))
	for k, o := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.deletes = append(m.deletes, key)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.objects, key)
	delete(m.data, key)
	return nil
}

// Keys returns the stored keys in order.
func (m *Memory) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Data returns the body stored under key.
func (m *Memory) Data(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok
}

// Puts returns the keys passed to Put, in call order, including failures.
func (m *Memory) Puts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.puts...)
}

// Presigns returns every PresignGet call in order.
func (m *Memory) Presigns() []PresignCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PresignCall(nil), m.presigns...)
}

// Deletes returns the keys passed to Delete, in call order.
func (m *Memory) Deletes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.deletes...)
}
