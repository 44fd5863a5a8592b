package blob

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStorageUploadAndGet(t *testing.T) {
	s := NewMemoryStorage(0)

	url, err := s.Upload(context.Background(), []byte("%PDF-1.4 resume"), "profiles/abc/resume-1.pdf")
	assert.NoError(t, err)
	assert.Equal(t, "https://blobs.invalid/profiles/abc/resume-1.pdf", url)

	data, ok := s.Get("profiles/abc/resume-1.pdf")
	assert.True(t, ok)
	assert.Equal(t, []byte("%PDF-1.4 resume"), data)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStorageUploadCopiesData(t *testing.T) {
	s := NewMemoryStorage(0)

	payload := []byte("original")
	_, err := s.Upload(context.Background(), payload, "obj")
	assert.NoError(t, err)

	payload[0] = 'X'
	data, ok := s.Get("obj")
	assert.True(t, ok)
	assert.Equal(t, []byte("original"), data, "a caller mutating its buffer must not corrupt the stored blob")
}

func TestMemoryStorageRejectsOversizedUpload(t *testing.T) {
	s := NewMemoryStorage(0)

	big := bytes.Repeat([]byte("a"), int(DefaultMaxBytes)+1)
	_, err := s.Upload(context.Background(), big, "too-big")
	assert.ErrorIs(t, err, ErrFileTooLarge)
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStorageCustomLimit(t *testing.T) {
	s := NewMemoryStorage(4)

	_, err := s.Upload(context.Background(), []byte("1234"), "fits")
	assert.NoError(t, err)

	_, err = s.Upload(context.Background(), []byte("12345"), "over")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestMemoryStorageDelete(t *testing.T) {
	s := NewMemoryStorage(0)

	_, err := s.Upload(context.Background(), []byte("logo"), "profiles/abc/logo-1.png")
	assert.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "profiles/abc/logo-1.png"))
	_, ok := s.Get("profiles/abc/logo-1.png")
	assert.False(t, ok)

	assert.ErrorIs(t, s.Delete(context.Background(), "profiles/abc/logo-1.png"), ErrNotFound)
}
