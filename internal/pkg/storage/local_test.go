package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads/")
	require.NoError(t, err)
	return s
}

func TestLocalStorage_UploadDownloadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	ref, err := s.Upload(ctx, strings.NewReader("jpeg-bytes"), "attendance/2025-08-31/t1-check_in-1.jpg", "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "attendance/2025-08-31/t1-check_in-1.jpg", ref)

	rc, err := s.Download(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))

	exists, err := s.Exists(ctx, ref)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestLocalStorage_PublicURL(t *testing.T) {
	s := newTestStorage(t)
	url := s.PublicURL("attendance/2025-08-31/t1-check_in-1.jpg")
	assert.Equal(t, "http://localhost:8080/uploads/attendance/2025-08-31/t1-check_in-1.jpg", url)
}

func TestLocalStorage_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	ref, err := s.Upload(ctx, strings.NewReader("x"), "attendance/2025-08-31/t1-check_out-2.jpg", "image/jpeg")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, ref))
	exists, err := s.Exists(ctx, ref)
	require.NoError(t, err)
	assert.False(t, exists)

	// Second delete of the same reference is a no-op.
	require.NoError(t, s.Delete(ctx, ref))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	_, err := s.Upload(ctx, strings.NewReader("x"), "../outside.jpg", "image/jpeg")
	assert.Error(t, err)
}
