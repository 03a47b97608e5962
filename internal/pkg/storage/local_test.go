package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadOpen(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost:8080/files/")
	require.NoError(t, err)
	ctx := context.Background()

	key, err := s.Upload(ctx, strings.NewReader("a,b\n"), "exports/2025-03/payroll.csv", "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "exports/2025-03/payroll.csv", key)
	assert.Equal(t, "http://localhost:8080/files/exports/2025-03/payroll.csv", s.URL(key))

	ok, err := s.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	f, err := s.Open(ctx, key)
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(body))
}

func TestLocalStorage_Missing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "http://localhost/files")
	require.NoError(t, err)

	_, err = s.Open(context.Background(), "nope.csv")
	assert.ErrorIs(t, err, ErrFileNotFound)

	ok, err := s.Exists(context.Background(), "exports")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocalStorage_TraversalStaysInside(t *testing.T) {
	base := t.TempDir()
	s, err := NewLocalStorage(base, "http://localhost/files")
	require.NoError(t, err)

	key, err := s.Upload(context.Background(), strings.NewReader("x"), "../../etc/passwd", "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "etc/passwd", key)

	_, err = s.Upload(context.Background(), strings.NewReader("x"), "../", "text/plain")
	assert.ErrorIs(t, err, ErrInvalidPath)
}
