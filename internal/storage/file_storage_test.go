package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLocalSaver_SaveFile(t *testing.T) {
	dir := t.TempDir()
	saver := NewLocalSaver(dir, zap.NewNop())

	path, err := saver.SaveFile("Invoice_INV-042.pdf", []byte("pdf-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Invoice_INV-042.pdf"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "pdf-bytes", string(content))
}

func TestLocalSaver_SaveFileIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	saver := NewLocalSaver(dir, zap.NewNop())

	_, err := saver.SaveFile("Invoice.pdf", []byte("first"))
	require.NoError(t, err)

	path, err := saver.SaveFile("Invoice.pdf", []byte("first"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestLocalSaver_StripsDirectoryComponents(t *testing.T) {
	dir := t.TempDir()
	saver := NewLocalSaver(dir, zap.NewNop())

	path, err := saver.SaveFile("../escape.pdf", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.pdf"), path)
}
