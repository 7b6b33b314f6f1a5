package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		ChunkSize:    1000,
		ChunkOverlap: 200,
		Separator:    "\n",
	}
}

func TestForFileType_SelectsLoader(t *testing.T) {
	tests := []struct {
		fileType string
		want     interface{}
	}{
		{"pdf", &PDFLoader{}},
		{"application/pdf", &PDFLoader{}},
		{"txt", &TextLoader{}},
		{"text/plain", &TextLoader{}},
		{"TXT", &TextLoader{}},
	}
	for _, tt := range tests {
		l, err := ForFileType(tt.fileType, "somefile", nil, testConfig())
		require.NoError(t, err, tt.fileType)
		assert.IsType(t, tt.want, l, tt.fileType)
	}
}

func TestForFileType_RejectsUnsupportedType(t *testing.T) {
	_, err := ForFileType("docx", "somefile.docx", nil, testConfig())

	require.Error(t, err)
	assert.Equal(t, apperr.KindUnsupportedFileType, apperr.KindOf(err))
}

func TestTextLoader_AttachesMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.txt")
	content := "page one line a\npage one line b\fpage two line a"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	l := NewTextLoader(path, map[string]string{"category": "policy"}, testConfig())
	chunks, err := l.Load()
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "page one line a\npage one line b", chunks[0].Text)
	assert.Equal(t, "policy.txt", chunks[0].Metadata[entity.MetaFileName])
	assert.Equal(t, "1", chunks[0].Metadata[entity.MetaPageNo])
	assert.Equal(t, "2", chunks[0].Metadata[entity.MetaTotalPages])
	assert.Equal(t, "policy", chunks[0].Metadata["category"])

	assert.Equal(t, "2", chunks[1].Metadata[entity.MetaPageNo])
}

func TestTextLoader_ReservedKeysWinOverCallerMetadata(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0644))

	caller := map[string]string{
		entity.MetaFileName: "spoofed.pdf",
		"owner":             "alice",
	}
	l := NewTextLoader(path, caller, testConfig())
	chunks, err := l.Load()
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	assert.Equal(t, "notes.txt", chunks[0].Metadata[entity.MetaFileName])
	assert.Equal(t, "alice", chunks[0].Metadata["owner"])
}

func TestTextLoader_MissingFileIsLoadError(t *testing.T) {
	l := NewTextLoader("/does/not/exist.txt", nil, testConfig())

	_, err := l.Load()

	require.Error(t, err)
	assert.Equal(t, apperr.KindLoad, apperr.KindOf(err))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPDFLoader_CorruptFileIsLoadError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0644))

	l := NewPDFLoader(path, nil, testConfig())
	_, err := l.Load()

	require.Error(t, err)
	assert.Equal(t, apperr.KindLoad, apperr.KindOf(err))
}
