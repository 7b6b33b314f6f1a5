package loader

import (
	"path/filepath"
	"strconv"
	"strings"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/pkg/apperr"
	"knowledgegpt-be/pkg/splitter"
)

// Config carries the chunking parameters shared by all loaders.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	// Separator is the boundary the splitter packs at within a page.
	Separator string
	// PageSeparator divides a plain-text document into page-like units.
	PageSeparator string
}

// Loader turns one source file into a sequence of normalized chunks with
// provenance metadata attached.
type Loader interface {
	Load() ([]*entity.Chunk, error)
}

// FileType values accepted by ForFileType.
const (
	FileTypePDF  = "pdf"
	FileTypeText = "txt"
)

// ForFileType selects the loader for fileType. Adding a file type means
// adding one case here; callers never switch on types themselves.
// Unsupported types fail before any file I/O happens.
func ForFileType(fileType string, filePath string, metadata map[string]string, cfg Config) (Loader, error) {
	switch normalizeFileType(fileType) {
	case FileTypePDF:
		return NewPDFLoader(filePath, metadata, cfg), nil
	case FileTypeText:
		return NewTextLoader(filePath, metadata, cfg), nil
	default:
		return nil, apperr.UnsupportedFileType(fileType)
	}
}

func normalizeFileType(fileType string) string {
	switch strings.ToLower(strings.TrimSpace(fileType)) {
	case "pdf", "application/pdf", ".pdf":
		return FileTypePDF
	case "txt", "text", "text/plain", ".txt":
		return FileTypeText
	default:
		return ""
	}
}

// buildChunks splits one page unit and attaches metadata to every chunk.
// Reserved keys always win over caller-supplied ones so the file_name join
// key can never be spoofed by request metadata.
func buildChunks(pageText string, pageNo, totalPages int, fileName string, callerMeta map[string]string, cfg Config) []*entity.Chunk {
	pieces := splitter.Split(pageText, cfg.ChunkSize, cfg.ChunkOverlap, cfg.Separator)

	chunks := make([]*entity.Chunk, 0, len(pieces))
	for _, piece := range pieces {
		meta := make(map[string]string, len(callerMeta)+3)
		for k, v := range callerMeta {
			meta[k] = v
		}
		meta[entity.MetaFileName] = fileName
		meta[entity.MetaPageNo] = strconv.Itoa(pageNo)
		meta[entity.MetaTotalPages] = strconv.Itoa(totalPages)

		chunks = append(chunks, &entity.Chunk{
			Text:     piece,
			Metadata: meta,
		})
	}
	return chunks
}

func baseName(filePath string) string {
	return filepath.Base(filePath)
}
