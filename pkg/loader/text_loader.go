package loader

import (
	"os"
	"strings"

	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/pkg/apperr"
)

// TextLoader reads a plain-text file as one logical document and divides it
// into page-like units at the configured page separator.
type TextLoader struct {
	filePath string
	metadata map[string]string
	cfg      Config
}

func NewTextLoader(filePath string, metadata map[string]string, cfg Config) *TextLoader {
	if cfg.PageSeparator == "" {
		cfg.PageSeparator = "\f"
	}
	return &TextLoader{
		filePath: filePath,
		metadata: metadata,
		cfg:      cfg,
	}
}

var _ Loader = (*TextLoader)(nil)

func (l *TextLoader) Load() ([]*entity.Chunk, error) {
	raw, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindLoad, "read text file", err)
	}

	pages := strings.Split(string(raw), l.cfg.PageSeparator)
	fileName := baseName(l.filePath)

	var chunks []*entity.Chunk
	for i, page := range pages {
		chunks = append(chunks, buildChunks(page, i+1, len(pages), fileName, l.metadata, l.cfg)...)
	}
	return chunks, nil
}
