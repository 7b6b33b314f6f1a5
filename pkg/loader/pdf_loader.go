package loader

import (
	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/pkg/apperr"

	"github.com/ledongthuc/pdf"
)

// PDFLoader extracts text page by page; every page becomes one unit of
// chunking with a 1-based page_no.
type PDFLoader struct {
	filePath string
	metadata map[string]string
	cfg      Config
}

func NewPDFLoader(filePath string, metadata map[string]string, cfg Config) *PDFLoader {
	return &PDFLoader{
		filePath: filePath,
		metadata: metadata,
		cfg:      cfg,
	}
}

var _ Loader = (*PDFLoader)(nil)

func (l *PDFLoader) Load() ([]*entity.Chunk, error) {
	f, reader, err := pdf.Open(l.filePath)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindLoad, "open pdf", err)
	}
	defer f.Close()

	totalPages := reader.NumPage()
	fileName := baseName(l.filePath)

	var chunks []*entity.Chunk
	for pageNo := 1; pageNo <= totalPages; pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, apperr.Wrap(apperr.KindLoad, "extract pdf page text", err)
		}
		chunks = append(chunks, buildChunks(text, pageNo, totalPages, fileName, l.metadata, l.cfg)...)
	}
	return chunks, nil
}
