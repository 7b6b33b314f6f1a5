package service

import (
	"context"
	"errors"
	"time"

	"knowledgegpt-be/internal/dto"
	"knowledgegpt-be/internal/entity"
	"knowledgegpt-be/internal/pkg/apperr"
	"knowledgegpt-be/internal/pkg/logger"
	"knowledgegpt-be/internal/repository/contract"
	"knowledgegpt-be/pkg/embedding"
	"knowledgegpt-be/pkg/events"
	"knowledgegpt-be/pkg/loader"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const filesListCacheKey = "files_list"

type IIngestionService interface {
	Ingest(ctx context.Context, filePath string, metadata map[string]string, fileType string) (*dto.IngestResult, error)
	Delete(ctx context.Context, filter map[string]string) (*dto.DeleteFilesResponse, error)
	List(ctx context.Context) ([]dto.FileRecordResponse, error)
}

type ingestionService struct {
	vectorRepo contract.VectorRepository
	fileRepo   contract.FileRecordRepository
	embedder   embedding.Provider
	publisher  *events.Publisher
	loaderCfg  loader.Config
	listCache  *gocache.Cache
	log        logger.ILogger
}

func NewIngestionService(
	vectorRepo contract.VectorRepository,
	fileRepo contract.FileRecordRepository,
	embedder embedding.Provider,
	publisher *events.Publisher,
	loaderCfg loader.Config,
	log logger.ILogger,
) IIngestionService {
	return &ingestionService{
		vectorRepo: vectorRepo,
		fileRepo:   fileRepo,
		embedder:   embedder,
		publisher:  publisher,
		loaderCfg:  loaderCfg,
		listCache:  gocache.New(30*time.Second, 5*time.Minute),
		log:        log,
	}
}

// Ingest loads the file, derives one FileRecord, embeds all chunks and
// persists everything. The FileRecord insert and the vector insert are not
// transactional with respect to each other; on a vector-insert failure the
// just-created FileRecord is removed again as a compensating write.
func (s *ingestionService) Ingest(ctx context.Context, filePath string, metadata map[string]string, fileType string) (*dto.IngestResult, error) {
	l, err := loader.ForFileType(fileType, filePath, metadata, s.loaderCfg)
	if err != nil {
		return nil, err // already classified (UnsupportedFileType)
	}

	chunks, err := l.Load()
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindLoad, "load document", err)
	}
	if len(chunks) == 0 {
		return nil, apperr.New(apperr.KindLoad, "document produced no text chunks")
	}

	fileName := chunks[0].FileName()
	record := &entity.FileRecord{
		Id:        uuid.New(),
		FileName:  fileName,
		Metadata:  metadata,
		DateAdded: time.Now(),
	}
	if err := s.fileRepo.Create(ctx, record); err != nil {
		return nil, apperr.Wrap(apperr.KindIngestion, "insert file record", err)
	}

	embedded, err := s.embedChunks(ctx, chunks)
	if err == nil {
		err = s.vectorRepo.AddBulk(ctx, embedded)
	}
	if err != nil {
		// Compensate so a half-ingested file does not show up in listings.
		// Keyed by the new record's id: earlier ingestions of the same file
		// name must survive.
		if delErr := s.fileRepo.DeleteById(ctx, record.Id); delErr != nil {
			s.log.Error("ingestion", "failed to roll back file record", map[string]interface{}{
				"file_name": fileName,
				"error":     delErr.Error(),
			})
		}
		return nil, apperr.Wrap(apperr.KindIngestion, "persist chunks", err)
	}

	s.listCache.Delete(filesListCacheKey)
	if err := s.publisher.Publish(events.NewFileIngested(fileName, len(chunks))); err != nil {
		s.log.Warn("ingestion", "audit publish failed", map[string]interface{}{"error": err.Error()})
	}

	s.log.Info("ingestion", "file ingested", map[string]interface{}{
		"file_name": fileName,
		"chunks":    len(chunks),
	})

	return &dto.IngestResult{
		FileName:     fileName,
		ChunksStored: len(chunks),
		FileRecordId: record.Id.String(),
	}, nil
}

func (s *ingestionService) embedChunks(ctx context.Context, chunks []*entity.Chunk) ([]*entity.EmbeddedChunk, error) {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := s.embedder.Embed(ctx, texts, embedding.InputTypeDocument)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(chunks) {
		return nil, errors.New("embedding count does not match chunk count")
	}

	embedded := make([]*entity.EmbeddedChunk, len(chunks))
	for i, c := range chunks {
		if c.Id == uuid.Nil {
			c.Id = uuid.New()
		}
		embedded[i] = &entity.EmbeddedChunk{Chunk: c, Embedding: vectors[i]}
	}
	return embedded, nil
}

// Delete removes every chunk matching the filter plus the corresponding
// FileRecords. An empty filter is rejected outright; deleting everything
// must never happen by omission.
func (s *ingestionService) Delete(ctx context.Context, filter map[string]string) (*dto.DeleteFilesResponse, error) {
	if len(filter) == 0 {
		return nil, apperr.InvalidFilter("delete filter must contain at least one key")
	}
	for k := range filter {
		if k == "" {
			return nil, apperr.InvalidFilter("delete filter contains an empty key")
		}
	}

	deleted, err := s.vectorRepo.DeleteByFilter(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindIngestion, "delete chunks", err)
	}
	if _, err := s.fileRepo.DeleteByFilter(ctx, filter); err != nil {
		return nil, apperr.Wrap(apperr.KindIngestion, "delete file records", err)
	}

	s.listCache.Delete(filesListCacheKey)
	if err := s.publisher.Publish(events.NewFilesDeleted(filter, deleted)); err != nil {
		s.log.Warn("ingestion", "audit publish failed", map[string]interface{}{"error": err.Error()})
	}

	return &dto.DeleteFilesResponse{
		DeletedCount: deleted,
		Acknowledged: true,
	}, nil
}

// List returns all FileRecords with storage identifiers rendered as plain
// strings. Results are cached briefly; ingest/delete invalidate the cache.
func (s *ingestionService) List(ctx context.Context) ([]dto.FileRecordResponse, error) {
	if cached, found := s.listCache.Get(filesListCacheKey); found {
		return cached.([]dto.FileRecordResponse), nil
	}

	records, err := s.fileRepo.FindAll(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindIngestion, "list file records", err)
	}

	out := make([]dto.FileRecordResponse, len(records))
	for i, r := range records {
		out[i] = dto.FileRecordResponse{
			Id:        r.Id.String(),
			FileName:  r.FileName,
			Metadata:  r.Metadata,
			DateAdded: r.DateAdded,
		}
	}

	s.listCache.Set(filesListCacheKey, out, gocache.DefaultExpiration)
	return out, nil
}
