package controller

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"knowledgegpt-be/internal/dto"
	"knowledgegpt-be/internal/pkg/apperr"
	"knowledgegpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IIngestController interface {
	RegisterRoutes(r fiber.Router)
	Ingest(ctx *fiber.Ctx) error
}

type ingestController struct {
	ingestionService service.IIngestionService
	uploadDir        string
}

func NewIngestController(ingestionService service.IIngestionService, uploadDir string) IIngestController {
	return &ingestController{
		ingestionService: ingestionService,
		uploadDir:        uploadDir,
	}
}

func (c *ingestController) RegisterRoutes(r fiber.Router) {
	r.Post("/ingest", c.Ingest)
}

// Ingest accepts a multipart upload plus an optional "metadata" form field
// holding a JSON object of string values. The upload is staged under the
// upload dir for the duration of the request and always removed afterwards.
func (c *ingestController) Ingest(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperr.New(apperr.KindBadRequest, "multipart field \"file\" is required")
	}

	metadata, err := parseMetadataField(ctx.FormValue("metadata"))
	if err != nil {
		return err
	}

	fileType := ctx.FormValue("file_type")
	if fileType == "" {
		fileType = strings.TrimPrefix(filepath.Ext(fileHeader.Filename), ".")
	}

	// Staged under its original name; the ingestion pipeline records the
	// base name as the file_name metadata of every chunk.
	stagedDir := filepath.Join(c.uploadDir, uuid.NewString())
	if err := os.MkdirAll(stagedDir, 0o755); err != nil {
		return apperr.Wrap(apperr.KindIngestion, "prepare upload dir", err)
	}
	defer os.RemoveAll(stagedDir)

	stagedPath := filepath.Join(stagedDir, filepath.Base(fileHeader.Filename))
	if err := ctx.SaveFile(fileHeader, stagedPath); err != nil {
		return apperr.Wrap(apperr.KindIngestion, "stage uploaded file", err)
	}

	result, err := c.ingestionService.Ingest(ctx.Context(), stagedPath, metadata, fileType)
	if err != nil {
		return err
	}

	return ctx.JSON(dto.IngestResponse{
		Message:  "File ingested successfully",
		Metadata: metadata,
		FileType: fileType,
		FileUploadInfo: dto.FileUploadInfo{
			FileName:  result.FileName,
			SizeBytes: fileHeader.Size,
		},
	})
}

func parseMetadataField(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var metadata map[string]string
	if err := json.Unmarshal([]byte(raw), &metadata); err != nil {
		return nil, apperr.New(apperr.KindBadRequest, "metadata must be a JSON object of string values")
	}
	return metadata, nil
}
