package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"knowledgegpt-be/internal/dto"
	"knowledgegpt-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubQnAService struct {
	response *dto.QueryResponse
}

func (s *stubQnAService) AskQuestion(ctx context.Context, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	return s.response, nil
}

func (s *stubQnAService) ClearHistory(ctx context.Context, sessionId string, allSessions bool) error {
	return nil
}

func newQueryTestApp(svc *stubQnAService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewQueryController(svc).RegisterRoutes(app)
	return app
}

func TestAskMalformedBodyIsBadRequest(t *testing.T) {
	app := newQueryTestApp(&stubQnAService{})

	req := httptest.NewRequest("POST", "/query", strings.NewReader(`{"query": `))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "BAD_REQUEST", payload["error"])
}

func TestAskMissingRequiredFieldsIsBadRequest(t *testing.T) {
	app := newQueryTestApp(&stubQnAService{})

	req := httptest.NewRequest("POST", "/query", strings.NewReader(`{"query": "hi"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAskReturnsServiceResponse(t *testing.T) {
	app := newQueryTestApp(&stubQnAService{
		response: &dto.QueryResponse{
			Query:           "hi",
			Response:        "hello",
			SourceDocuments: []dto.SourceDocument{},
		},
	})

	req := httptest.NewRequest("POST", "/query", strings.NewReader(`{"query": "hi", "session_id": "s1"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload dto.QueryResponse
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Equal(t, "hello", payload.Response)
}
