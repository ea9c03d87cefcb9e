package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/tasaheel/leads-api/internal/handlers"
	"github.com/tasaheel/leads-api/internal/models"
	apperrors "github.com/tasaheel/leads-api/pkg/errors"
	"github.com/tasaheel/leads-api/pkg/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := logger.Initialize(logger.Config{Level: "error", Environment: "development"}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// MockLeadProcessor implements handlers.LeadProcessor for testing
type MockLeadProcessor struct {
	mock.Mock
}

func (m *MockLeadProcessor) ProcessLead(ctx context.Context, sub *models.LeadSubmission) (*models.SendLeadResponse, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SendLeadResponse), args.Error(1)
}

func newRouter(processor handlers.LeadProcessor, uploadDir string, maxFiles int) *gin.Engine {
	handler := handlers.NewLeadHandler(processor, uploadDir, maxFiles)
	router := gin.New()
	router.POST("/api/v1/send-lead", handler.SendLead)
	return router
}

type formFile struct {
	field    string
	fileName string
	content  string
}

func multipartBody(t *testing.T, fields [][2]string, files []formFile) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for _, f := range fields {
		assert.NoError(t, writer.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.fileName)
		assert.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		assert.NoError(t, err)
	}
	assert.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestLeadHandler_SendLead_Success(t *testing.T) {
	uploadDir := t.TempDir()
	processor := new(MockLeadProcessor)
	router := newRouter(processor, uploadDir, 100)

	body, contentType := multipartBody(t,
		[][2]string{
			{"source", models.SourceRecruitment},
			{"clientName", "Ali"},
			{"whatsappNumber", "0500000000"},
		},
		[]formFile{
			{field: "passportImage", fileName: "passport.jpg", content: "jpeg bytes"},
		},
	)

	var captured *models.LeadSubmission
	processor.On("ProcessLead", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*models.LeadSubmission)
		}).
		Return(&models.SendLeadResponse{Success: true, Message: "Processed successfully"}, nil).Once()

	req := httptest.NewRequest("POST", "/api/v1/send-lead", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.SendLeadResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Processed successfully", resp.Message)

	// Parsed fields keep their receipt order.
	assert.Equal(t, models.SourceRecruitment, captured.Source)
	assert.Equal(t, []string{"source", "clientName", "whatsappNumber"}, captured.FieldOrder)
	assert.Equal(t, "Ali", captured.Fields["clientName"])

	// The file was streamed into the upload dir under a generated name.
	atts := captured.Attachments[models.CategoryPassportImage]
	assert.Len(t, atts, 1)
	assert.Equal(t, "passport.jpg", atts[0].FileName)
	assert.Equal(t, int64(len("jpeg bytes")), atts[0].Size)
	assert.Equal(t, uploadDir, filepath.Dir(atts[0].Path))
	assert.NotContains(t, atts[0].Path, "passport")

	saved, err := os.ReadFile(atts[0].Path)
	assert.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(saved))

	processor.AssertExpectations(t)
}

func TestLeadHandler_SendLead_MissingSource(t *testing.T) {
	processor := new(MockLeadProcessor)
	router := newRouter(processor, t.TempDir(), 100)

	processor.On("ProcessLead", mock.Anything, mock.Anything).
		Return(nil, apperrors.InvalidInputError("source", "missing")).Once()

	body, contentType := multipartBody(t, [][2]string{{"clientName", "Ali"}}, nil)
	req := httptest.NewRequest("POST", "/api/v1/send-lead", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Equal(t, "Missing source field", resp["message"])
}

func TestLeadHandler_SendLead_NotificationFailure(t *testing.T) {
	processor := new(MockLeadProcessor)
	router := newRouter(processor, t.TempDir(), 100)

	processor.On("ProcessLead", mock.Anything, mock.Anything).
		Return(nil, apperrors.NotificationError(assert.AnError)).Once()

	body, contentType := multipartBody(t, [][2]string{{"source", "x"}}, nil)
	req := httptest.NewRequest("POST", "/api/v1/send-lead", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["success"])
	assert.Contains(t, resp["error"], "notification failed")
}

func TestLeadHandler_SendLead_NotMultipart(t *testing.T) {
	processor := new(MockLeadProcessor)
	router := newRouter(processor, t.TempDir(), 100)

	req := httptest.NewRequest("POST", "/api/v1/send-lead", strings.NewReader(`{"source":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	processor.AssertNotCalled(t, "ProcessLead", mock.Anything, mock.Anything)
}

func TestLeadHandler_SendLead_TooManyFiles(t *testing.T) {
	uploadDir := t.TempDir()
	processor := new(MockLeadProcessor)
	router := newRouter(processor, uploadDir, 1)

	body, contentType := multipartBody(t,
		[][2]string{{"source", models.SourceRecruitment}},
		[]formFile{
			{field: "passportImage", fileName: "one.jpg", content: "1"},
			{field: "passportImage", fileName: "two.jpg", content: "2"},
		},
	)

	req := httptest.NewRequest("POST", "/api/v1/send-lead", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	processor.AssertNotCalled(t, "ProcessLead", mock.Anything, mock.Anything)

	// Whatever was saved before the limit hit is cleaned up again.
	entries, err := os.ReadDir(uploadDir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLeadHandler_SendLead_UnknownFileFieldDropped(t *testing.T) {
	uploadDir := t.TempDir()
	processor := new(MockLeadProcessor)
	router := newRouter(processor, uploadDir, 100)

	var captured *models.LeadSubmission
	processor.On("ProcessLead", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(*models.LeadSubmission)
		}).
		Return(&models.SendLeadResponse{Success: true}, nil).Once()

	body, contentType := multipartBody(t,
		[][2]string{{"source", "x"}},
		[]formFile{
			{field: "resume", fileName: "cv.pdf", content: "pdf"},
		},
	)

	req := httptest.NewRequest("POST", "/api/v1/send-lead", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, captured.Attachments)

	entries, err := os.ReadDir(uploadDir)
	assert.NoError(t, err)
	assert.Empty(t, entries)
}
