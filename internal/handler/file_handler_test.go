package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quizgen/internal/domain"
	"quizgen/internal/handler"
	"quizgen/mocks"
)

func TestFileHandler_Upload_Success(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	fileID := uuid.New()
	expectedMeta := &domain.FileMeta{
		ID:           fileID,
		UploadedBy:   "teacher-1",
		FileName:     fileID.String() + ".pdf",
		OriginalName: "worksheet.pdf",
		FileType:     domain.FileTypePDF,
		Status:       domain.FileStatusUploaded,
	}

	mockFileSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.FileUploadInput")).
		Return(expectedMeta, nil)

	// Create multipart form body
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "worksheet.pdf")
	part.Write([]byte("%PDF-1.4 test content"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Upload(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.True(t, resp.Success)
	mockFileSvc.AssertExpectations(t)
}

func TestFileHandler_Upload_NoFile(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/upload", nil)

	h.Upload(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_Upload_TooLarge(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	mockFileSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.FileUploadInput")).
		Return(nil, domain.ErrFileTooLarge)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "huge.pdf")
	part.Write([]byte("%PDF-1.4"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/upload", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.Upload(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestFileHandler_GetByID_InvalidID(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/files/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFileHandler_GetByID_NotFound(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	fileID := uuid.New()
	mockFileSvc.On("GetByID", mock.Anything, fileID).Return(nil, domain.ErrFileNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/files/"+fileID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFileHandler_List(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	h := handler.NewFileHandler(mockFileSvc)

	files := []domain.FileMeta{{ID: uuid.New(), OriginalName: "a.pdf"}}
	mockFileSvc.On("List", mock.Anything, 0, 10).Return(files, 1, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/files", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err)
	assert.NotNil(t, resp.Meta)
	assert.Equal(t, 1, resp.Meta.Total)
}
