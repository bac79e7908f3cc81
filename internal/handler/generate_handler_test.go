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
	"github.com/stretchr/testify/require"

	"quizgen/internal/domain"
	"quizgen/internal/handler"
	"quizgen/internal/service"
	"quizgen/mocks"
)

func TestGenerateHandler_Extract_Success(t *testing.T) {
	mockSvc := new(mocks.MockGenerationService)
	h := handler.NewGenerateHandler(new(mocks.MockFileService), mockSvc)

	fileID := uuid.New()
	mockSvc.On("ExtractFromFile", mock.Anything, fileID).
		Return(&domain.ExtractionResult{Text: "Extracted text.", Confidence: domain.ConfidenceHigh}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/"+fileID.String()+"/extract", nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.Extract(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "Extracted text.", data["text"])
	assert.Equal(t, "high", data["confidence"])
}

func TestGenerateHandler_Extract_NoText(t *testing.T) {
	mockSvc := new(mocks.MockGenerationService)
	h := handler.NewGenerateHandler(new(mocks.MockFileService), mockSvc)

	fileID := uuid.New()
	mockSvc.On("ExtractFromFile", mock.Anything, fileID).Return(nil, domain.ErrNoTextExtracted)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/files/"+fileID.String()+"/extract", nil)
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.Extract(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGenerateHandler_GenerateFromFile_Success(t *testing.T) {
	mockSvc := new(mocks.MockGenerationService)
	h := handler.NewGenerateHandler(new(mocks.MockFileService), mockSvc)

	fileID := uuid.New()
	mockSvc.On("GenerateFromFile", mock.Anything, fileID, mock.MatchedBy(func(req service.GenerateRequest) bool {
		return req.TeacherID == "t-1" && req.QType == domain.QTypeMCQ && req.NumQuestions == 5
	})).Return([]domain.Question{{ID: 1}}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/generate/from-file/"+fileID.String(), gin.H{
		"teacher_id":    "t-1",
		"qtype":         "mcq",
		"difficulty":    "medium",
		"num_questions": 5,
	})
	c.Params = gin.Params{{Key: "id", Value: fileID.String()}}

	h.GenerateFromFile(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestGenerateHandler_UploadAndGenerate_Success(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	mockGenSvc := new(mocks.MockGenerationService)
	h := handler.NewGenerateHandler(mockFileSvc, mockGenSvc)

	fileID := uuid.New()
	meta := &domain.FileMeta{ID: fileID, OriginalName: "worksheet.pdf", Status: domain.FileStatusUploaded}
	mockFileSvc.On("Upload", mock.Anything, mock.AnythingOfType("service.FileUploadInput")).
		Return(meta, nil)
	mockGenSvc.On("GenerateFromFile", mock.Anything, fileID, mock.MatchedBy(func(req service.GenerateRequest) bool {
		return req.TeacherID == "t-1" && req.QType == domain.QTypeTrueFalse && req.NumQuestions == 4
	})).Return([]domain.Question{{ID: 1}, {ID: 2}}, nil)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "worksheet.pdf")
	part.Write([]byte("%PDF-1.4 test content"))
	writer.WriteField("teacher_id", "t-1")
	writer.WriteField("qtype", "true_false")
	writer.WriteField("difficulty", "easy")
	writer.WriteField("num_questions", "4")
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/generate/upload-and-generate", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.UploadAndGenerate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockFileSvc.AssertExpectations(t)
	mockGenSvc.AssertExpectations(t)
}

func TestGenerateHandler_UploadAndGenerate_MissingParams(t *testing.T) {
	mockFileSvc := new(mocks.MockFileService)
	mockGenSvc := new(mocks.MockGenerationService)
	h := handler.NewGenerateHandler(mockFileSvc, mockGenSvc)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "worksheet.pdf")
	part.Write([]byte("%PDF-1.4"))
	writer.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/generate/upload-and-generate", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	h.UploadAndGenerate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockFileSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything)
}

func TestGenerateHandler_GenerateFromText_MissingText(t *testing.T) {
	mockSvc := new(mocks.MockGenerationService)
	h := handler.NewGenerateHandler(new(mocks.MockFileService), mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/generate/from-text", gin.H{
		"teacher_id": "t-1",
		"qtype":      "mcq",
		"difficulty": "easy",
	})

	h.GenerateFromText(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "GenerateFromText", mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateHandler_GenerateFromText_GenerationFailed(t *testing.T) {
	mockSvc := new(mocks.MockGenerationService)
	h := handler.NewGenerateHandler(new(mocks.MockFileService), mockSvc)

	mockSvc.On("GenerateFromText", mock.Anything, "Some text.", mock.AnythingOfType("service.GenerateRequest")).
		Return(nil, domain.ErrGenerationFailed)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/api/v1/generate/from-text", gin.H{
		"teacher_id": "t-1",
		"text":       "Some text.",
		"qtype":      "mcq",
		"difficulty": "easy",
	})

	h.GenerateFromText(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
