package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"quizgen/internal/domain"
	"quizgen/internal/service"
)

// GenerateHandler handles extraction and question generation endpoints.
type GenerateHandler struct {
	fileService       service.FileService
	generationService service.GenerationService
}

// NewGenerateHandler creates a new GenerateHandler.
func NewGenerateHandler(fileService service.FileService, generationService service.GenerationService) *GenerateHandler {
	return &GenerateHandler{fileService: fileService, generationService: generationService}
}

type generateRequest struct {
	TeacherID    string `json:"teacher_id" binding:"required"`
	Text         string `json:"text"`
	QType        string `json:"qtype" binding:"required"`
	Difficulty   string `json:"difficulty" binding:"required"`
	NumQuestions int    `json:"num_questions"`
	ClassID      string `json:"class_id"`
	Subject      string `json:"subject"`
	Description  string `json:"description"`
}

func (r generateRequest) toServiceRequest() service.GenerateRequest {
	return service.GenerateRequest{
		TeacherID:    r.TeacherID,
		QType:        domain.QType(r.QType),
		Difficulty:   domain.Difficulty(r.Difficulty),
		NumQuestions: r.NumQuestions,
		ClassID:      r.ClassID,
		Subject:      r.Subject,
		Description:  r.Description,
	}
}

func generateRequestFromForm(c *gin.Context) service.GenerateRequest {
	numQuestions, _ := strconv.Atoi(c.PostForm("num_questions"))
	return service.GenerateRequest{
		TeacherID:    c.PostForm("teacher_id"),
		QType:        domain.QType(c.PostForm("qtype")),
		Difficulty:   domain.Difficulty(c.PostForm("difficulty")),
		NumQuestions: numQuestions,
		ClassID:      c.PostForm("class_id"),
		Subject:      c.PostForm("subject"),
		Description:  c.PostForm("description"),
	}
}

// Extract handles POST /api/v1/files/:id/extract
func (h *GenerateHandler) Extract(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	result, err := h.generationService.ExtractFromFile(c.Request.Context(), fileID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// GenerateFromFile handles POST /api/v1/generate/from-file/:id
func (h *GenerateHandler) GenerateFromFile(c *gin.Context) {
	fileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid file ID")
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	questions, err := h.generationService.GenerateFromFile(c.Request.Context(), fileID, req.toServiceRequest())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, questions)
}

// UploadAndGenerate handles POST /api/v1/generate/upload-and-generate
// Accepts a multipart document plus generation parameters, stores the file,
// then extracts and generates in one request.
func (h *GenerateHandler) UploadAndGenerate(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	req := generateRequestFromForm(c)
	if req.TeacherID == "" || req.QType == "" || req.Difficulty == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "teacher_id, qtype, and difficulty are required")
		return
	}

	meta, err := h.fileService.Upload(c.Request.Context(), service.FileUploadInput{
		UploadedBy: req.TeacherID,
		File:       file,
		Header:     header,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	questions, err := h.generationService.GenerateFromFile(c.Request.Context(), meta.ID, req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, gin.H{"file": meta, "questions": questions})
}

// GenerateFromText handles POST /api/v1/generate/from-text
func (h *GenerateHandler) GenerateFromText(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}
	if req.Text == "" {
		RespondError(c, http.StatusBadRequest, "MISSING_TEXT", "text field is required")
		return
	}

	questions, err := h.generationService.GenerateFromText(c.Request.Context(), req.Text, req.toServiceRequest())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, questions)
}
