package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"quizgen/internal/domain"
	"quizgen/internal/service"
	"quizgen/internal/xlsxexport"
)

// QuestionHandler handles question bank endpoints.
type QuestionHandler struct {
	questionService service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questionService service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

type createQuestionRequest struct {
	TeacherID    string   `json:"teacher_id" binding:"required"`
	QuestionText string   `json:"question_text" binding:"required"`
	AnswerText   string   `json:"answer_text" binding:"required"`
	Choices      []string `json:"choices"`
	Rationale    string   `json:"rationale"`
	QType        string   `json:"qtype" binding:"required"`
	Difficulty   string   `json:"difficulty" binding:"required"`
	ClassID      string   `json:"class_id"`
	Subject      string   `json:"subject"`
}

type updateQuestionRequest struct {
	QuestionText *string  `json:"question_text"`
	AnswerText   *string  `json:"answer_text"`
	Choices      []string `json:"choices"`
	Rationale    *string  `json:"rationale"`
	Difficulty   *string  `json:"difficulty"`
	ClassID      *string  `json:"class_id"`
	Subject      *string  `json:"subject"`
}

// Create handles POST /api/v1/questions
func (h *QuestionHandler) Create(c *gin.Context) {
	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	q := &domain.Question{
		TeacherID:    req.TeacherID,
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		Rationale:    req.Rationale,
		QType:        domain.QType(req.QType),
		Difficulty:   domain.Difficulty(req.Difficulty),
		ClassID:      req.ClassID,
		Subject:      req.Subject,
	}
	if len(req.Choices) > 0 {
		choices, err := encodeChoices(req.Choices)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid choices")
			return
		}
		q.Choices = choices
	}

	if err := h.questionService.Create(c.Request.Context(), q); err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, q)
}

// GetByID handles GET /api/v1/questions/:id
func (h *QuestionHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid question ID")
		return
	}

	q, err := h.questionService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// List handles GET /api/v1/questions
func (h *QuestionHandler) List(c *gin.Context) {
	page, size, offset := paginationParams(c)
	filter := questionFilterFromQuery(c)

	questions, total, err := h.questionService.List(c.Request.Context(), filter, offset, size)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, questions, PagMeta{Total: total, Page: page, Size: size})
}

// ListByTeacher handles GET /api/v1/questions/by-teacher/:teacherId
func (h *QuestionHandler) ListByTeacher(c *gin.Context) {
	teacherID := c.Param("teacherId")
	if teacherID == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "teacher ID is required")
		return
	}

	page, size, offset := paginationParams(c)
	filter := questionFilterFromQuery(c)
	filter.TeacherID = teacherID

	questions, total, err := h.questionService.List(c.Request.Context(), filter, offset, size)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, questions, PagMeta{Total: total, Page: page, Size: size})
}

// Update handles PUT /api/v1/questions/:id
func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid question ID")
		return
	}

	var req updateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	update := domain.QuestionUpdate{
		QuestionText: req.QuestionText,
		AnswerText:   req.AnswerText,
		Choices:      req.Choices,
		Rationale:    req.Rationale,
		ClassID:      req.ClassID,
		Subject:      req.Subject,
	}
	if req.Difficulty != nil {
		d := domain.Difficulty(*req.Difficulty)
		update.Difficulty = &d
	}

	q, err := h.questionService.Update(c.Request.Context(), id, update)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Delete handles DELETE /api/v1/questions/:id
func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid question ID")
		return
	}

	if err := h.questionService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": id})
}

// DeleteByTeacher handles DELETE /api/v1/teachers/:teacherId/questions
func (h *QuestionHandler) DeleteByTeacher(c *gin.Context) {
	teacherID := c.Param("teacherId")
	if teacherID == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "teacher ID is required")
		return
	}

	deleted, err := h.questionService.DeleteByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": deleted})
}

// Export handles GET /api/v1/questions/export
// Streams the filtered question bank as an XLSX workbook.
func (h *QuestionHandler) Export(c *gin.Context) {
	filter := questionFilterFromQuery(c)

	// Export ignores pagination; fetch up to the export cap.
	questions, _, err := h.questionService.List(c.Request.Context(), filter, 0, xlsxexport.MaxRows)
	if err != nil {
		HandleError(c, err)
		return
	}

	buf, err := xlsxexport.Questions(questions)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("questions-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}

func encodeChoices(choices []string) (json.RawMessage, error) {
	return json.Marshal(choices)
}

func questionFilterFromQuery(c *gin.Context) domain.QuestionFilter {
	return domain.QuestionFilter{
		TeacherID:  c.Query("teacher_id"),
		QType:      domain.QType(c.Query("qtype")),
		Difficulty: domain.Difficulty(c.Query("difficulty")),
		Subject:    c.Query("subject"),
		ClassID:    c.Query("class_id"),
	}
}
