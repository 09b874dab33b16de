package api

import (
	"MCQ-Generator-Backend/internal/model"
	"MCQ-Generator-Backend/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	pdfFileName       = "MCQs.pdf"
	emptyParagraphMsg = "Paragraph cannot be empty"
)

type MCQGenerator interface {
	Generate(paragraph string, numQuestions int) ([]model.MCQ, error)
}

type PDFRenderer interface {
	Render(mcqs []model.MCQ) ([]byte, error)
}

type MCQHandler struct {
	generator           MCQGenerator
	renderer            PDFRenderer
	defaultNumQuestions int
	logger              *logrus.Logger
}

func NewMCQHandler(generator MCQGenerator, renderer PDFRenderer, defaultNumQuestions int, logger *logrus.Logger) *MCQHandler {
	return &MCQHandler{
		generator:           generator,
		renderer:            renderer,
		defaultNumQuestions: defaultNumQuestions,
		logger:              logger,
	}
}

func (h *MCQHandler) GenerateMCQsHandler(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.GenerateErrorResponse{
			Error: "Invalid request: " + err.Error(),
			MCQs:  []model.MCQ{},
		})
		return
	}

	numQuestions := h.defaultNumQuestions
	if req.NumQuestions != nil {
		numQuestions = *req.NumQuestions
	}

	mcqs, err := h.generator.Generate(req.Paragraph, numQuestions)
	if err != nil {
		if errors.Is(err, service.ErrEmptyParagraph) {
			c.JSON(http.StatusBadRequest, model.GenerateErrorResponse{
				Error: emptyParagraphMsg,
				MCQs:  []model.MCQ{},
			})
			return
		}
		h.logger.WithError(err).WithField("request_id", c.GetString(RequestIDKey)).Error("生成 MCQ 失败")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "Failed to generate MCQs",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, model.GenerateResponse{MCQs: mcqs})
}

func (h *MCQHandler) DownloadPDFHandler(c *gin.Context) {
	var req model.PDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request: " + err.Error()})
		return
	}

	out, err := h.renderer.Render(req.MCQs)
	if err != nil {
		h.logger.WithError(err).WithField("request_id", c.GetString(RequestIDKey)).Error("生成 PDF 失败")
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{
			Error:   "Failed to render PDF",
			Details: err.Error(),
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+pdfFileName+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
