package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/services"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

const pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

type SlidesHandler struct {
	BaseHandler
	slidesService services.SlidesService
}

func NewSlidesHandler(slidesService services.SlidesService, logger utils.Logger) *SlidesHandler {
	return &SlidesHandler{
		BaseHandler:   BaseHandler{logger: logger},
		slidesService: slidesService,
	}
}

// Generate builds a presentation outline from source text and streams the
// rendered .pptx back.
func (h *SlidesHandler) Generate(c *gin.Context) {
	var req validator.SlidesGenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	file, err := h.slidesService.GenerateFromText(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, pptxContentType, file.Content)
}

// Render builds a .pptx from client-provided sections.
func (h *SlidesHandler) Render(c *gin.Context) {
	var req validator.SlideDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid request body"})
		return
	}

	file, err := h.slidesService.Render(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Name+`"`)
	c.Data(http.StatusOK, pptxContentType, file.Content)
}
