package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Adam07-9-24/NeuroLearn-AI/internal/services"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/utils"
	"github.com/Adam07-9-24/NeuroLearn-AI/internal/validator"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	return c, w
}

func TestHandleServiceErrorStatusMapping(t *testing.T) {
	handler := BaseHandler{logger: utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"quiz not found", services.ErrQuizNotFound, http.StatusNotFound},
		{"course not found", services.ErrCourseNotFound, http.StatusNotFound},
		{"user not found", services.ErrUserNotFound, http.StatusNotFound},
		{"already enrolled", services.ErrAlreadyEnrolled, http.StatusBadRequest},
		{"already completed", services.ErrQuizAlreadyCompleted, http.StatusBadRequest},
		{"email taken", services.ErrEmailTaken, http.StatusBadRequest},
		{"course has students", services.ErrCourseHasStudents, http.StatusBadRequest},
		{"course not active", services.ErrCourseNotActive, http.StatusBadRequest},
		{"quiz not published", services.ErrQuizNotPublished, http.StatusBadRequest},
		{"not enrolled", services.ErrNotEnrolled, http.StatusForbidden},
		{"blocked user", services.ErrUserBlocked, http.StatusForbidden},
		{"bad credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"generation empty", services.ErrGenerationEmpty, http.StatusInternalServerError},
		{"generation malformed", services.ErrGenerationMalformed, http.StatusInternalServerError},
		{"generation no questions", services.ErrGenerationNoQuests, http.StatusInternalServerError},
		{"permission error", services.NewPermissionError(1, "delete", "own account"), http.StatusForbidden},
		{"validation errors", validator.ValidationErrors{{Field: "titulo", Message: "is required"}}, http.StatusBadRequest},
		{"unknown error", io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext()
			handler.handleServiceError(c, tt.err)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		wantOK bool
	}{
		{"valid", "42", true},
		{"zero", "0", false},
		{"negative", "-1", false},
		{"not a number", "abc", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext()
			c.Params = gin.Params{{Key: "id", Value: tt.value}}

			id, ok := parseIDParam(c, "id")
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if ok && id != 42 {
				t.Errorf("expected id 42, got %d", id)
			}
			if !ok && w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 on invalid id, got %d", w.Code)
			}
		})
	}
}
