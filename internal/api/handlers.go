package api

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	app "github.com/mugiwaraluffy56/vision-language-infrastructure-inspection/internal/application"
)

// errorResponse тело ответа об ошибке.
type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail"`
}

// handleInspect принимает изображение в multipart-поле file
// и возвращает отчёт об инспекции.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	file, header, err := r.FormFile("file")
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "file field is required", err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		s.renderError(w, r, http.StatusBadRequest,
			fmt.Sprintf("invalid file type: %s, please upload an image file", contentType), nil)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		s.renderError(w, r, http.StatusInternalServerError, "failed to read uploaded file", err)
		return
	}
	if len(data) == 0 {
		s.renderError(w, r, http.StatusBadRequest, "empty file uploaded", nil)
		return
	}

	report, err := s.container.InspectionService.Inspect(r.Context(), data)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyImage), errors.Is(err, app.ErrDecode):
			s.renderError(w, r, http.StatusBadRequest, "cannot decode uploaded image", err)
		case errors.Is(err, app.ErrDetection):
			s.renderError(w, r, http.StatusInternalServerError, "defect detection failed", err)
		default:
			s.renderError(w, r, http.StatusInternalServerError, "inspection failed", err)
		}
		return
	}

	render.JSON(w, r, report)
}

// handleHealth проверка живости сервиса, без побочных эффектов.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"status":  "healthy",
		"service": ServiceName,
		"version": Version,
	})
}

// handleRoot служебная информация об API.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{
		"service": ServiceName,
		"version": Version,
		"status":  "running",
		"endpoints": map[string]string{
			"inspect": "POST /api/inspect - Upload image for inspection",
			"health":  "GET /api/health - Health check",
		},
	})
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
		log.Printf("Request failed (%d): %s: %v", status, message, err)
	}

	render.Status(r, status)
	render.JSON(w, r, errorResponse{
		Status:  "error",
		Message: message,
		Detail:  detail,
	})
}
