package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/mindengage-quizgen/internal/apperr"
	"github.com/mind-engage/mindengage-quizgen/internal/logger"
	"github.com/mind-engage/mindengage-quizgen/internal/quiz"
	"github.com/mind-engage/mindengage-quizgen/internal/rbac"
)

// QuizAPI serves the quiz endpoints.
type QuizAPI struct {
	Svc            *quiz.Service
	MaxUploadBytes int64
	Log            *logger.Logger
}

func NewQuizAPI(svc *quiz.Service, maxUpload int64, log *logger.Logger) *QuizAPI {
	return &QuizAPI{Svc: svc, MaxUploadBytes: maxUpload, Log: logger.OrNop(log)}
}

// Routes mounts the quiz endpoints; callers attach them under /quizzes.
func (a *QuizAPI) Routes(r chi.Router) {
	r.With(rbac.Require(rbac.PermQuizCreate)).Post("/generate", a.Generate)
	r.With(rbac.Require(rbac.PermQuizList)).Get("/", a.List)
	r.With(rbac.Require(rbac.PermQuizView)).Get("/{id}", a.Get)
	r.With(rbac.Require(rbac.PermQuizExport)).Get("/{id}/export", a.Export)
}

// POST /quizzes/generate (multipart: file?, text?, quiz_type, num_questions)
func (a *QuizAPI) Generate(w http.ResponseWriter, r *http.Request) {
	if a.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", tooBig.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "bad form: "+err.Error())
		return
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	n, err := strconv.Atoi(strings.TrimSpace(r.FormValue("num_questions")))
	if err != nil {
		writeError(w, http.StatusBadRequest, "num_questions must be an integer")
		return
	}
	in := quiz.GenerateInput{
		Text:         r.FormValue("text"),
		QuizType:     r.FormValue("quiz_type"),
		NumQuestions: n,
	}

	var f multipart.File
	if r.MultipartForm != nil && len(r.MultipartForm.File["file"]) > 0 {
		hdr := r.MultipartForm.File["file"][0]
		f, err = hdr.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "file: "+err.Error())
			return
		}
		defer f.Close()
		in.File = f
		in.Filename = hdr.Filename
	}

	q, err := a.Svc.Generate(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"quiz_id": q.ID,
		"message": "Quiz generated successfully",
	})
}

// GET /quizzes/{id}
func (a *QuizAPI) Get(w http.ResponseWriter, r *http.Request) {
	q, err := a.Svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// GET /quizzes?limit=&offset=
func (a *QuizAPI) List(w http.ResponseWriter, r *http.Request) {
	list, err := a.Svc.List(r.Context(), quiz.ListOpts{
		Limit:  parseIntDefault(r.URL.Query().Get("limit"), 0),
		Offset: parseIntDefault(r.URL.Query().Get("offset"), 0),
	})
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if list == nil {
		list = []quiz.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

// GET /quizzes/{id}/export?format=pdf|qti
func (a *QuizAPI) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	switch format {
	case "", "pdf":
		a.exportPDF(w, r, id)
	case "qti":
		pkg, err := a.Svc.ExportQTI(r.Context(), id)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		name := "quiz_" + id + ".zip"
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
		http.ServeContent(w, r, name, time.Now(), bytes.NewReader(pkg))
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format: "+format)
	}
}

func (a *QuizAPI) exportPDF(w http.ResponseWriter, r *http.Request, id string) {
	path, err := a.Svc.ExportPDF(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			a.Log.Warn("remove exported pdf", "path", path, "error", err)
		}
	}()
	f, err := os.Open(path)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	name := "quiz_" + id + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// fail maps an error to its HTTP status. Unexpected errors are logged and
// reported generically.
func (a *QuizAPI) fail(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *apperr.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		a.Log.Error("extraction backend unavailable", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, cfgErr.Error())
	case errors.Is(err, apperr.ErrNotFound):
		writeError(w, http.StatusNotFound, "Quiz not found")
	case apperr.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		a.Log.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil && v >= 0 {
		return v
	}
	return def
}
