package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// DateLayout is how note and account timestamps are shown.
const DateLayout = "02-01-2006 15:04"

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"join": strings.Join,
		"date": func(t time.Time) string { return t.Local().Format(DateLayout) },
	}).ParseFS(templateFS, "templates/*.html")
}

// noteDraft is the editable form state of a note.
type noteDraft struct {
	Title    string
	Body     string
	TagsCSV  string
	Category string
}

func draftOf(n *models.Note) noteDraft {
	return noteDraft{Title: n.Title, Body: n.Body, TagsCSV: strings.Join(n.Tags, ", "), Category: n.Category}
}

func draftFromForm(r *http.Request) noteDraft {
	return noteDraft{
		Title:    r.PostFormValue("title"),
		Body:     r.PostFormValue("content"),
		TagsCSV:  r.PostFormValue("tags"),
		Category: r.PostFormValue("category"),
	}
}

// render executes the named page into a buffer first so a template error
// never leaves a half-written page behind.
func (s *Server) render(ctx context.Context, w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		s.internalError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) internalError(ctx context.Context, w http.ResponseWriter, err error) {
	s.logger.Error(ctx, "request failed", "error", err)
	http.Error(w, "Something went wrong. Please try again later.", http.StatusInternalServerError)
}

func seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}
