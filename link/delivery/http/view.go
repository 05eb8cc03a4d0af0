package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type IndexPage struct {
	PersonalizedLink string
	Error            string
}

type PersonalPage struct {
	Name    string
	Note    string
	FileURL string
}

type View struct {
	templates *template.Template
}

func CreateView() (*View, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "parse templates failed")
	}
	return &View{templates: templates}, nil
}

func StaticHandler() http.Handler {
	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(static)))
}

func (v *View) RenderIndex(w http.ResponseWriter, statusCode int, page IndexPage) error {
	return v.render(w, statusCode, "index", page)
}

func (v *View) RenderPersonal(w http.ResponseWriter, statusCode int, page PersonalPage) error {
	return v.render(w, statusCode, "personal", page)
}

// render buffers the page so a template failure never sends a half written body.
func (v *View) render(w http.ResponseWriter, statusCode int, name string, data any) error {
	var buf bytes.Buffer
	if err := v.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return errors.Wrapf(err, "execute template %s failed", name)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err := buf.WriteTo(w)
	return err
}
