// Package web draws a controller view as an HTML page.
package web // import "github.com/Xunop/e-library/internal/web"

import (
	"bytes"
	"embed"
	"html/template"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"github.com/Xunop/e-library/internal/controller"
	"github.com/Xunop/e-library/internal/version"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

type page struct {
	View    *controller.View
	Version string
}

var (
	linkSchemes = []string{"http", "https", "file", "ftp"}
	drivePath   = regexp.MustCompile(`^[A-Za-z]:[\\/]`)
)

// linkHref turns a stored link into an anchor target. Web, file and ftp URLs
// and plain paths pass through, Windows drive paths become file URLs. Any
// other scheme, javascript: included, is replaced by "#".
func linkHref(link string) template.URL {
	link = strings.TrimSpace(link)
	if drivePath.MatchString(link) {
		return template.URL("file:///" + strings.ReplaceAll(link, `\`, "/"))
	}
	u, err := url.Parse(link)
	if err != nil {
		return "#"
	}
	if u.Scheme != "" && !slices.Contains(linkSchemes, strings.ToLower(u.Scheme)) {
		return "#"
	}
	return template.URL(link)
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"hasField": func(fields []string, name string) bool {
			return slices.Contains(fields, name)
		},
		"linkHref": linkHref,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page renders the whole page for view.
func (r *Renderer) Page(view *controller.View) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "index", page{View: view, Version: version.GetCurrentVersion()}); err != nil {
		return nil, errors.Wrap(err, "failed to render page")
	}
	return buf.Bytes(), nil
}
