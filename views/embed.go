// Package views holds the HTML templates and static assets, embedded into
// the binary.
package views

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v3"
)

// Layout is the layout every page renders inside.
const Layout = "layouts/main"

//go:embed *.html layouts/*.html
var templates embed.FS

//go:embed static
var static embed.FS

// Static returns the static asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// NewEngine builds the template engine over the embedded views. In reload
// mode templates are parsed again on every render.
func NewEngine(funcs template.FuncMap, reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(templates), ".html")
	engine.AddFuncMap(funcs)
	engine.Reload(reload)
	return engine
}
