package http

import (
	"net/http"
	"time"

	"github.com/gofiber/template/html/v2"

	"portfolio/web"
)

// NewViews returns the template engine over the embedded views.
func NewViews(reload bool) *html.Engine {
	engine := html.NewFileSystem(http.FS(web.Views()), ".html")
	engine.Reload(reload)
	engine.AddFunc("monthYear", monthYear)
	return engine
}

// monthYear formats a date as "Jan 2006". Nil dates render empty.
func monthYear(value interface{}) string {
	switch t := value.(type) {
	case time.Time:
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2006")
	case *time.Time:
		if t == nil || t.IsZero() {
			return ""
		}
		return t.Format("Jan 2006")
	}
	return ""
}
