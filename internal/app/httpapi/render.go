package httpapi

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/webtriad/webtriad/internal/errors"
	"github.com/webtriad/webtriad/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// render writes an HTML page. Template failures after the header is written
// cannot be reported to the client, so they are only logged.
func render(w http.ResponseWriter, log *logger.Logger, status int, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		log.WithError(err).Errorf("render template %s", name)
	}
}

// renderError shows the error page with the message of a service error.
func renderError(w http.ResponseWriter, log *logger.Logger, err error) {
	status := errors.HTTPStatus(err)
	message := "something went wrong"
	if svcErr := errors.GetServiceError(err); svcErr != nil {
		message = svcErr.Message
	}
	render(w, log, status, "error.html", map[string]interface{}{
		"Status":  status,
		"Message": message,
	})
}
