package httpapi

import (
	_ "embed"
	"html/template"
	"net/http"
	"sync"

	"github.com/valyala/bytebufferpool"
)

//go:embed openapi.yaml
var openAPISpec []byte

var swaggerPage = template.Must(template.New("swagger").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: {{.SpecURL}},
        dom_id: '#swagger-ui',
        deepLinking: true,
        tryItOutEnabled: {{.TryItOut}},
        presets: [SwaggerUIBundle.presets.apis],
      });
    </script>
  </body>
</html>`))

var (
	swaggerOnce sync.Once
	swaggerHTML []byte
	swaggerErr  error
)

func renderSwaggerPage() ([]byte, error) {
	swaggerOnce.Do(func() {
		buf := bytebufferpool.Get()
		defer bytebufferpool.Put(buf)

		swaggerErr = swaggerPage.Execute(buf, struct {
			Title    string
			SpecURL  string
			TryItOut bool
		}{Title: "Fantasy Five API Docs", SpecURL: "/openapi.yaml", TryItOut: true})
		swaggerHTML = append([]byte(nil), buf.B...)
	})
	return swaggerHTML, swaggerErr
}

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()

	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	if _, err := w.Write(openAPISpec); err != nil {
		h.logger.WarnContext(ctx, "write openapi document failed", "error", err)
	}
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()

	page, err := renderSwaggerPage()
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
