package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swaggerFile = "../../../docs/swagger.json"

var pathParam = regexp.MustCompile(`:(\w+)`)

// Cada ruta GET/POST registrada por Router tiene su operación documentada en docs/swagger.json.
func TestSwaggerDocumentaTodasLasRutas(t *testing.T) {
	raw, err := os.ReadFile(swaggerFile)
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(raw, &doc))

	app := buildRouterApp(t)
	seen := 0
	for _, r := range app.GetRoutes(true) {
		if r.Method != fiber.MethodGet && r.Method != fiber.MethodPost {
			continue
		}
		if !strings.HasPrefix(r.Path, "/api/") {
			continue
		}
		seen++
		p := pathParam.ReplaceAllString(r.Path, "{$1}")
		ops, ok := doc.Paths[p]
		if !assert.True(t, ok, "ruta sin documentar: %s", p) {
			continue
		}
		_, ok = ops[strings.ToLower(r.Method)]
		assert.True(t, ok, "método sin documentar: %s %s", r.Method, p)
	}
	assert.Equal(t, 15, seen)
	assert.Contains(t, doc.Paths, "/api/auth/login")
	assert.Contains(t, doc.Paths, "/health")
}

func TestSwaggerUI_SeSirveEnDocs(t *testing.T) {
	app := fiber.New()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: swaggerFile,
		Path:     "docs",
		Title:    "Café POS API",
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}
