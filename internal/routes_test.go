package internal_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"portfolio/internal/testsupport"
	"portfolio/internal/users"
)

type apiClient struct {
	t      *testing.T
	app    *fiber.App
	cookie string
	bearer string
}

func (c apiClient) do(method, path string, body interface{}) (*http.Response, []byte) {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("User-Agent", testsupport.BrowserUserAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

type fixture struct {
	anonymous apiClient
	admin     apiClient
	editor    apiClient
	app       *fiber.App
}

func setup(t *testing.T) fixture {
	return setupWith(t, testsupport.NewTestApp)
}

func setupWith(t *testing.T, newApp func(*testing.T, *gorm.DB) *fiber.App) fixture {
	db := testsupport.SetupTestDB(t)
	testsupport.CreateTestUser(db, "admin@example.com", "admin-password", users.RoleAdmin)
	testsupport.CreateTestUser(db, "editor@example.com", "editor-password", users.RoleEditor)

	app := newApp(t, db)
	return fixture{
		app:       app,
		anonymous: apiClient{t: t, app: app},
		admin:     apiClient{t: t, app: app, cookie: testsupport.LoginTestUser(t, app, "admin@example.com", "admin-password")},
		editor:    apiClient{t: t, app: app, cookie: testsupport.LoginTestUser(t, app, "editor@example.com", "editor-password")},
	}
}

func TestHealth(t *testing.T) {
	f := setup(t)

	resp, body := f.anonymous.do("GET", "/_health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	health := decode[map[string]interface{}](t, body)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, "ok", health["db_status"])
}

func TestProjectLifecycle(t *testing.T) {
	f := setup(t)

	resp, body := f.admin.do("POST", "/api/projects", map[string]interface{}{
		"title":        "Portfolio",
		"description":  "My site",
		"technologies": "[\"Go\",\"SQLite\"]",
		"startDate":    "2024-01-15",
		"endDate":      "not a date",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	created := decode[map[string]interface{}](t, body)
	id := created["id"].(string)
	assert.NotEmpty(t, id)
	assert.Equal(t, "completed", created["status"])
	assert.Equal(t, []interface{}{"Go", "SQLite"}, created["technologies"])
	assert.Equal(t, []interface{}{}, created["images"])
	assert.Nil(t, created["endDate"])

	resp, body = f.anonymous.do("GET", "/api/projects", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]interface{}](t, body), 1)

	resp, body = f.anonymous.do("GET", "/api/projects/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Portfolio", decode[map[string]interface{}](t, body)["title"])

	resp, body = f.admin.do("PUT", "/api/projects/"+id, map[string]interface{}{
		"title":       "Portfolio v2",
		"description": "Rewritten",
		"featured":    true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	updated := decode[map[string]interface{}](t, body)
	assert.Equal(t, "Portfolio v2", updated["title"])
	assert.Equal(t, true, updated["featured"])
	assert.Equal(t, []interface{}{}, updated["technologies"], "update replaces the whole payload")

	resp, body = f.admin.do("DELETE", "/api/projects/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Project deleted successfully", decode[map[string]string](t, body)["message"])

	resp, body = f.anonymous.do("GET", "/api/projects/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Project not found", decode[map[string]string](t, body)["error"])
}

func TestContentErrors(t *testing.T) {
	f := setup(t)

	resp, body := f.admin.do("POST", "/api/education", map[string]string{"institution": "MIT", "degree": "BSc"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	educationID := decode[map[string]interface{}](t, body)["id"].(string)

	tests := []struct {
		name   string
		client apiClient
		method string
		path   string
		body   interface{}
		status int
		error  string
	}{
		{name: "anonymous create", client: f.anonymous, method: "POST", path: "/api/projects", body: map[string]string{"title": "x", "description": "y"}, status: 401, error: "Unauthorized"},
		{name: "editor create", client: f.editor, method: "POST", path: "/api/skills", body: map[string]string{"name": "Go", "category": "backend"}, status: 403, error: "Forbidden"},
		{name: "editor delete", client: f.editor, method: "DELETE", path: "/api/education/" + educationID, status: 403, error: "Forbidden"},
		{name: "editor update", client: f.editor, method: "PUT", path: "/api/education/" + educationID, body: map[string]string{"institution": "Hacked", "degree": "None"}, status: 403, error: "Forbidden"},
		{name: "anonymous update", client: f.anonymous, method: "PUT", path: "/api/education/" + educationID, body: map[string]string{"institution": "Hacked", "degree": "None"}, status: 401, error: "Unauthorized"},
		{name: "anonymous delete", client: f.anonymous, method: "DELETE", path: "/api/education/" + educationID, status: 401, error: "Unauthorized"},
		{name: "anonymous profile", client: f.anonymous, method: "PUT", path: "/api/profile", body: map[string]string{"name": "Mallory"}, status: 401, error: "Unauthorized"},
		{name: "missing project fields", client: f.admin, method: "POST", path: "/api/projects", body: map[string]string{"title": "only title"}, status: 400, error: "Title and description are required"},
		{name: "unknown project status", client: f.admin, method: "POST", path: "/api/projects", body: map[string]string{"title": "x", "description": "y", "status": "abandoned"}},
		{name: "skill level out of range", client: f.admin, method: "POST", path: "/api/skills", body: map[string]interface{}{"name": "Go", "category": "backend", "level": 9}, status: 400},
		{name: "experience without start date", client: f.admin, method: "POST", path: "/api/experiences", body: map[string]string{"company": "Acme", "position": "Dev"}, status: 400},
		{name: "education missing degree", client: f.admin, method: "POST", path: "/api/education", body: map[string]string{"institution": "MIT"}, status: 400, error: "Institution and degree are required"},
		{name: "update unknown skill", client: f.admin, method: "PUT", path: "/api/skills/missing", body: map[string]string{"name": "Go", "category": "backend"}, status: 404, error: "Skill not found"},
		{name: "delete unknown experience", client: f.admin, method: "DELETE", path: "/api/experiences/missing", status: 404, error: "Experience not found"},
		{name: "malformed body", client: f.admin, method: "POST", path: "/api/education", body: "not an object", status: 400, error: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.client.t = t
			resp, body := tt.client.do(tt.method, tt.path, tt.body)
			status := tt.status
			if status == 0 {
				status = fiber.StatusBadRequest
			}
			assert.Equal(t, status, resp.StatusCode, string(body))
			if tt.error != "" {
				assert.Equal(t, tt.error, decode[map[string]interface{}](t, body)["error"])
			}
		})
	}

	// None of the rejected writes reached the store.
	resp, body = f.admin.do("GET", "/api/admin/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode[map[string]int](t, body)
	assert.Equal(t, 0, stats["projects"])
	assert.Equal(t, 0, stats["skills"])
	assert.Equal(t, 0, stats["experiences"])
	assert.Equal(t, 1, stats["education"])

	resp, body = f.anonymous.do("GET", "/api/education/"+educationID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "MIT", decode[map[string]interface{}](t, body)["institution"])

	_, body = f.anonymous.do("GET", "/api/profile", nil)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))
}

func TestListOrdering(t *testing.T) {
	f := setup(t)

	for _, s := range []map[string]interface{}{
		{"name": "Vue", "category": "frontend", "order": 1},
		{"name": "Go", "category": "backend", "order": 1},
		{"name": "Docker", "category": "tools", "order": 0},
	} {
		resp, body := f.admin.do("POST", "/api/skills", s)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}

	for _, e := range []map[string]interface{}{
		{"company": "Old", "position": "Dev", "startDate": "2015-01-01", "endDate": "2018-01-01"},
		{"company": "Now", "position": "Lead", "startDate": "2019-01-01", "current": true, "endDate": "2020-01-01"},
		{"company": "Mid", "position": "Dev", "startDate": "2018-02-01", "endDate": "2019-01-01"},
	} {
		resp, body := f.admin.do("POST", "/api/experiences", e)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	}

	_, body := f.anonymous.do("GET", "/api/skills", nil)
	var names []string
	for _, s := range decode[[]map[string]interface{}](t, body) {
		names = append(names, s["name"].(string))
	}
	assert.Equal(t, []string{"Docker", "Go", "Vue"}, names)

	_, body = f.anonymous.do("GET", "/api/experiences", nil)
	experiences := decode[[]map[string]interface{}](t, body)
	require.Len(t, experiences, 3)
	assert.Equal(t, "Now", experiences[0]["company"])
	assert.Nil(t, experiences[0]["endDate"], "current position has no end date")
	assert.Equal(t, "Mid", experiences[1]["company"])
	assert.Equal(t, "Old", experiences[2]["company"])
}

func TestContactFlow(t *testing.T) {
	f := setup(t)

	resp, body := f.anonymous.do("POST", "/api/contact", map[string]string{
		"name": "Ada", "email": "ada@example.com", "message": "Hello",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	sent := decode[map[string]string](t, body)
	assert.Equal(t, "Message sent successfully", sent["message"])
	id := sent["id"]
	require.NotEmpty(t, id)

	resp, body = f.anonymous.do("POST", "/api/contact", map[string]string{"name": "Ada", "email": "ada@example.com"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing required fields", decode[map[string]string](t, body)["error"])

	resp, _ = f.anonymous.do("GET", "/api/contact", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body = f.editor.do("GET", "/api/contact", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	messages := decode[[]map[string]interface{}](t, body)
	require.Len(t, messages, 1)
	assert.Equal(t, false, messages[0]["read"])

	resp, body = f.editor.do("PUT", "/api/contact/"+id, map[string]bool{"read": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	_, body = f.admin.do("GET", "/api/contact/"+id, nil)
	assert.Equal(t, true, decode[map[string]interface{}](t, body)["read"])

	resp, _ = f.editor.do("DELETE", "/api/contact/"+id, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = f.admin.do("DELETE", "/api/contact/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Message deleted successfully", decode[map[string]string](t, body)["message"])
}

func TestContactRejectsBots(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(`{"name":"x","email":"x@example.com","message":"spam"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "curl/8.4.0")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestProfileSingleton(t *testing.T) {
	f := setup(t)

	resp, body := f.anonymous.do("GET", "/api/profile", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))

	resp, _ = f.editor.do("PUT", "/api/profile", map[string]string{"name": "Jane"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp, body = f.admin.do("POST", "/api/profile", map[string]string{"name": "Jane", "title": "Engineer"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	resp, body = f.admin.do("PUT", "/api/profile", map[string]string{"name": "Jane Doe"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	_, body = f.anonymous.do("GET", "/api/profile", nil)
	profile := decode[map[string]interface{}](t, body)
	assert.Equal(t, "profile", profile["id"])
	assert.Equal(t, "Jane Doe", profile["name"])
	assert.Equal(t, "", profile["title"], "upsert replaces every field")
}

func TestHomeStatsSingleton(t *testing.T) {
	f := setup(t)

	resp, body := f.anonymous.do("GET", "/api/home-stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode[map[string]interface{}](t, body)
	assert.Equal(t, "home-stats", stats["id"])
	assert.Equal(t, "3+", stats["yearsExperience"])

	resp, body = f.admin.do("PUT", "/api/home-stats", map[string]string{"yearsExperience": "5+"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "All fields are required", decode[map[string]string](t, body)["error"])

	resp, body = f.admin.do("PUT", "/api/home-stats", map[string]string{
		"yearsExperience": "5+", "projectsDone": "40+", "clientSatisfaction": "99%",
		"heroTitle": "Engineer", "heroBio": "Building things.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "40+", decode[map[string]interface{}](t, body)["projectsDone"])
}

func TestAuthEndpoints(t *testing.T) {
	f := setup(t)

	resp, body := f.admin.do("GET", "/api/auth/session", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	session := decode[map[string]map[string]interface{}](t, body)
	assert.Equal(t, "admin@example.com", session["user"]["email"])
	assert.NotContains(t, session["user"], "encryptedPassword")

	resp, _ = f.anonymous.do("GET", "/api/auth/session", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.anonymous.do("POST", "/api/auth/login", map[string]string{"email": "admin@example.com", "password": "wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.anonymous.do("POST", "/api/auth/login", map[string]string{"email": "admin@example.com"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body = f.anonymous.do("POST", "/api/auth/token", map[string]string{"email": "admin@example.com", "password": "admin-password"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	token := decode[map[string]interface{}](t, body)["token"].(string)

	withToken := apiClient{t: t, app: f.app, bearer: token}
	resp, body = withToken.do("POST", "/api/skills", map[string]string{"name": "Go", "category": "backend"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))

	forged := apiClient{t: t, app: f.app, bearer: token + "x"}
	resp, _ = forged.do("POST", "/api/skills", map[string]string{"name": "Go", "category": "backend"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = f.editor.do("POST", "/api/auth/logout", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cleared *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == testsupport.SessionCookieName {
			cleared = cookie
		}
	}
	require.NotNil(t, cleared, "logout must overwrite the session cookie")
	assert.Empty(t, cleared.Value)

	loggedOut := apiClient{t: t, app: f.app, cookie: cleared.Name + "=" + cleared.Value}
	resp, _ = loggedOut.do("GET", "/api/auth/session", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdminStats(t *testing.T) {
	f := setup(t)

	f.admin.do("POST", "/api/projects", map[string]string{"title": "A", "description": "B"})
	f.anonymous.do("POST", "/api/contact", map[string]string{"name": "Ada", "email": "ada@example.com", "message": "Hi"})

	resp, _ := f.anonymous.do("GET", "/api/admin/stats", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := f.editor.do("GET", "/api/admin/stats", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	stats := decode[map[string]int](t, body)
	assert.Equal(t, 1, stats["projects"])
	assert.Equal(t, 1, stats["messages"])
	assert.Equal(t, 1, stats["unreadMessages"])
	assert.Equal(t, 0, stats["skills"])
}

func TestHomePage(t *testing.T) {
	f := setup(t)

	resp, body := f.anonymous.do("GET", "/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	page := string(body)
	assert.Contains(t, page, "Your Name")
	assert.Contains(t, page, "No projects available yet. Check back soon!")

	f.admin.do("PUT", "/api/profile", map[string]string{"name": "Jane Doe", "title": "Backend Engineer"})
	f.admin.do("POST", "/api/projects", map[string]string{"title": "Gopher Site", "description": "Built in Go", "content": "**bold** move"})

	_, body = f.anonymous.do("GET", "/", nil)
	page = string(body)
	assert.Contains(t, page, "Jane Doe")
	assert.Contains(t, page, "Gopher Site")
	assert.Contains(t, page, "<strong>bold</strong>")
	assert.NotContains(t, page, "No projects available yet")

	resp, _ = f.anonymous.do("GET", "/static/styles.css", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestCachedReadsFollowWrites(t *testing.T) {
	f := setupWith(t, testsupport.NewCachedTestApp)

	// Prime every cached read.
	_, body := f.anonymous.do("GET", "/api/projects", nil)
	assert.Empty(t, decode[[]map[string]interface{}](t, body))
	_, body = f.anonymous.do("GET", "/api/home-stats", nil)
	assert.Equal(t, "3+", decode[map[string]interface{}](t, body)["yearsExperience"])
	_, body = f.anonymous.do("GET", "/api/profile", nil)
	assert.Equal(t, "null", strings.TrimSpace(string(body)))
	_, body = f.anonymous.do("GET", "/", nil)
	assert.Contains(t, string(body), "No projects available yet")

	resp, body := f.admin.do("POST", "/api/projects", map[string]string{"title": "Cached", "description": "First"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(body))
	id := decode[map[string]interface{}](t, body)["id"].(string)

	_, body = f.anonymous.do("GET", "/api/projects", nil)
	require.Len(t, decode[[]map[string]interface{}](t, body), 1)
	_, body = f.anonymous.do("GET", "/api/projects/"+id, nil)
	assert.Equal(t, "Cached", decode[map[string]interface{}](t, body)["title"])
	_, body = f.anonymous.do("GET", "/", nil)
	assert.Contains(t, string(body), "Cached")

	resp, body = f.admin.do("PUT", "/api/projects/"+id, map[string]string{"title": "Renamed", "description": "Second"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))

	_, body = f.anonymous.do("GET", "/api/projects/"+id, nil)
	assert.Equal(t, "Renamed", decode[map[string]interface{}](t, body)["title"])
	_, body = f.anonymous.do("GET", "/api/projects", nil)
	assert.Equal(t, "Renamed", decode[[]map[string]interface{}](t, body)[0]["title"])
	_, body = f.anonymous.do("GET", "/", nil)
	assert.Contains(t, string(body), "Renamed")
	assert.NotContains(t, string(body), "Cached")

	resp, body = f.admin.do("PUT", "/api/home-stats", map[string]string{
		"yearsExperience": "12+", "projectsDone": "77+", "clientSatisfaction": "98%",
		"heroTitle": "Engineer", "heroBio": "Building things.",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	_, body = f.anonymous.do("GET", "/api/home-stats", nil)
	assert.Equal(t, "12+", decode[map[string]interface{}](t, body)["yearsExperience"])
	_, body = f.anonymous.do("GET", "/", nil)
	assert.Contains(t, string(body), "77+")

	resp, body = f.admin.do("PUT", "/api/profile", map[string]string{"name": "Grace Hopper", "title": "Admiral"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(body))
	_, body = f.anonymous.do("GET", "/api/profile", nil)
	assert.Equal(t, "Grace Hopper", decode[map[string]interface{}](t, body)["name"])
	_, body = f.anonymous.do("GET", "/", nil)
	assert.Contains(t, string(body), "Grace Hopper")

	resp, _ = f.admin.do("DELETE", "/api/projects/"+id, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = f.anonymous.do("GET", "/api/projects/"+id, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	_, body = f.anonymous.do("GET", "/api/projects", nil)
	assert.Empty(t, decode[[]map[string]interface{}](t, body))
	_, body = f.anonymous.do("GET", "/", nil)
	assert.Contains(t, string(body), "No projects available yet")
}

func TestUnknownRouteRendersJSON(t *testing.T) {
	f := setup(t)

	resp, body := f.anonymous.do("GET", "/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Cannot GET /missing", decode[map[string]string](t, body)["error"])
}

func TestCORSPreflight(t *testing.T) {
	f := setup(t)

	req := httptest.NewRequest("OPTIONS", "/api/projects", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	f := setup(t)
	f.anonymous.do("GET", "/api/skills", nil)

	resp, body := f.anonymous.do("GET", "/metrics", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "portfolio_http_requests_total")
}

func TestPublicRoutesRateLimited(t *testing.T) {
	f := setup(t)
	routes := f.app.GetRoutes(true)

	for _, target := range []struct{ method, path string }{
		{fiber.MethodPost, "/api/contact"},
		{fiber.MethodPost, "/api/auth/login"},
		{fiber.MethodGet, "/api/projects"},
	} {
		var route *fiber.Route
		for i := range routes {
			if routes[i].Method == target.method && routes[i].Path == target.path {
				route = &routes[i]
				break
			}
		}
		require.NotNil(t, route, "expected %s %s to be registered", target.method, target.path)

		// The limiter is wrapped in a closure that only applies it in production.
		hasRateLimiter := false
		for _, handler := range route.Handlers {
			name := runtime.FuncForPC(reflect.ValueOf(handler).Pointer()).Name()
			if strings.Contains(name, "MountAppRoutes.func") {
				hasRateLimiter = true
				break
			}
		}
		assert.Truef(t, hasRateLimiter, "expected rate limiter on %s %s", target.method, target.path)
	}
}
