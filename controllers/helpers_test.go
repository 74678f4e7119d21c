// file: controllers/helpers_test.go
package controllers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"catering-admin/apperr"
	"catering-admin/middleware"
	"catering-admin/models"
	"catering-admin/storage"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var testSite = &Site{BusinessName: "Jagdamba Caterers"}

// setupTestRouter creates a gin engine with cookie sessions, the auth gate
// and minimal templates that print the values the tests look for.
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := cookie.NewStore([]byte("test-secret"))
	router.Use(sessions.Sessions("testsession", store))
	router.Use(middleware.SessionGate())

	tmpDir := t.TempDir()
	require.NoError(t, createDummyTemplates(tmpDir))
	router.LoadHTMLGlob(filepath.Join(tmpDir, "*.html"))

	// helper routes to log in and inspect the session
	router.GET("/test-login", func(c *gin.Context) {
		s := &models.Session{ID: c.Query("id"), Username: c.Query("username"), Email: c.Query("email")}
		if err := middleware.GateFrom(c).SetCurrentUser(s); err != nil {
			c.String(http.StatusInternalServerError, "session save failed")
			return
		}
		c.String(http.StatusOK, "session set")
	})
	router.GET("/whoami", func(c *gin.Context) {
		if u := middleware.CurrentUser(c); u != nil {
			c.String(http.StatusOK, u.Username)
			return
		}
		c.String(http.StatusOK, "guest")
	})
	return router
}

const listTemplate = `title={{.Title}}
{{with .Notice}}notice={{.Kind}}:{{.Title}}:{{.Message}}{{end}}
{{range $k, $v := .Errors}}error[{{$k}}]={{$v}}
{{end}}{{if .Dialog}}dialog{{end}} {{with .EditingID}}editing={{.}}{{end}} {{if .LoadFailed}}load-failed{{end}}
{{range .Rows}}row={{.ID}}
{{end}}`

// createDummyTemplates writes a set of minimal HTML templates to the provided directory.
func createDummyTemplates(dir string) error {
	templates := map[string]string{
		"login.html":     `title={{.Title}} {{with .Notice}}notice={{.Kind}}:{{.Title}}:{{.Message}}{{end}} email={{.Email}}`,
		"loading.html":   `loading`,
		"dashboard.html": `title={{.Title}} {{with .Notice}}notice={{.Kind}}:{{.Title}}:{{.Message}}{{end}} reviews={{.Stats.TotalReviews}} menu={{.Stats.TotalMenuItems}}`,
		"not_found.html": `not found: {{.Path}}`,
		"reviews.html":   listTemplate,
		"admins.html":    listTemplate + `{{with .MeID}}me={{.}}{{end}}`,
		"menu.html":      listTemplate + `available={{.AvailableCount}}/{{.TotalCount}} {{with .Form}}form-available={{.Available}}{{end}}`,
		"inquiries.html": listTemplate + `{{range $id, $l := .Links}}wa[{{$id}}]={{$l.WhatsApp}}
{{end}}`,
	}

	for name, content := range templates {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

// ------------------ cookie-carrying client ------------------

type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, router *gin.Engine) *testClient {
	return &testClient{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (tc *testClient) do(req *http.Request) *httptest.ResponseRecorder {
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	tc.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		tc.cookies[ck.Name] = ck
	}
	return w
}

func (tc *testClient) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return tc.do(req)
}

func (tc *testClient) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return tc.do(req)
}

type testFile struct {
	field       string
	filename    string
	contentType string
	data        []byte
}

func (tc *testClient) postMultipart(path string, fields map[string]string, file *testFile) *httptest.ResponseRecorder {
	tc.t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(tc.t, mw.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(tc.t, err)
		_, err = part.Write(file.data)
		require.NoError(tc.t, err)
	}
	require.NoError(tc.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return tc.do(req)
}

// loginAs stores a session for the given admin in the client's cookie.
func (tc *testClient) loginAs(id, username, email string) {
	tc.t.Helper()
	q := url.Values{"id": {id}, "username": {username}, "email": {email}}
	w := tc.get("/test-login?" + q.Encode())
	require.Equal(tc.t, http.StatusOK, w.Code)
}

// ------------------ recording fakes ------------------

// callLog records gateway and storage calls in the order they happen.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

// writes returns every call except list/get reads.
func (l *callLog) writes() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, c := range l.calls {
		if c != "list" && !strings.HasPrefix(c, "get:") {
			out = append(out, c)
		}
	}
	return out
}

// fakeGateway is an in-memory Gateway that records its calls.
type fakeGateway[T any] struct {
	log       *callLog
	rows      []T
	byID      map[string]*T
	err       error // returned by every call when set
	inserted  []*T
	lastPatch map[string]any
}

func newFakeGateway[T any](log *callLog) *fakeGateway[T] {
	return &fakeGateway[T]{log: log, byID: map[string]*T{}}
}

func (g *fakeGateway[T]) List(context.Context) ([]T, error) {
	g.log.add("list")
	if g.err != nil && !apperr.IsPartial(g.err) {
		return nil, g.err
	}
	return g.rows, g.err
}

func (g *fakeGateway[T]) Get(_ context.Context, id string) (*T, error) {
	g.log.add("get:" + id)
	if g.err != nil {
		return nil, g.err
	}
	row, ok := g.byID[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return row, nil
}

func (g *fakeGateway[T]) Insert(_ context.Context, row *T) error {
	g.log.add("insert")
	if g.err != nil {
		return g.err
	}
	g.inserted = append(g.inserted, row)
	return nil
}

func (g *fakeGateway[T]) Update(_ context.Context, id string, patch map[string]any) error {
	g.log.add("update:" + id)
	if g.err != nil {
		return g.err
	}
	g.lastPatch = patch
	return nil
}

func (g *fakeGateway[T]) Delete(_ context.Context, id string) error {
	g.log.add("delete:" + id)
	return g.err
}

// recordingStore is a MemoryStorage that logs uploads into the shared call log.
type recordingStore struct {
	*storage.MemoryStorage
	log *callLog
}

func newRecordingStore(log *callLog) *recordingStore {
	return &recordingStore{MemoryStorage: storage.NewMemoryStorage("http://test"), log: log}
}

func (s *recordingStore) Upload(ctx context.Context, bucket storage.Bucket, key string, data []byte, opts storage.UploadOptions) error {
	s.log.add("upload:" + string(bucket))
	return s.MemoryStorage.Upload(ctx, bucket, key, data, opts)
}

// pngBytes returns n bytes starting with the PNG signature.
func pngBytes(n int) []byte {
	data := make([]byte, n)
	copy(data, []byte("\x89PNG\r\n\x1a\n"))
	return data
}
