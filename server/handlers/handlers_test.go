package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/Luismorlan/postboard/filestore"
	"github.com/Luismorlan/postboard/model"
	"github.com/Luismorlan/postboard/server/handlers"
	"github.com/Luismorlan/postboard/server/middlewares"
	"github.com/Luismorlan/postboard/store"
	"github.com/Luismorlan/postboard/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	store  *store.Store
	images *filestore.FakeImageStore
}

// newTestServer assembles the same router as cmd/server, on an isolated
// in-memory database and a fake image store.
func newTestServer(t *testing.T) *testServer {
	gin.SetMode(gin.TestMode)

	db := utils.NewTestDB(t)
	st := store.NewStore(db)
	images := filestore.NewFakeImageStore()

	router := gin.New()
	router.Use(middlewares.Session(db))
	handlers.NewPageHandler(st, images).RegisterRoutes(router)
	handlers.NewAPIHandler(st).RegisterRoutes(router, db)

	return &testServer{router: router, db: db, store: st, images: images}
}

// login mints a session token for the user and returns the cookie the page
// flows authenticate with.
func (ts *testServer) login(t *testing.T, user *model.User) *http.Cookie {
	token := utils.TestCreateToken(t, ts.db, user)
	return &http.Cookie{Name: middlewares.SessionCookie, Value: token}
}

// getPage issues a GET, optionally authenticated.
func (ts *testServer) getPage(path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// postForm issues a form-encoded POST, optionally authenticated.
func (ts *testServer) postForm(path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

// apiRequest issues a JSON request against the API, with an optional token.
func (ts *testServer) apiRequest(method string, path string, body string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}
