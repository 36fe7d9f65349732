package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bohdan-dev/fileshare/db"
	"github.com/bohdan-dev/fileshare/internal/auth"
	"github.com/bohdan-dev/fileshare/internal/models"
	"github.com/bohdan-dev/fileshare/internal/router"
	"github.com/bohdan-dev/fileshare/internal/storage"
	"github.com/bohdan-dev/fileshare/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStore struct {
	objects     map[string][]byte
	putCalls    int
	deleteCalls int
	putErr      error
	deleteErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}}
}

func (f *fakeStore) Put(ctx context.Context, key string, body []byte, contentType string, isPublic bool) (string, error) {
	f.putCalls++
	if f.putErr != nil {
		return "", f.putErr
	}
	f.objects[key] = body
	return "https://test-bucket.s3.eu-central-1.amazonaws.com/" + key, nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *fakeStore) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, gdb.AutoMigrate(&models.User{}, &models.FileItem{}))
	db.DB = gdb

	store := newFakeStore()
	storage.Store = store

	return router.NewRouter(), store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func signUp(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/signUp",
		`{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func uploadFile(t *testing.T, r *gin.Engine, token, filename, content, isPublic string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)

	require.NoError(t, mw.WriteField("isPublic", isPublic))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doAuthed(t *testing.T, r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listFiles(t *testing.T, r *gin.Engine, token string) []models.FileItem {
	t.Helper()

	w := doAuthed(t, r, http.MethodGet, "/api/files/my", token)
	require.Equal(t, http.StatusOK, w.Code)

	var files []models.FileItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	return files
}
