package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	filedom "cloudnest-api/internal/domain/file"
	folderdom "cloudnest-api/internal/domain/folder"
	"cloudnest-api/internal/domain/user"
	"cloudnest-api/internal/infrastructure/jwt"
)

type fakeUserService struct {
	registered  *user.User
	registerErr error
	found       *user.User
	findErr     error
}

func (f *fakeUserService) Register(_ context.Context, _, _, _ string) (*user.User, error) {
	return f.registered, f.registerErr
}

func (f *fakeUserService) FindByEmail(_ context.Context, _ string) (*user.User, error) {
	return f.found, f.findErr
}

type fakeAuth struct {
	token     string
	genErr    error
	revokeErr error
}

func (f *fakeAuth) GenerateToken(_ *user.User, _ string) (string, error) {
	return f.token, f.genErr
}

func (f *fakeAuth) RevokeToken(_ string) error { return f.revokeErr }

type fakeFolderService struct {
	folders   []string
	listErr   error
	created   *folderdom.Folder
	createErr error
	renamed   *folderdom.Folder
	renameErr error
	deleteErr error
	exists    bool
	existsErr error
}

func (f *fakeFolderService) CreateFolder(_ context.Context, _ user.UUID, _ string) (*folderdom.Folder, error) {
	return f.created, f.createErr
}

func (f *fakeFolderService) RenameFolder(_ context.Context, _ user.UUID, _, _ string) (*folderdom.Folder, error) {
	return f.renamed, f.renameErr
}

func (f *fakeFolderService) DeleteFolder(_ context.Context, _ user.UUID, _ string) error {
	return f.deleteErr
}

func (f *fakeFolderService) ListFolders(_ context.Context, _ user.UUID) ([]string, error) {
	return f.folders, f.listErr
}

func (f *fakeFolderService) FolderExists(_ context.Context, _ user.UUID, _ string) (bool, error) {
	return f.exists, f.existsErr
}

type fakeFileService struct {
	uploaded  filedom.Files
	uploadErr error
	files     filedom.Files
	findErr   error
	assigned  *filedom.File
	assignErr error
	removed   *filedom.File
	removeErr error
}

func (f *fakeFileService) Upload(_ context.Context, _ user.UUID, _ []*multipart.FileHeader) (filedom.Files, error) {
	return f.uploaded, f.uploadErr
}

func (f *fakeFileService) FindFiles(_ context.Context, _ user.UUID, _ int) (filedom.Files, error) {
	return f.files, f.findErr
}

func (f *fakeFileService) AssignToFolder(_ context.Context, _ user.UUID, _ uuid.UUID, _ string) (*filedom.File, error) {
	return f.assigned, f.assignErr
}

func (f *fakeFileService) RemoveFromFolder(_ context.Context, _ user.UUID, _ uuid.UUID) (*filedom.File, error) {
	return f.removed, f.removeErr
}

// newAuthedRouter returns a test router plus a live token for it, so the
// auth middleware runs for real in controller tests.
func newAuthedRouter(t *testing.T) (*gin.Engine, *jwt.Service, string) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()

	jwtService := jwt.New("test-secret")
	token, err := jwtService.GenerateJWT(uuid.NewString(), time.Hour)
	require.NoError(t, err)

	return r, jwtService, token
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doRaw(r *gin.Engine, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, names ...string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, name := range names {
		fw, err := w.CreateFormFile("file", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("content"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
