package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashedin27-max/GCS-Upload/internal/client/auth"
	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/client/session"
	"github.com/hashedin27-max/GCS-Upload/internal/common"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
	"github.com/hashedin27-max/GCS-Upload/internal/mockserver"
)

func testLogger() logging.Logger {
	return logging.NewDefault(8)
}

func writeTempFile(t *testing.T, name, content string) models.UploadCandidate {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return models.UploadCandidate{Path: path, Name: name, Type: "text/plain", Size: int64(len(content))}
}

func TestClient_Login(t *testing.T) {
	srv := httptest.NewServer(mockserver.NewRouter(mockserver.Config{}, testLogger()))
	defer srv.Close()

	c := New(srv.URL, nil, 5*time.Second, testLogger())

	resp, err := c.Login(context.Background(), "admin", "password123")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.User)
	assert.Equal(t, "admin", resp.User.Username)
	assert.NotEmpty(t, resp.Token)
}

func TestClient_Login_Rejection(t *testing.T) {
	srv := httptest.NewServer(mockserver.NewRouter(mockserver.Config{}, testLogger()))
	defer srv.Close()

	c := New(srv.URL, nil, 5*time.Second, testLogger())

	resp, err := c.Login(context.Background(), "admin", "wrong")
	require.NoError(t, err, "a backend rejection is a decoded response, not an error")
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid username or password", resp.Message)
}

func TestClient_Refresh(t *testing.T) {
	srv := httptest.NewServer(mockserver.NewRouter(mockserver.Config{}, testLogger()))
	defer srv.Close()

	c := New(srv.URL, nil, 5*time.Second, testLogger())

	resp, err := c.Refresh(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
}

func TestClient_Upload_FormFieldsAndProgress(t *testing.T) {
	var gotBucket, gotPath, gotName, gotBody, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotBucket = r.FormValue("bucket")
		gotPath = r.FormValue("destinationPath")
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		body, err := io.ReadAll(f)
		require.NoError(t, err)
		gotName, gotBody = header.Filename, string(body)
		gotType = header.Header.Get("Content-Type")
	}))
	defer srv.Close()

	c := New(srv.URL, nil, 5*time.Second, testLogger())
	file := writeTempFile(t, "notes.txt", "hello world")

	var progress [][2]int64
	err := c.Upload(context.Background(), models.BucketTarget{Bucket: "b1", DestinationPath: "p1"}, file,
		func(sent, total int64) { progress = append(progress, [2]int64{sent, total}) })
	require.NoError(t, err)

	assert.Equal(t, "b1", gotBucket)
	assert.Equal(t, "p1", gotPath)
	assert.Equal(t, "notes.txt", gotName)
	assert.Equal(t, "hello world", gotBody)
	assert.Equal(t, "text/plain", gotType)

	require.NotEmpty(t, progress)
	last := progress[len(progress)-1]
	assert.Equal(t, last[1], last[0], "progress ends at total")
	var prev int64
	for _, p := range progress {
		assert.GreaterOrEqual(t, p[0], prev)
		prev = p[0]
	}
}

func TestClient_Upload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, nil, 5*time.Second, testLogger())
	file := writeTempFile(t, "notes.txt", "hello")

	err := c.Upload(context.Background(), models.BucketTarget{Bucket: "b", DestinationPath: "p"}, file, nil)
	require.Error(t, err)
}

// End-to-end through the real session pipeline: manager, authorizer
// transport, client, and the mock backend.
func TestSessionPipeline_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(mockserver.NewRouter(mockserver.Config{}, testLogger()))
	defer srv.Close()

	var manager *auth.Manager
	var forcedOut bool

	transport := &AuthTransport{
		Tokens:         TokenFunc(func() string { return manager.Token() }),
		OnUnauthorized: func() { forcedOut = true },
	}
	client := New(srv.URL, transport, 5*time.Second, testLogger())
	manager = auth.NewManager(client, session.NewMemoryStore(), testLogger())

	ctx := context.Background()
	file := writeTempFile(t, "report.pdf", "pdf bytes")
	target := models.BucketTarget{Bucket: "assets-prod", DestinationPath: "uploads"}

	// anonymous upload is refused by the backend and clears nothing locally
	err := client.Upload(ctx, target, file, nil)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.True(t, forcedOut, "401 on a non-login endpoint forces logout")

	forcedOut = false
	require.NoError(t, manager.Login(ctx, "admin", "password123"))
	require.True(t, manager.IsAuthenticated())

	require.NoError(t, client.Upload(ctx, target, file, nil))
	assert.False(t, forcedOut)

	require.NoError(t, manager.Refresh(ctx))
	require.True(t, manager.IsAuthenticated())

	require.NoError(t, manager.Logout(ctx))
	assert.False(t, manager.IsAuthenticated())
}
