// Package api implements the HTTP client for the backend wire contract:
// JSON auth endpoints, the multipart upload endpoint, and the transport
// decorator that attaches the bearer credential to outgoing requests.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"
	"time"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/common"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

const (
	loginPath   = "/api/auth/login"
	logoutPath  = "/api/auth/logout"
	refreshPath = "/api/auth/refresh"
	uploadPath  = "/api/upload"
)

// ProgressFunc receives cumulative transferred/total byte counts while an
// upload body is being consumed by the transport.
type ProgressFunc func(sent, total int64)

// Client talks to the backend over HTTP. The supplied RoundTripper is
// expected to be an *AuthTransport so every call shares the same
// authorization pipeline.
type Client struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// New builds a Client for the given base URL. rt may be nil, in which case
// the default transport is used (no credential attachment).
func New(baseURL string, rt http.RoundTripper, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: rt, Timeout: timeout},
		log:     log,
	}
}

// Login posts the credentials and decodes the login response. Backend
// rejections (success=false) are returned as a decoded response, not an
// error; only transport and decode failures produce errors.
func (c *Client) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	var loginResp models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return nil, fmt.Errorf("login: unexpected response %s", resp.Status)
	}
	return &loginResp, nil
}

// Logout posts an empty body to the logout endpoint. The response body is
// ignored; callers treat transport failures as a successful local logout.
func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+logoutPath, http.NoBody)
	if err != nil {
		return fmt.Errorf("build logout request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// Refresh posts an empty body to the refresh endpoint and decodes the new
// credential.
func (c *Client) Refresh(ctx context.Context) (*models.RefreshResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+refreshPath, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build refresh request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("refresh request: %w", err)
	}
	defer resp.Body.Close()

	var refreshResp models.RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&refreshResp); err != nil {
		return nil, fmt.Errorf("refresh: unexpected response %s", resp.Status)
	}
	return &refreshResp, nil
}

// Upload sends one file as multipart form data with the bucket and
// destinationPath fields. The whole body is assembled up front so the total
// size is known and progress can be reported as the transport consumes it.
func (c *Client) Upload(ctx context.Context, target models.BucketTarget, file models.UploadCandidate, progress func(sent, total int64)) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", file.Path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := createFilePart(w, file.Name, file.Type)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read %s: %w", file.Path, err)
	}
	if err := w.WriteField("bucket", target.Bucket); err != nil {
		return fmt.Errorf("write bucket field: %w", err)
	}
	if err := w.WriteField("destinationPath", target.DestinationPath); err != nil {
		return fmt.Errorf("write destinationPath field: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	total := int64(buf.Len())
	body := &progressReader{r: &buf, total: total, fn: progress}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, body)
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.ContentLength = total

	c.log.Debug(ctx, "uploading file", "name", file.Name, "bytes", total,
		"bucket", target.Bucket, "path", target.DestinationPath)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("upload rejected: %w", common.ErrUnauthorized)
	case resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("upload rejected: %w", common.ErrForbidden)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("upload failed: %s", resp.Status)
	}

	// final acknowledgment: the server confirmed the whole payload
	if progress != nil {
		progress(total, total)
	}
	return nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// createFilePart is multipart.Writer.CreateFormFile with the declared MIME
// type instead of application/octet-stream.
func createFilePart(w *multipart.Writer, name, mimeType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(name)))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	h.Set("Content-Type", mimeType)
	return w.CreatePart(h)
}

// progressReader reports cumulative bytes read to fn as the HTTP transport
// drains the request body.
type progressReader struct {
	r     io.Reader
	total int64
	sent  int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		if p.fn != nil {
			p.fn(p.sent, p.total)
		}
	}
	return n, err
}
