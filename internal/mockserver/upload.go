package mockserver

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/hashedin27-max/GCS-Upload/internal/client/token"
)

const maxUploadMemory = 64 << 20

func (s *server) handleUpload(w http.ResponseWriter, r *http.Request) {
	claims, _ := r.Context().Value(claimsKey{}).(*token.Claims)
	if claims == nil || claims.Role != "administrator" {
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "insufficient role"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "malformed multipart form"})
		return
	}

	bucket := r.FormValue("bucket")
	destinationPath := r.FormValue("destinationPath")
	if bucket == "" || destinationPath == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "bucket and destinationPath are required"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "file field is required"})
		return
	}
	defer file.Close()

	size := header.Size
	if s.cfg.SpoolDir != "" {
		size, err = s.spool(bucket, destinationPath, header.Filename, file)
		if err != nil {
			s.log.Error(r.Context(), "spooling upload", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "storing file failed"})
			return
		}
	} else if size, err = io.Copy(io.Discard, file); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "reading file failed"})
		return
	}

	s.log.Info(r.Context(), "upload accepted", "name", header.Filename,
		"bytes", size, "bucket", bucket, "path", destinationPath)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"name":    header.Filename,
		"size":    size,
		"bucket":  bucket,
		"path":    destinationPath,
	})
}

// spool writes the upload under SpoolDir/bucket/destinationPath with a
// unique name prefix so repeated uploads never collide.
func (s *server) spool(bucket, destinationPath, name string, src io.Reader) (int64, error) {
	dir := filepath.Join(s.cfg.SpoolDir, bucket, filepath.FromSlash(destinationPath))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return 0, fmt.Errorf("mkdir %s: %w", dir, err)
	}

	dst, err := os.Create(filepath.Join(dir, uuid.NewString()+"_"+filepath.Base(name)))
	if err != nil {
		return 0, fmt.Errorf("create spool file: %w", err)
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return 0, fmt.Errorf("write spool file: %w", err)
	}
	return n, nil
}
