package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/client/upload"
)

func (a *App) listCatalog() {
	fmt.Println("Buckets:")
	for i, b := range a.config.GCSBuckets {
		fmt.Printf("  [%d] %s\n", i, b)
	}
	fmt.Println("Destination paths:")
	for i, p := range a.config.DestinationPaths {
		fmt.Printf("  [%d] %s\n", i, p)
	}
	fmt.Printf("Current target: %s/%s\n", a.target.Bucket, a.target.DestinationPath)
}

func (a *App) setTarget(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: target <bucket-index> <path-index>")
		return
	}
	bi, err1 := strconv.Atoi(args[0])
	pi, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil ||
		bi < 0 || bi >= len(a.config.GCSBuckets) ||
		pi < 0 || pi >= len(a.config.DestinationPaths) {
		fmt.Println("invalid catalog index")
		return
	}
	a.target = models.BucketTarget{
		Bucket:          a.config.GCSBuckets[bi],
		DestinationPath: a.config.DestinationPaths[pi],
	}
	fmt.Printf("Target set to %s/%s\n", a.target.Bucket, a.target.DestinationPath)
}

// detectType maps a file extension to its declared MIME type.
func detectType(path string) string {
	t := mime.TypeByExtension(filepath.Ext(path))
	if i := strings.Index(t, ";"); i >= 0 {
		t = t[:i]
	}
	return t
}

func (a *App) addFiles(ctx context.Context, paths []string) {
	if !a.requireUpload() {
		return
	}
	if len(paths) == 0 {
		fmt.Println("usage: add <file> [file...]")
		return
	}

	candidates := make([]models.UploadCandidate, 0, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			fmt.Printf("Cannot read %s: %v\n", p, err)
			continue
		}
		if info.IsDir() {
			fmt.Printf("Skipping directory %s\n", p)
			continue
		}
		candidates = append(candidates, models.UploadCandidate{
			Path: p,
			Name: filepath.Base(p),
			Type: detectType(p),
			Size: info.Size(),
		})
	}

	before := len(a.uploader.Selection())
	rejected := a.uploader.Add(candidates)
	for _, r := range rejected {
		fmt.Printf("Rejected %s (%s, %s): %s\n",
			r.Candidate.Name, r.Candidate.Type, upload.FormatFileSize(r.Candidate.Size), r.Reason)
	}
	fmt.Printf("%d file(s) queued.\n", len(a.uploader.Selection())-before)
}

func (a *App) listSelection() {
	sel := a.uploader.Selection()
	if len(sel) == 0 {
		fmt.Println("No files selected.")
		return
	}
	for i, f := range sel {
		fmt.Printf("  [%d] %s  %s  %s\n", i, f.Name, f.Type, upload.FormatFileSize(f.Size))
	}
}

func (a *App) removeFile(args []string) {
	if len(args) != 1 {
		fmt.Println("usage: remove <index>")
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Println("usage: remove <index>")
		return
	}
	if err := a.uploader.Remove(i); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Removed.")
}

func (a *App) uploadAll(ctx context.Context) {
	if !a.requireUpload() {
		return
	}
	if a.uploader.IsUploading() {
		fmt.Println("An upload is already running.")
		return
	}

	if err := a.uploader.UploadAll(ctx, a.target); err != nil {
		fmt.Printf("%s: %s\n", a.uploader.Status(), err.Error())
		return
	}
	fmt.Println(a.uploader.Status())
}

func (a *App) showHistory() {
	history := a.uploader.History()
	if len(history) == 0 {
		fmt.Println("No uploads yet.")
		return
	}
	for _, rec := range history {
		progress := ""
		if rec.Status == models.UploadStatusUploading || rec.Status == models.UploadStatusError {
			progress = fmt.Sprintf(" %d%%", rec.Progress)
		}
		fmt.Printf("  %s  %-9s%s  %s  %s\n",
			rec.SubmittedAt.Format("2006-01-02 15:04:05"),
			rec.Status, progress, rec.Name, upload.FormatFileSize(rec.Size))
	}
}
