package models

import "time"

// UploadStatus is the terminal-or-transient state of one upload attempt.
type UploadStatus string

const (
	UploadStatusPending   UploadStatus = "pending"
	UploadStatusUploading UploadStatus = "uploading"
	UploadStatusSuccess   UploadStatus = "success"
	UploadStatusError     UploadStatus = "error"
)

// UploadCandidate is a read-only view of a user-selected file before it
// has been accepted into a batch.
type UploadCandidate struct {
	Path string // local filesystem path
	Name string
	Type string // declared MIME type
	Size int64
}

// UploadRecord tracks one upload attempt in the history list. Records are
// created when a transfer starts and are only ever prepended, never removed.
type UploadRecord struct {
	ID          string
	Name        string
	Size        int64
	Type        string
	SubmittedAt time.Time
	Status      UploadStatus
	Progress    int // 0..100
}

// BucketTarget is the storage destination selected from the configured
// catalog. The client only selects targets, it never creates them.
type BucketTarget struct {
	Bucket          string
	DestinationPath string
}

// Policy is the per-deployment acceptance policy for candidate files.
type Policy struct {
	AllowedTypes []string
	MaxSizeBytes int64
}

// Allows reports whether the declared MIME type is in the allowed set.
func (p Policy) Allows(mimeType string) bool {
	for _, t := range p.AllowedTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}
