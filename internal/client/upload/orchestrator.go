// Package upload validates candidate files against the deployment policy and
// drives accepted batches to the configured target, one transfer at a time.
package upload

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hashedin27-max/GCS-Upload/internal/client/models"
	"github.com/hashedin27-max/GCS-Upload/internal/common"
	"github.com/hashedin27-max/GCS-Upload/internal/logging"
)

// Batch status text shown to the user.
const (
	StatusReady     = "Ready to upload"
	StatusUploading = "Uploading..."
	StatusCompleted = "Upload completed"
	StatusFailed    = "Upload failed"
)

// Transport performs one file transfer to the selected target. Both the
// backend multipart client and the direct bucket uploader satisfy it.
type Transport interface {
	Upload(ctx context.Context, target models.BucketTarget, file models.UploadCandidate, progress func(sent, total int64)) error
}

// Rejection reports why one candidate was refused. Reason matches
// common.ErrUnsupportedType or common.ErrFileTooLarge via errors.Is.
type Rejection struct {
	Candidate models.UploadCandidate
	Reason    error
}

// Orchestrator owns the pending selection, the prepend-only upload history,
// and the batch status text. Transfers within one batch are strictly
// sequential: the next never starts before the previous reaches a terminal
// state. Concurrent UploadAll invocations are refused, callers should also
// disable the trigger while IsUploading reports true.
type Orchestrator struct {
	transport Transport
	policy    models.Policy
	log       logging.Logger
	now       func() time.Time

	mu        sync.Mutex
	selection []models.UploadCandidate
	history   []*models.UploadRecord
	status    string
	uploading bool
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// NewOrchestrator builds an Orchestrator for the given transport and policy.
func NewOrchestrator(transport Transport, policy models.Policy, log logging.Logger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		transport: transport,
		policy:    policy,
		log:       log,
		now:       time.Now,
		status:    StatusReady,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Validate partitions candidates against the policy. Every input lands in
// exactly one of the two result sets; rejections never halt processing of
// the remaining candidates.
func (o *Orchestrator) Validate(candidates []models.UploadCandidate) (accepted []models.UploadCandidate, rejected []Rejection) {
	for _, c := range candidates {
		switch {
		case !o.policy.Allows(c.Type):
			rejected = append(rejected, Rejection{Candidate: c, Reason: common.ErrUnsupportedType})
		case c.Size > o.policy.MaxSizeBytes:
			rejected = append(rejected, Rejection{Candidate: c, Reason: common.ErrFileTooLarge})
		default:
			accepted = append(accepted, c)
		}
	}
	return accepted, rejected
}

// Add validates candidates and queues the accepted ones onto the current
// selection. The rejections are returned for display.
func (o *Orchestrator) Add(candidates []models.UploadCandidate) []Rejection {
	accepted, rejected := o.Validate(candidates)
	o.mu.Lock()
	o.selection = append(o.selection, accepted...)
	o.mu.Unlock()
	return rejected
}

// Remove drops the selection entry at index i.
func (o *Orchestrator) Remove(i int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if i < 0 || i >= len(o.selection) {
		return fmt.Errorf("no selected file at index %d", i)
	}
	o.selection = append(o.selection[:i], o.selection[i+1:]...)
	return nil
}

// ClearSelection empties the pending selection.
func (o *Orchestrator) ClearSelection() {
	o.mu.Lock()
	o.selection = nil
	o.mu.Unlock()
}

// Selection returns a copy of the pending candidates, in queue order.
func (o *Orchestrator) Selection() []models.UploadCandidate {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.UploadCandidate, len(o.selection))
	copy(out, o.selection)
	return out
}

// History returns value copies of the upload records, most recent first.
func (o *Orchestrator) History() []models.UploadRecord {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]models.UploadRecord, len(o.history))
	for i, rec := range o.history {
		out[i] = *rec
	}
	return out
}

// Status returns the batch-level status text.
func (o *Orchestrator) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// IsUploading reports whether a batch is in flight.
func (o *Orchestrator) IsUploading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.uploading
}

// UploadAll sends the current selection to target, one file at a time. Each
// file gets a history record before its transfer starts, so history reflects
// attempts, not just completions. The batch fails fast: the first transfer
// error leaves the failed file and the unsent remainder in the selection and
// returns; a successful pass clears the selection. Re-invoking after a
// failure resumes from the still-pending files.
func (o *Orchestrator) UploadAll(ctx context.Context, target models.BucketTarget) error {
	o.mu.Lock()
	if o.uploading {
		o.mu.Unlock()
		return common.ErrUploadInProgress
	}
	if len(o.selection) == 0 {
		o.mu.Unlock()
		return common.ErrEmptySelection
	}
	o.uploading = true
	o.status = StatusUploading
	queue := make([]models.UploadCandidate, len(o.selection))
	copy(queue, o.selection)
	o.mu.Unlock()

	for _, file := range queue {
		rec := &models.UploadRecord{
			ID:          uuid.NewString(),
			Name:        file.Name,
			Size:        file.Size,
			Type:        file.Type,
			SubmittedAt: o.now(),
			Status:      models.UploadStatusUploading,
		}
		o.mu.Lock()
		o.history = append([]*models.UploadRecord{rec}, o.history...)
		o.mu.Unlock()

		err := o.transport.Upload(ctx, target, file, func(sent, total int64) {
			o.advance(rec, sent, total)
		})
		if err != nil {
			o.mu.Lock()
			// progress stays at its last reported value
			rec.Status = models.UploadStatusError
			o.status = StatusFailed
			o.uploading = false
			o.mu.Unlock()
			o.log.Error(ctx, "upload failed", "name", file.Name, "error", err)
			return fmt.Errorf("upload %s: %w", file.Name, err)
		}

		o.mu.Lock()
		rec.Status = models.UploadStatusSuccess
		rec.Progress = 100
		// pop the completed file so a later failure leaves only the
		// unsent remainder queued for retry
		if len(o.selection) > 0 && o.selection[0] == file {
			o.selection = o.selection[1:]
		}
		o.mu.Unlock()
		o.log.Info(ctx, "upload complete", "name", file.Name, "bytes", file.Size)
	}

	o.mu.Lock()
	o.selection = nil
	o.status = StatusCompleted
	o.uploading = false
	o.mu.Unlock()
	return nil
}

// advance raises the record's progress toward 100. Progress is monotonic:
// late or out-of-order callbacks never move it backwards.
func (o *Orchestrator) advance(rec *models.UploadRecord, sent, total int64) {
	if total <= 0 {
		return
	}
	pct := int(sent * 100 / total)
	if pct > 100 {
		pct = 100
	}
	o.mu.Lock()
	if pct > rec.Progress {
		rec.Progress = pct
	}
	o.mu.Unlock()
}
