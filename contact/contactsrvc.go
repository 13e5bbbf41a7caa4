package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/programme-lv/contactform/logger"
	"github.com/programme-lv/contactform/s3bucket"
)

const documentMediaType = "application/json"

// Storage is the write side of the submissions bucket.
type Storage interface {
	Upload(ctx context.Context, key string, content []byte, opts s3bucket.UploadOpts) error
}

type ContactSrvc struct {
	storage  Storage
	now      func() time.Time
	randIntN func(n int) int
}

type Option func(*ContactSrvc)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ContactSrvc) { s.now = now }
}

// WithRand replaces the id suffix random source.
func WithRand(randIntN func(n int) int) Option {
	return func(s *ContactSrvc) { s.randIntN = randIntN }
}

func NewContactSrvc(storage Storage, opts ...Option) *ContactSrvc {
	s := &ContactSrvc{
		storage: storage,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SubmitParams struct {
	// Body is the decoded request body, see ParseBody.
	Body      map[string]any
	Source    string
	UserAgent string
}

// Submit validates one form submission and writes it to storage.
// Validation failures return before anything is written; storage failures
// are not retried here.
func (s *ContactSrvc) Submit(ctx context.Context, p SubmitParams) (*Record, error) {
	fields := SanitizeFields(p.Body)
	if err := Validate(fields); err != nil {
		return nil, err
	}

	key := NewSubmissionKey(s.now(), s.randIntN)
	record := &Record{
		SubmissionID: key.SubmissionID,
		FirstName:    fields.FirstName,
		LastName:     fields.LastName,
		Email:        fields.Email,
		Phone:        fields.Phone,
		CareerStage:  fields.CareerStage,
		Sport:        fields.Sport,
		Message:      fields.Message,
		Referral:     fields.Referral,
		SubmittedAt:  key.SubmittedAt,
		Source:       CleanText(p.Source),
		UserAgent:    CleanText(p.UserAgent),
	}

	doc, err := record.MarshalDocument()
	if err != nil {
		return nil, newErrStorageWriteFailed(fmt.Errorf("failed to marshal record: %w", err))
	}

	err = s.storage.Upload(ctx, key.StorageKey, doc, s3bucket.UploadOpts{
		MediaType: documentMediaType,
		Encrypt:   true,
	})
	if err != nil {
		return nil, newErrStorageWriteFailed(
			fmt.Errorf("contact form storage error, object_key=%s: %w", key.StorageKey, err))
	}

	logger.FromContext(ctx).Info("contact form submission stored",
		"submission_id", record.SubmissionID,
		"object_key", key.StorageKey)

	return record, nil
}
