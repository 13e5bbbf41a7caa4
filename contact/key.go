package contact

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const (
	// KeyPrefix is the root of every stored submission.
	KeyPrefix = "contact-submissions"

	timestampLayout = "2006-01-02T15:04:05.000Z"
	suffixAlphabet  = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength    = 8
)

var idReplacer = strings.NewReplacer(":", "-", ".", "-")

// SubmissionKey identifies one stored submission.
type SubmissionKey struct {
	SubmittedAt  string
	SubmissionID string
	StorageKey   string
}

// NewSubmissionKey derives the timestamp, id and storage key from a single
// instant, so the partition always matches the record's own submittedAt.
// randIntN returns a value in [0, n); nil uses math/rand.
func NewSubmissionKey(at time.Time, randIntN func(n int) int) SubmissionKey {
	if randIntN == nil {
		randIntN = rand.Intn
	}
	at = at.UTC()
	submittedAt := FormatTimestamp(at)

	var suffix strings.Builder
	suffix.Grow(suffixLength)
	for i := 0; i < suffixLength; i++ {
		suffix.WriteByte(suffixAlphabet[randIntN(len(suffixAlphabet))])
	}

	id := idReplacer.Replace(submittedAt) + "-" + suffix.String()
	return SubmissionKey{
		SubmittedAt:  submittedAt,
		SubmissionID: id,
		StorageKey:   fmt.Sprintf("%s%02d/%s.json", PartitionPrefix(at.Year(), int(at.Month())), at.Day(), id),
	}
}

// FormatTimestamp renders t as ISO-8601 UTC with milliseconds and a Z suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// PartitionPrefix is the key prefix of all submissions in a calendar month.
func PartitionPrefix(year, month int) string {
	return fmt.Sprintf("%s/%d/%02d/", KeyPrefix, year, month)
}
