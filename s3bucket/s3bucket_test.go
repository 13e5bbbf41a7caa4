package s3bucket_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/programme-lv/contactform/conf"
	"github.com/programme-lv/contactform/s3bucket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<?xml version="1.0" encoding="UTF-8"?>
<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">
  <Name>leads</Name>
  <Prefix>p/</Prefix>
  <KeyCount>1</KeyCount>
  <MaxKeys>1000</MaxKeys>
  <IsTruncated>%t</IsTruncated>%s
  <Contents><Key>%s</Key><Size>2</Size></Contents>
</ListBucketResult>`

const noSuchKey = `<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>NoSuchKey</Code>
  <Message>The specified key does not exist.</Message>
  <Key>p/missing.json</Key>
</Error>`

// fakeS3 answers the handful of path-style requests S3Bucket issues.
type fakeS3 struct {
	mu          sync.Mutex
	listCalls   int
	tokens      []string
	putHeaders  http.Header
	putObjectAt string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/leads" && r.URL.Query().Get("list-type") == "2":
		f.listCalls++
		token := r.URL.Query().Get("continuation-token")
		f.tokens = append(f.tokens, token)
		w.Header().Set("Content-Type", "application/xml")
		if token == "" {
			fmt.Fprintf(w, listPage, true, "\n  <NextContinuationToken>tok</NextContinuationToken>", "p/a.json")
			return
		}
		fmt.Fprintf(w, listPage, false, "", "p/b.json")
	case r.Method == http.MethodPut && r.URL.Path == "/leads/p/x.json":
		f.putHeaders = r.Header.Clone()
		_, _ = io.Copy(io.Discard, r.Body)
		f.putObjectAt = r.URL.Path
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && r.URL.Path == "/leads/p/missing.json":
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, noSuchKey)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func setupS3Bucket(t *testing.T) (*s3bucket.S3Bucket, *fakeS3) {
	t.Helper()
	// keep the developer's ~/.aws out of the picture
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_PROFILE", "")

	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	bucket, err := s3bucket.NewS3Bucket(context.Background(), conf.StorageConfig{
		Region:          "eu-central-1",
		Bucket:          "leads",
		Endpoint:        srv.URL,
		AccessKeyID:     "id",
		SecretAccessKey: "secret",
	})
	require.NoError(t, err)
	return bucket, fake
}

func TestS3BucketListFilesFollowsContinuationToken(t *testing.T) {
	bucket, fake := setupS3Bucket(t)

	keys, err := bucket.ListFiles(context.Background(), "p/")
	require.NoError(t, err)
	assert.Equal(t, []string{"p/a.json", "p/b.json"}, keys)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, 2, fake.listCalls)
	assert.Equal(t, []string{"", "tok"}, fake.tokens)
}

func TestS3BucketUploadSendsEncryptionAndMediaType(t *testing.T) {
	bucket, fake := setupS3Bucket(t)

	err := bucket.Upload(context.Background(), "p/x.json", []byte(`{}`), s3bucket.UploadOpts{
		MediaType: "application/json",
		Encrypt:   true,
	})
	require.NoError(t, err)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	require.NotNil(t, fake.putHeaders, "no PUT reached the server")
	assert.Equal(t, "/leads/p/x.json", fake.putObjectAt)
	assert.Equal(t, "AES256", fake.putHeaders.Get("X-Amz-Server-Side-Encryption"))
	assert.Equal(t, "application/json", fake.putHeaders.Get("Content-Type"))
}

func TestS3BucketDownloadMissingKeyIsErrNotFound(t *testing.T) {
	bucket, _ := setupS3Bucket(t)

	data, err := bucket.Download(context.Background(), "p/missing.json")
	assert.Nil(t, data)
	require.Error(t, err)
	assert.ErrorIs(t, err, s3bucket.ErrNotFound)
	assert.Contains(t, err.Error(), "p/missing.json")
}
