package upload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePresigner struct {
	url string
	err error
	in  *s3.PutObjectInput
}

func (f *fakePresigner) PresignPutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.in = in
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: f.url + "/" + *in.Key, Method: http.MethodPut}, nil
}

func TestS3Uploader_ObjectKey(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC))
	u := NewS3Uploader(&fakePresigner{}, S3Config{}, nil, clock)

	key := u.ObjectKey(".png")
	assert.Regexp(t, regexp.MustCompile(`^images/2026/02/03/[0-9a-f-]{36}\.png$`), key)
	assert.NotEqual(t, key, u.ObjectKey(".png"))
}

func TestS3Uploader_Upload(t *testing.T) {
	var gotPath, gotCT string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := &fakePresigner{url: srv.URL}
	u := NewS3Uploader(p, S3Config{Bucket: "folio", PublicBaseURL: "https://cdn.example/"}, srv.Client(), nil)

	url, err := u.Upload(context.Background(), File{Name: "me.png", ContentType: "image/png", Data: pngHeader})
	require.NoError(t, err)

	require.NotNil(t, p.in)
	assert.Equal(t, "folio", *p.in.Bucket)
	assert.Equal(t, "image/png", *p.in.ContentType)
	assert.Equal(t, "https://cdn.example/"+*p.in.Key, url)
	assert.Equal(t, "/"+*p.in.Key, gotPath)
	assert.Equal(t, "image/png", gotCT)
	assert.Equal(t, pngHeader, gotBody)
}

func TestS3Uploader_PresignError(t *testing.T) {
	u := NewS3Uploader(&fakePresigner{err: errors.New("no creds")}, S3Config{}, nil, nil)
	_, err := u.Upload(context.Background(), File{Name: "me.png", ContentType: "image/png", Data: pngHeader})
	require.Error(t, err)
	assert.Equal(t, MsgUploadNetwork, Message(err))
}

func TestS3Uploader_PutRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	u := NewS3Uploader(&fakePresigner{url: srv.URL}, S3Config{}, srv.Client(), nil)
	_, err := u.Upload(context.Background(), File{Name: "me.png", ContentType: "image/png", Data: pngHeader})
	require.Error(t, err)
}

func TestS3Uploader_RejectsLargeFile(t *testing.T) {
	p := &fakePresigner{}
	u := NewS3Uploader(p, S3Config{}, nil, nil)
	_, err := u.Upload(context.Background(), File{Name: "big.jpg", ContentType: "image/jpeg", Data: make([]byte, MaxSize+1)})
	require.ErrorIs(t, err, ErrTooLarge)
	assert.Nil(t, p.in)
}

func TestNewPresignClient(t *testing.T) {
	pc, err := NewPresignClient(context.Background(), S3Config{
		Region: "us-east-1", Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "b",
	})
	require.NoError(t, err)

	req, err := pc.PresignPutObject(context.Background(), &s3.PutObjectInput{
		Bucket: stringPtr("b"), Key: stringPtr("images/x.png"),
	})
	require.NoError(t, err)
	assert.Contains(t, req.URL, "http://localhost:9000/b/images/x.png")
}

func stringPtr(s string) *string { return &s }
