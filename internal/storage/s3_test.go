// ABOUTME: Tests for the S3 blob backend against an in-memory fake client.
// ABOUTME: Checks key prefixing, missing objects and error propagation.
package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
	getErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("not found")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline on the request context")
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3BlobsUsesPrefix(t *testing.T) {
	fake := newFakeS3()
	s := NewS3Blobs(fake, "bikes", "backups/", 0)

	if err := s.Set(DefaultKey, []byte("{}")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if _, ok := fake.objects["bikes/backups/mtbmaint_data"]; !ok {
		t.Errorf("expected prefixed object key, have %v", fake.objects)
	}
}

func TestS3BlobsPropagatesErrors(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("access denied")
	fake.getErr = errors.New("connection reset")
	s := NewS3Blobs(fake, "bikes", "", 0)

	err := s.Set(DefaultKey, []byte("{}"))
	if err == nil || !strings.Contains(err.Error(), "access denied") {
		t.Errorf("expected put error, got %v", err)
	}

	_, err = s.Get(DefaultKey)
	if err == nil || errors.Is(err, ErrNotExist) {
		t.Errorf("expected a non-ErrNotExist get error, got %v", err)
	}
}

func TestOpenS3RequiresBucket(t *testing.T) {
	if _, err := OpenS3(context.Background(), S3Config{}); err == nil {
		t.Error("expected error without bucket")
	}
}
