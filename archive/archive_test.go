package archive

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

func TestKey(t *testing.T) {
	now := time.Date(2026, 10, 19, 14, 30, 0, 0, time.UTC)
	key := Key("equipment", "equipamento_001234_2026-10-19.pdf", now)
	pattern := regexp.MustCompile(`^equipment/2026/10/[0-9a-f-]{36}_equipamento_001234_2026-10-19\.pdf$`)
	if !pattern.MatchString(key) {
		t.Fatalf("Key = %q", key)
	}
	if other := Key("equipment", "equipamento_001234_2026-10-19.pdf", now); other == key {
		t.Error("keys should be unique")
	}
}

func TestCleanKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{"a/b.pdf", "a/b.pdf", false},
		{"a//b/./c.pdf", "a/b/c.pdf", false},
		{"", "", true},
		{".", "", true},
		{"../etc/passwd", "", true},
		{"a/../../x", "", true},
		{"/abs/path", "", true},
		{"..\\windows", "", true},
	}
	for _, tt := range tests {
		got, err := cleanKey(tt.key)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidKey) {
				t.Errorf("cleanKey(%q) error = %v, want ErrInvalidKey", tt.key, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("cleanKey(%q) = %q, %v; want %q", tt.key, got, err, tt.want)
		}
	}
}

func TestLocal(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)
	ctx := context.Background()

	n, err := store.Put(ctx, "training/2026/10/x.pdf", "application/pdf", strings.NewReader("%PDF-1.3"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != 8 {
		t.Errorf("written = %d, want 8", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "training", "2026", "10", "x.pdf")); err != nil {
		t.Fatalf("file not created: %v", err)
	}

	rc, err := store.Open(ctx, "training/2026/10/x.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF-1.3" {
		t.Errorf("content = %q", data)
	}

	if _, err := store.Open(ctx, "training/2026/10/missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing file error = %v, want ErrNotFound", err)
	}

	if _, err := store.Put(ctx, "../escape.pdf", "application/pdf", strings.NewReader("x")); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("traversal error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "escape.pdf")); err == nil {
		t.Error("file written outside the base directory")
	}
}

func TestLocalCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLocal(t.TempDir()).Put(ctx, "a.pdf", "", strings.NewReader("x")); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

type fakeS3 struct {
	put  *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if aws.ToString(in.Key) != aws.ToString(f.put.Key) {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(f.body))}, nil
}

func TestS3(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3WithClient(fake, "reports", "/hospital/", "")
	ctx := context.Background()

	n, err := store.Put(ctx, "equipment/2026/10/a.pdf", "application/pdf", strings.NewReader("%PDF"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if n != 4 {
		t.Errorf("written = %d, want 4", n)
	}
	if got := aws.ToString(fake.put.Key); got != "hospital/equipment/2026/10/a.pdf" {
		t.Errorf("key = %q", got)
	}
	if got := aws.ToString(fake.put.Bucket); got != "reports" {
		t.Errorf("bucket = %q", got)
	}
	if fake.put.ServerSideEncryption != s3types.ServerSideEncryptionAes256 {
		t.Errorf("encryption = %q", fake.put.ServerSideEncryption)
	}

	rc, err := store.Open(ctx, "equipment/2026/10/a.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "%PDF" {
		t.Errorf("content = %q", data)
	}
	if _, err := store.Open(ctx, "equipment/2026/10/missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing key error = %v, want ErrNotFound", err)
	}
}

func TestS3KMS(t *testing.T) {
	fake := &fakeS3{}
	store := NewS3WithClient(fake, "reports", "", "key-1")
	if _, err := store.Put(context.Background(), "a.pdf", "application/pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if fake.put.ServerSideEncryption != s3types.ServerSideEncryptionAwsKms {
		t.Errorf("encryption = %q", fake.put.ServerSideEncryption)
	}
	if got := aws.ToString(fake.put.SSEKMSKeyId); got != "key-1" {
		t.Errorf("kms key = %q", got)
	}
	if got := aws.ToString(fake.put.Key); got != "a.pdf" {
		t.Errorf("key = %q", got)
	}

	fake.err = errors.New("boom")
	if _, err := store.Put(context.Background(), "a.pdf", "", strings.NewReader("x")); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v", err)
	}
}
