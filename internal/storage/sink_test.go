package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	apperrors "github.com/agbru/txt2pptx/internal/errors"
)

func TestSafeName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"deck.pptx", "deck.pptx", false},
		{"  deck.pptx ", "deck.pptx", false},
		{"../../etc/deck.pptx", "deck.pptx", false},
		{`..\..\deck.pptx`, "deck.pptx", false},
		{"summary", "summary.pptx", false},
		{"", "", true},
		{"..", "", true},
		{"/", "", true},
	}
	for _, tt := range tests {
		got, err := SafeName(tt.in)
		if tt.wantErr {
			var verr apperrors.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("SafeName(%q) error = %v, want ValidationError", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("SafeName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestLocalSink_Store(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "out")
	sink := NewLocalSink(dir)

	loc, err := sink.Store(context.Background(), "deck.pptx", strings.NewReader("PK-deck"))
	if err != nil {
		t.Fatalf("Store() = %v", err)
	}
	if loc != filepath.Join(dir, "deck.pptx") {
		t.Errorf("location = %q", loc)
	}
	data, err := os.ReadFile(loc)
	if err != nil || string(data) != "PK-deck" {
		t.Errorf("stored content = %q, %v", data, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the deck in %s, found %d entries", dir, len(entries))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestLocalSink_StoreFailureLeavesNothing(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	sink := NewLocalSink(dir)

	if _, err := sink.Store(context.Background(), "deck.pptx", failingReader{}); err == nil {
		t.Fatal("Store() should fail when the body fails")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("failed store left %d files behind", len(entries))
	}
}

func TestLocalSink_StoreCanceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocalSink(t.TempDir()).Store(ctx, "deck.pptx", strings.NewReader("x"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Store() error = %v, want context.Canceled", err)
	}
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	if in.Body != nil {
		data, _ := io.ReadAll(in.Body)
		f.body = string(data)
	}
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Sink_Store(t *testing.T) {
	t.Parallel()
	fake := &fakeS3{}
	sink := NewS3SinkWithClient(fake, "decks", "/team/2026/", nil)

	uri, err := sink.Store(context.Background(), "deck.pptx", strings.NewReader("PK-deck"))
	if err != nil {
		t.Fatalf("Store() = %v", err)
	}
	if uri != "s3://decks/team/2026/deck.pptx" {
		t.Errorf("uri = %q", uri)
	}
	if got := aws.ToString(fake.input.Key); got != "team/2026/deck.pptx" {
		t.Errorf("key = %q", got)
	}
	if got := aws.ToString(fake.input.ContentType); got != ContentType {
		t.Errorf("content type = %q", got)
	}
	if got := aws.ToInt64(fake.input.ContentLength); got != 7 {
		t.Errorf("content length = %d, want 7", got)
	}
	if fake.body != "PK-deck" {
		t.Errorf("body = %q", fake.body)
	}
}

func TestS3Sink_StoreError(t *testing.T) {
	t.Parallel()
	fake := &fakeS3{err: errors.New("AccessDenied")}
	sink := NewS3SinkWithClient(fake, "decks", "", nil)

	_, err := sink.Store(context.Background(), "deck.pptx", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "AccessDenied") {
		t.Errorf("Store() error = %v, want AccessDenied", err)
	}
	if got := sink.Key("deck.pptx"); got != "deck.pptx" {
		t.Errorf("Key() without prefix = %q", got)
	}
}
