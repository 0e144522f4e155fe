package archive

import (
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

type fakePutter struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, b)
	return &s3.PutObjectOutput{}, nil
}

func TestS3ArchiverWritesSnapshot(t *testing.T) {
	putter := &fakePutter{}
	a := NewS3Archiver(putter, "purged", zap.NewNop())
	a.now = func() time.Time { return time.Date(2030, 5, 6, 3, 0, 0, 0, time.UTC) }

	err := a.Archive(context.Background(), []models.Booking{{ID: 1}, {ID: 2}})
	if err != nil {
		t.Fatal(err)
	}

	if len(putter.inputs) != 1 {
		t.Fatalf("%d puts, want 1", len(putter.inputs))
	}
	in := putter.inputs[0]
	if aws.ToString(in.Bucket) != "purged" || !strings.HasPrefix(aws.ToString(in.Key), "bookings/2030/05/06/") {
		t.Fatalf("unexpected target %s/%s", aws.ToString(in.Bucket), aws.ToString(in.Key))
	}

	var snap snapshot
	if err := json.Unmarshal(putter.bodies[0], &snap); err != nil {
		t.Fatal(err)
	}
	if len(snap.Bookings) != 2 {
		t.Fatalf("archived %d bookings", len(snap.Bookings))
	}
}

func TestS3ArchiverSkipsEmpty(t *testing.T) {
	putter := &fakePutter{}
	a := NewS3Archiver(putter, "purged", zap.NewNop())

	if err := a.Archive(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if len(putter.inputs) != 0 {
		t.Fatal("empty batch should not be uploaded")
	}
}
