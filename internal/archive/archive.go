// Package archive keeps a copy of bookings before they are purged.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// ObjectPutter is the part of the S3 client the archiver uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Archiver struct {
	client ObjectPutter
	bucket string
	now    func() time.Time
	log    *zap.Logger
}

var _ booking.Archiver = (*S3Archiver)(nil)

func NewS3Archiver(client ObjectPutter, bucket string, log *zap.Logger) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, now: time.Now, log: log}
}

// NewS3Client builds a client from static credentials. Without keys the
// client sends unsigned requests.
func NewS3Client(region, accessKey, secretKey string) *s3.Client {
	opts := s3.Options{Region: region}
	if accessKey != "" && secretKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")
	}
	return s3.New(opts)
}

type snapshot struct {
	ArchivedAt time.Time        `json:"archived_at"`
	Bookings   []models.Booking `json:"bookings"`
}

func (a *S3Archiver) Archive(ctx context.Context, bookings []models.Booking) error {
	if len(bookings) == 0 {
		return nil
	}

	now := a.now().UTC()
	body, err := json.Marshal(snapshot{ArchivedAt: now, Bookings: bookings})
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}

	key := fmt.Sprintf("bookings/%s/%s.json", now.Format("2006/01/02"), uuid.NewString())
	if _, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}

	a.log.Info("archived purged bookings", zap.String("key", key), zap.Int("count", len(bookings)))
	return nil
}

// Noop discards bookings. Used when no bucket is configured.
type Noop struct{}

func (Noop) Archive(context.Context, []models.Booking) error { return nil }
