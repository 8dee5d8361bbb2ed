// Package export publishes generated plans as downloadable JSON documents.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pageza/alchemorsel-mealplan/backend/config"
	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

const keyPrefix = "mealplans/"

// Exporter publishes a plan and returns where it can be downloaded.
type Exporter interface {
	Export(ctx context.Context, id string, plan *planner.WeeklyPlan) (*Result, error)
}

// Result describes an exported plan.
type Result struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ObjectPutter is the part of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Presigner is the part of the S3 presign client used for download links.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Exporter uploads plans to a bucket and hands out presigned GET URLs.
type S3Exporter struct {
	client  ObjectPutter
	presign Presigner
	bucket  string
	expiry  time.Duration
	now     func() time.Time
}

func NewS3Exporter(cfg *config.S3Config, expiry time.Duration) *S3Exporter {
	return newS3Exporter(cfg.Client, s3.NewPresignClient(cfg.Client), cfg.BucketName, expiry)
}

func newS3Exporter(client ObjectPutter, presign Presigner, bucket string, expiry time.Duration) *S3Exporter {
	return &S3Exporter{client: client, presign: presign, bucket: bucket, expiry: expiry, now: time.Now}
}

// ObjectKey is where a plan with the given id is stored.
func ObjectKey(id string) string {
	return keyPrefix + id + ".json"
}

// Export uploads the plan as indented JSON and presigns a download link.
func (e *S3Exporter) Export(ctx context.Context, id string, plan *planner.WeeklyPlan) (*Result, error) {
	body, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal plan: %w", err)
	}
	key := ObjectKey(id)

	_, err = e.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		Metadata: map[string]string{
			"seed":   fmt.Sprintf("%d", plan.Seed),
			"preset": plan.Inputs.Preset,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload plan to S3: %w", err)
	}

	presigned, err := e.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(e.expiry))
	if err != nil {
		return nil, fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return &Result{Key: key, URL: presigned.URL, ExpiresAt: e.now().Add(e.expiry)}, nil
}
