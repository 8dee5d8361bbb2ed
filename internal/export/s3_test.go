package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/alchemorsel-mealplan/backend/internal/planner"
)

type fakeS3 struct {
	put     *s3.PutObjectInput
	body    []byte
	putErr  error
	presign *s3.GetObjectInput
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.put = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.presign = in
	return &v4.PresignedHTTPRequest{URL: "https://bucket.s3.amazonaws.com/" + *in.Key + "?X-Amz-Signature=abc", Method: "GET"}, nil
}

func TestS3ExporterExport(t *testing.T) {
	fake := &fakeS3{}
	exp := newS3Exporter(fake, fake, "plans-bucket", 15*time.Minute)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	exp.now = func() time.Time { return fixed }

	plan := &planner.WeeklyPlan{Seed: 42, Inputs: planner.Inputs{Preset: "fast", DailyP: 150}}
	res, err := exp.Export(context.Background(), "abc-123", plan)
	require.NoError(t, err)

	assert.Equal(t, "mealplans/abc-123.json", res.Key)
	assert.Contains(t, res.URL, "mealplans/abc-123.json")
	assert.Equal(t, fixed.Add(15*time.Minute), res.ExpiresAt)

	require.NotNil(t, fake.put)
	assert.Equal(t, "plans-bucket", *fake.put.Bucket)
	assert.Equal(t, "application/json", *fake.put.ContentType)
	assert.Equal(t, "42", fake.put.Metadata["seed"])
	assert.Equal(t, "plans-bucket", *fake.presign.Bucket)

	var uploaded planner.WeeklyPlan
	require.NoError(t, json.Unmarshal(fake.body, &uploaded))
	assert.Equal(t, uint64(42), uploaded.Seed)
	assert.Equal(t, 150.0, uploaded.Inputs.DailyP)
}

func TestS3ExporterUploadFailure(t *testing.T) {
	fake := &fakeS3{putErr: errors.New("access denied")}
	exp := newS3Exporter(fake, fake, "plans-bucket", time.Minute)

	_, err := exp.Export(context.Background(), "abc", &planner.WeeklyPlan{})
	assert.ErrorContains(t, err, "access denied")
	assert.Nil(t, fake.presign)
}
