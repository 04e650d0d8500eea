package describer

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// stubS3 serves one plain bucket: no tags, no lifecycle, no encryption, no
// public access block, created in the vendor's original region.
type stubS3 struct {
	bucket  string
	created time.Time
}

func (s *stubS3) ListBuckets(_ context.Context, _ *s3.ListBucketsInput, _ ...func(*s3.Options)) (*s3.ListBucketsOutput, error) {
	return &s3.ListBucketsOutput{Buckets: []types.Bucket{
		{Name: aws.String(s.bucket), CreationDate: aws.Time(s.created)},
	}}, nil
}

func (s *stubS3) HeadBucket(_ context.Context, params *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	if aws.ToString(params.Bucket) != s.bucket {
		return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
	}
	return &s3.HeadBucketOutput{}, nil
}

func (s *stubS3) GetBucketLocation(_ context.Context, _ *s3.GetBucketLocationInput, _ ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error) {
	// Buckets in the original region report an empty constraint.
	return &s3.GetBucketLocationOutput{}, nil
}

func (s *stubS3) GetBucketTagging(_ context.Context, _ *s3.GetBucketTaggingInput, _ ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error) {
	return nil, &smithy.GenericAPIError{Code: "NoSuchTagSet", Message: "no tag set"}
}

func (s *stubS3) GetBucketVersioning(_ context.Context, _ *s3.GetBucketVersioningInput, _ ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error) {
	return &s3.GetBucketVersioningOutput{Status: types.BucketVersioningStatusEnabled}, nil
}

func (s *stubS3) GetBucketLifecycleConfiguration(_ context.Context, _ *s3.GetBucketLifecycleConfigurationInput, _ ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error) {
	return nil, &smithy.GenericAPIError{Code: "NoSuchLifecycleConfiguration", Message: "no lifecycle"}
}

func (s *stubS3) GetBucketEncryption(_ context.Context, _ *s3.GetBucketEncryptionInput, _ ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error) {
	return nil, &smithy.GenericAPIError{Code: "ServerSideEncryptionConfigurationNotFoundError", Message: "no encryption"}
}

func (s *stubS3) GetPublicAccessBlock(_ context.Context, _ *s3.GetPublicAccessBlockInput, _ ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error) {
	return nil, &smithy.GenericAPIError{Code: "NoSuchPublicAccessBlockConfiguration", Message: "no public access block"}
}

func TestListBucketsToleratesAbsentFacets(t *testing.T) {
	client := &stubS3{bucket: "assets", created: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}

	values, itemErrs, err := ListBuckets(context.Background(), client, 0)
	require.NoError(t, err)
	require.Len(t, values, 1)

	for _, itemErr := range itemErrs {
		require.NoError(t, itemErr, "a bucket with no optional configuration is not a broken bucket")
	}

	bucket := values[0]
	require.Equal(t, "arn:aws:s3:::assets", bucket.ARN)
	require.Equal(t, "us-east-1", bucket.Region, "empty location constraint is the original region")
	require.Equal(t, "Enabled", bucket.Versioning)
	require.Nil(t, bucket.Tags)
	require.Zero(t, bucket.LifecycleRules)
	require.Empty(t, bucket.Encryption)
	require.Nil(t, bucket.PublicAccessBlocked)
}

func TestGetBucketNotFound(t *testing.T) {
	client := &stubS3{bucket: "assets"}

	_, err := GetBucket(context.Background(), client, "ghost")
	require.True(t, describe.IsNotFound(err))

	value, err := GetBucket(context.Background(), client, "assets")
	require.NoError(t, err)
	require.Equal(t, "assets", value.Name)
}
