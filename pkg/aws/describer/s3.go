package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// S3API is the slice of the S3 client the bucket describers use.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	GetBucketTagging(ctx context.Context, params *s3.GetBucketTaggingInput, optFns ...func(*s3.Options)) (*s3.GetBucketTaggingOutput, error)
	GetBucketVersioning(ctx context.Context, params *s3.GetBucketVersioningInput, optFns ...func(*s3.Options)) (*s3.GetBucketVersioningOutput, error)
	GetBucketLifecycleConfiguration(ctx context.Context, params *s3.GetBucketLifecycleConfigurationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLifecycleConfigurationOutput, error)
	GetBucketEncryption(ctx context.Context, params *s3.GetBucketEncryptionInput, optFns ...func(*s3.Options)) (*s3.GetBucketEncryptionOutput, error)
	GetPublicAccessBlock(ctx context.Context, params *s3.GetPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error)
}

// ListBuckets lists the account's buckets and enriches each one with its
// optional facets. The vendor's bucket listing is account-global and
// unpaginated; buckets outside the account's registry region are reported
// with their real region rather than filtered out.
func ListBuckets(ctx context.Context, client S3API, batchSize int) (values []api.Bucket, itemErrs []error, err error) {
	output, err := client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, nil, err
	}

	values = make([]api.Bucket, 0, len(output.Buckets))
	for _, bucket := range output.Buckets {
		name := aws.ToString(bucket.Name)
		values = append(values, api.Bucket{
			ARN:          "arn:aws:s3:::" + name,
			Name:         name,
			CreationDate: bucket.CreationDate,
		})
	}

	values, itemErrs = describe.Enrich(ctx, values, batchSize, bucketFacets(client)...)
	return values, itemErrs, nil
}

// GetBucket probes one bucket by name and fetches its full facet set. Unlike
// the listing, a facet failure here fails the lookup.
func GetBucket(ctx context.Context, client S3API, name string) (api.Bucket, error) {
	_, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(name)})
	if err != nil {
		if describe.IsCode(err, "NotFound", "NoSuchBucket") {
			return api.Bucket{}, &describe.NotFoundError{Kind: "bucket", ID: name}
		}
		return api.Bucket{}, err
	}

	value := api.Bucket{
		ARN:  "arn:aws:s3:::" + name,
		Name: name,
	}
	enriched, err := describe.EnrichAll(ctx, []api.Bucket{value}, 1, bucketFacets(client)...)
	if err != nil {
		return api.Bucket{}, err
	}
	return enriched[0], nil
}

func bucketFacets(client S3API) []describe.Facet[api.Bucket] {
	return []describe.Facet[api.Bucket]{
		{
			Name: "location",
			Apply: func(ctx context.Context, bucket *api.Bucket) error {
				output, err := client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{Bucket: aws.String(bucket.Name)})
				if err != nil {
					return err
				}
				// The vendor reports the original region as an empty
				// constraint.
				bucket.Region = string(output.LocationConstraint)
				if bucket.Region == "" {
					bucket.Region = "us-east-1"
				}
				return nil
			},
		},
		{
			Name:   "tagging",
			Absent: describe.AbsenceOf("NoSuchTagSet"),
			Apply: func(ctx context.Context, bucket *api.Bucket) error {
				output, err := client.GetBucketTagging(ctx, &s3.GetBucketTaggingInput{Bucket: aws.String(bucket.Name)})
				if err != nil {
					return err
				}
				bucket.Tags = s3Tags(output.TagSet)
				return nil
			},
		},
		{
			Name: "versioning",
			Apply: func(ctx context.Context, bucket *api.Bucket) error {
				output, err := client.GetBucketVersioning(ctx, &s3.GetBucketVersioningInput{Bucket: aws.String(bucket.Name)})
				if err != nil {
					return err
				}
				bucket.Versioning = string(output.Status)
				return nil
			},
		},
		{
			Name:   "lifecycle",
			Absent: describe.AbsenceOf("NoSuchLifecycleConfiguration"),
			Apply: func(ctx context.Context, bucket *api.Bucket) error {
				output, err := client.GetBucketLifecycleConfiguration(ctx, &s3.GetBucketLifecycleConfigurationInput{Bucket: aws.String(bucket.Name)})
				if err != nil {
					return err
				}
				bucket.LifecycleRules = len(output.Rules)
				return nil
			},
		},
		{
			Name:   "encryption",
			Absent: describe.AbsenceOf("ServerSideEncryptionConfigurationNotFoundError"),
			Apply: func(ctx context.Context, bucket *api.Bucket) error {
				output, err := client.GetBucketEncryption(ctx, &s3.GetBucketEncryptionInput{Bucket: aws.String(bucket.Name)})
				if err != nil {
					return err
				}
				if cfg := output.ServerSideEncryptionConfiguration; cfg != nil && len(cfg.Rules) > 0 {
					if def := cfg.Rules[0].ApplyServerSideEncryptionByDefault; def != nil {
						bucket.Encryption = string(def.SSEAlgorithm)
					}
				}
				return nil
			},
		},
		{
			Name:   "public-access-block",
			Absent: describe.AbsenceOf("NoSuchPublicAccessBlockConfiguration"),
			Apply: func(ctx context.Context, bucket *api.Bucket) error {
				output, err := client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{Bucket: aws.String(bucket.Name)})
				if err != nil {
					return err
				}
				if cfg := output.PublicAccessBlockConfiguration; cfg != nil {
					blocked := aws.ToBool(cfg.BlockPublicAcls) &&
						aws.ToBool(cfg.BlockPublicPolicy) &&
						aws.ToBool(cfg.IgnorePublicAcls) &&
						aws.ToBool(cfg.RestrictPublicBuckets)
					bucket.PublicAccessBlocked = aws.Bool(blocked)
				}
				return nil
			},
		},
	}
}

func s3Tags(tags []types.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return normalizeTags(out)
}
