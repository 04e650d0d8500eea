package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// DefaultImagePeek caps the images sub-resource listing when the caller
// does not ask for a specific amount.
const DefaultImagePeek = 100

// ECRAPI is the slice of the ECR client the repository describers use.
type ECRAPI interface {
	DescribeRepositories(ctx context.Context, params *ecr.DescribeRepositoriesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error)
	DescribeImages(ctx context.Context, params *ecr.DescribeImagesInput, optFns ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error)
	GetLifecyclePolicy(ctx context.Context, params *ecr.GetLifecyclePolicyInput, optFns ...func(*ecr.Options)) (*ecr.GetLifecyclePolicyOutput, error)
	GetRepositoryPolicy(ctx context.Context, params *ecr.GetRepositoryPolicyInput, optFns ...func(*ecr.Options)) (*ecr.GetRepositoryPolicyOutput, error)
	ListTagsForResource(ctx context.Context, params *ecr.ListTagsForResourceInput, optFns ...func(*ecr.Options)) (*ecr.ListTagsForResourceOutput, error)
}

// ListRepositories drains the repository listing and enriches each
// repository with its lifecycle policy, resource policy and tags. A
// repository with neither policy configured is the common case, not an
// error.
func ListRepositories(ctx context.Context, client ECRAPI, batchSize int) (values []api.Repository, itemErrs []error, err error) {
	repos, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[types.Repository], error) {
		output, err := client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{NextToken: token})
		if err != nil {
			return describe.Page[types.Repository]{}, err
		}
		return describe.Page[types.Repository]{Items: output.Repositories, NextToken: output.NextToken}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	values = make([]api.Repository, 0, len(repos))
	for _, repo := range repos {
		values = append(values, repositoryFromDescription(repo))
	}

	values, itemErrs = describe.Enrich(ctx, values, batchSize, repositoryFacets(client)...)
	return values, itemErrs, nil
}

// GetRepository looks up one repository by name, policies and tags
// included.
func GetRepository(ctx context.Context, client ECRAPI, name string) (api.Repository, error) {
	output, err := client.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RepositoryNames: []string{name},
	})
	if err != nil {
		if describe.IsCode(err, "RepositoryNotFoundException") {
			return api.Repository{}, &describe.NotFoundError{Kind: "repository", ID: name}
		}
		return api.Repository{}, err
	}
	if len(output.Repositories) == 0 {
		return api.Repository{}, &describe.NotFoundError{Kind: "repository", ID: name}
	}

	value := repositoryFromDescription(output.Repositories[0])
	enriched, err := describe.EnrichAll(ctx, []api.Repository{value}, 1, repositoryFacets(client)...)
	if err != nil {
		return api.Repository{}, err
	}
	return enriched[0], nil
}

// ListImages is a peek-style listing of a repository's images: paging stops
// as soon as max images are collected instead of draining what may be a
// very deep push history.
func ListImages(ctx context.Context, client ECRAPI, repository string, max int) ([]api.Image, error) {
	if max <= 0 {
		max = DefaultImagePeek
	}

	details, err := describe.CollectN(ctx, max, func(ctx context.Context, token *string) (describe.Page[types.ImageDetail], error) {
		output, err := client.DescribeImages(ctx, &ecr.DescribeImagesInput{
			RepositoryName: aws.String(repository),
			NextToken:      token,
		})
		if err != nil {
			return describe.Page[types.ImageDetail]{}, err
		}
		return describe.Page[types.ImageDetail]{Items: output.ImageDetails, NextToken: output.NextToken}, nil
	})
	if err != nil {
		if describe.IsCode(err, "RepositoryNotFoundException") {
			return nil, &describe.NotFoundError{Kind: "repository", ID: repository}
		}
		return nil, err
	}

	values := make([]api.Image, 0, len(details))
	for _, detail := range details {
		values = append(values, api.Image{
			Digest:    aws.ToString(detail.ImageDigest),
			Tags:      detail.ImageTags,
			SizeBytes: aws.ToInt64(detail.ImageSizeInBytes),
			PushedAt:  detail.ImagePushedAt,
		})
	}
	return values, nil
}

func repositoryFacets(client ECRAPI) []describe.Facet[api.Repository] {
	return []describe.Facet[api.Repository]{
		{
			Name:   "lifecycle-policy",
			Absent: describe.AbsenceOf("LifecyclePolicyNotFoundException"),
			Apply: func(ctx context.Context, repo *api.Repository) error {
				output, err := client.GetLifecyclePolicy(ctx, &ecr.GetLifecyclePolicyInput{
					RepositoryName: aws.String(repo.Name),
				})
				if err != nil {
					return err
				}
				repo.LifecyclePolicy = aws.ToString(output.LifecyclePolicyText)
				return nil
			},
		},
		{
			Name:   "repository-policy",
			Absent: describe.AbsenceOf("RepositoryPolicyNotFoundException"),
			Apply: func(ctx context.Context, repo *api.Repository) error {
				output, err := client.GetRepositoryPolicy(ctx, &ecr.GetRepositoryPolicyInput{
					RepositoryName: aws.String(repo.Name),
				})
				if err != nil {
					return err
				}
				repo.Policy = aws.ToString(output.PolicyText)
				return nil
			},
		},
		{
			Name: "tags",
			Apply: func(ctx context.Context, repo *api.Repository) error {
				output, err := client.ListTagsForResource(ctx, &ecr.ListTagsForResourceInput{
					ResourceArn: aws.String(repo.ARN),
				})
				if err != nil {
					return err
				}
				repo.Tags = ecrTags(output.Tags)
				return nil
			},
		},
	}
}

func repositoryFromDescription(repo types.Repository) api.Repository {
	value := api.Repository{
		ARN:                aws.ToString(repo.RepositoryArn),
		Name:               aws.ToString(repo.RepositoryName),
		URI:                aws.ToString(repo.RepositoryUri),
		CreatedAt:          repo.CreatedAt,
		ImageTagMutability: string(repo.ImageTagMutability),
	}
	if repo.ImageScanningConfiguration != nil {
		value.ScanOnPush = repo.ImageScanningConfiguration.ScanOnPush
	}
	return value
}

func ecrTags(tags []types.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return normalizeTags(out)
}
