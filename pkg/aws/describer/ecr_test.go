package describer

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

type stubECR struct {
	repositories    []types.Repository
	images          []types.ImageDetail
	imagePageSize   int
	imageCalls      int
	lifecyclePolicy map[string]string
	tags            map[string]map[string]string
}

func (s *stubECR) DescribeRepositories(_ context.Context, params *ecr.DescribeRepositoriesInput, _ ...func(*ecr.Options)) (*ecr.DescribeRepositoriesOutput, error) {
	if len(params.RepositoryNames) == 0 {
		return &ecr.DescribeRepositoriesOutput{Repositories: s.repositories}, nil
	}
	for _, repo := range s.repositories {
		if aws.ToString(repo.RepositoryName) == params.RepositoryNames[0] {
			return &ecr.DescribeRepositoriesOutput{Repositories: []types.Repository{repo}}, nil
		}
	}
	return nil, &smithy.GenericAPIError{Code: "RepositoryNotFoundException", Message: "not found"}
}

func (s *stubECR) DescribeImages(_ context.Context, params *ecr.DescribeImagesInput, _ ...func(*ecr.Options)) (*ecr.DescribeImagesOutput, error) {
	s.imageCalls++

	start := 0
	if params.NextToken != nil {
		start = int((*params.NextToken)[0] - 'a')
	}
	end := start + s.imagePageSize
	if end > len(s.images) {
		end = len(s.images)
	}

	output := &ecr.DescribeImagesOutput{ImageDetails: s.images[start:end]}
	if end < len(s.images) {
		output.NextToken = aws.String(string(rune('a' + end)))
	}
	return output, nil
}

func (s *stubECR) GetLifecyclePolicy(_ context.Context, params *ecr.GetLifecyclePolicyInput, _ ...func(*ecr.Options)) (*ecr.GetLifecyclePolicyOutput, error) {
	if text, ok := s.lifecyclePolicy[aws.ToString(params.RepositoryName)]; ok {
		return &ecr.GetLifecyclePolicyOutput{LifecyclePolicyText: aws.String(text)}, nil
	}
	return nil, &smithy.GenericAPIError{Code: "LifecyclePolicyNotFoundException", Message: "no lifecycle policy"}
}

func (s *stubECR) GetRepositoryPolicy(_ context.Context, _ *ecr.GetRepositoryPolicyInput, _ ...func(*ecr.Options)) (*ecr.GetRepositoryPolicyOutput, error) {
	return nil, &smithy.GenericAPIError{Code: "RepositoryPolicyNotFoundException", Message: "no repository policy"}
}

func (s *stubECR) ListTagsForResource(_ context.Context, params *ecr.ListTagsForResourceInput, _ ...func(*ecr.Options)) (*ecr.ListTagsForResourceOutput, error) {
	var tags []types.Tag
	for k, v := range s.tags[aws.ToString(params.ResourceArn)] {
		tags = append(tags, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	return &ecr.ListTagsForResourceOutput{Tags: tags}, nil
}

func repoFixture(name string) types.Repository {
	return types.Repository{
		RepositoryArn:  aws.String("arn:aws:ecr:eu-west-1:111122223333:repository/" + name),
		RepositoryName: aws.String(name),
	}
}

func TestListRepositoriesToleratesMissingPolicies(t *testing.T) {
	client := &stubECR{
		repositories:    []types.Repository{repoFixture("app"), repoFixture("worker")},
		lifecyclePolicy: map[string]string{"app": `{"rules":[]}`},
		tags: map[string]map[string]string{
			"arn:aws:ecr:eu-west-1:111122223333:repository/app": {"team": "platform"},
		},
	}

	values, itemErrs, err := ListRepositories(context.Background(), client, 2)
	require.NoError(t, err)
	require.Len(t, values, 2)

	for _, itemErr := range itemErrs {
		require.NoError(t, itemErr, "absent policies are not failures")
	}

	require.Equal(t, "app", values[0].Name)
	require.NotEmpty(t, values[0].LifecyclePolicy)
	require.Equal(t, map[string]string{"team": "platform"}, values[0].Tags)

	require.Equal(t, "worker", values[1].Name)
	require.Empty(t, values[1].LifecyclePolicy)
	require.Nil(t, values[1].Tags, "empty tag set stays nil")
}

func TestGetRepositoryNotFound(t *testing.T) {
	client := &stubECR{repositories: []types.Repository{repoFixture("app")}}

	_, err := GetRepository(context.Background(), client, "missing")
	require.True(t, describe.IsNotFound(err))
}

func TestListImagesPeeksWithoutDraining(t *testing.T) {
	client := &stubECR{
		repositories:  []types.Repository{repoFixture("app")},
		imagePageSize: 2,
		images: []types.ImageDetail{
			{ImageDigest: aws.String("sha256:a")},
			{ImageDigest: aws.String("sha256:b")},
			{ImageDigest: aws.String("sha256:c")},
			{ImageDigest: aws.String("sha256:d")},
			{ImageDigest: aws.String("sha256:e")},
			{ImageDigest: aws.String("sha256:f")},
		},
	}

	images, err := ListImages(context.Background(), client, "app", 3)
	require.NoError(t, err)
	require.Len(t, images, 3)
	require.Equal(t, 2, client.imageCalls, "paging stops once the cap is covered")
	require.Equal(t, "sha256:a", images[0].Digest)
}
