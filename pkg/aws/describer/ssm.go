package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// SSMAPI is the slice of the SSM client the parameter describers use.
type SSMAPI interface {
	DescribeParameters(ctx context.Context, params *ssm.DescribeParametersInput, optFns ...func(*ssm.Options)) (*ssm.DescribeParametersOutput, error)
	ListTagsForResource(ctx context.Context, params *ssm.ListTagsForResourceInput, optFns ...func(*ssm.Options)) (*ssm.ListTagsForResourceOutput, error)
}

// ListParameters drains parameter metadata and enriches each entry with its
// tags. Parameter values are never read; SecureString material stays where
// it is.
func ListParameters(ctx context.Context, client SSMAPI, batchSize int) (values []api.Parameter, itemErrs []error, err error) {
	metadata, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[types.ParameterMetadata], error) {
		output, err := client.DescribeParameters(ctx, &ssm.DescribeParametersInput{NextToken: token})
		if err != nil {
			return describe.Page[types.ParameterMetadata]{}, err
		}
		return describe.Page[types.ParameterMetadata]{Items: output.Parameters, NextToken: output.NextToken}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	values = make([]api.Parameter, 0, len(metadata))
	for _, meta := range metadata {
		values = append(values, parameterFromMetadata(meta))
	}

	values, itemErrs = describe.Enrich(ctx, values, batchSize, parameterTagsFacet(client))
	return values, itemErrs, nil
}

// GetParameter looks up one parameter by full name. DescribeParameters with
// a name filter returns an empty set for unknown names rather than an
// error.
func GetParameter(ctx context.Context, client SSMAPI, name string) (api.Parameter, error) {
	output, err := client.DescribeParameters(ctx, &ssm.DescribeParametersInput{
		ParameterFilters: []types.ParameterStringFilter{
			{
				Key:    aws.String("Name"),
				Option: aws.String("Equals"),
				Values: []string{name},
			},
		},
	})
	if err != nil {
		return api.Parameter{}, err
	}
	if len(output.Parameters) == 0 {
		return api.Parameter{}, &describe.NotFoundError{Kind: "parameter", ID: name}
	}

	value := parameterFromMetadata(output.Parameters[0])
	enriched, err := describe.EnrichAll(ctx, []api.Parameter{value}, 1, parameterTagsFacet(client))
	if err != nil {
		return api.Parameter{}, err
	}
	return enriched[0], nil
}

func parameterTagsFacet(client SSMAPI) describe.Facet[api.Parameter] {
	return describe.Facet[api.Parameter]{
		Name:   "tags",
		Absent: describe.AbsenceOf("InvalidResourceId"),
		Apply: func(ctx context.Context, param *api.Parameter) error {
			output, err := client.ListTagsForResource(ctx, &ssm.ListTagsForResourceInput{
				ResourceType: types.ResourceTypeForTaggingParameter,
				ResourceId:   aws.String(param.Name),
			})
			if err != nil {
				return err
			}
			param.Tags = ssmTags(output.TagList)
			return nil
		},
	}
}

func parameterFromMetadata(meta types.ParameterMetadata) api.Parameter {
	return api.Parameter{
		Name:         aws.ToString(meta.Name),
		Type:         string(meta.Type),
		Tier:         string(meta.Tier),
		DataType:     aws.ToString(meta.DataType),
		Description:  aws.ToString(meta.Description),
		Version:      meta.Version,
		LastModified: meta.LastModifiedDate,
	}
}

func ssmTags(tags []types.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return normalizeTags(out)
}
