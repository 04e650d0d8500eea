package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// LambdaAPI is the slice of the Lambda client the function describers use.
type LambdaAPI interface {
	ListFunctions(ctx context.Context, params *lambda.ListFunctionsInput, optFns ...func(*lambda.Options)) (*lambda.ListFunctionsOutput, error)
	GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
	GetPolicy(ctx context.Context, params *lambda.GetPolicyInput, optFns ...func(*lambda.Options)) (*lambda.GetPolicyOutput, error)
}

// ListFunctions drains the account's function listing and enriches each
// function with its resource policy. Functions without a policy stay as-is.
// itemErrs is positionally aligned with the result; a non-nil slot means
// that function's enrichment failed and only its primary data is present.
func ListFunctions(ctx context.Context, client LambdaAPI, batchSize int) (values []api.Function, itemErrs []error, err error) {
	configs, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[types.FunctionConfiguration], error) {
		output, err := client.ListFunctions(ctx, &lambda.ListFunctionsInput{Marker: token})
		if err != nil {
			return describe.Page[types.FunctionConfiguration]{}, err
		}
		return describe.Page[types.FunctionConfiguration]{Items: output.Functions, NextToken: output.NextMarker}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	values = make([]api.Function, 0, len(configs))
	for _, cfg := range configs {
		values = append(values, functionFromConfiguration(cfg))
	}

	values, itemErrs = describe.Enrich(ctx, values, batchSize, functionPolicyFacet(client))
	return values, itemErrs, nil
}

// GetFunction looks up one function by name or ARN. A missing function is a
// NotFoundError; a missing policy is not.
func GetFunction(ctx context.Context, client LambdaAPI, name string) (api.Function, error) {
	output, err := client.GetFunction(ctx, &lambda.GetFunctionInput{FunctionName: aws.String(name)})
	if err != nil {
		if describe.IsCode(err, "ResourceNotFoundException") {
			return api.Function{}, &describe.NotFoundError{Kind: "function", ID: name}
		}
		return api.Function{}, err
	}

	value := functionFromConfiguration(*output.Configuration)
	value.Tags = normalizeTags(output.Tags)

	enriched, err := describe.EnrichAll(ctx, []api.Function{value}, 1, functionPolicyFacet(client))
	if err != nil {
		return api.Function{}, err
	}
	return enriched[0], nil
}

// GetFunctionPolicy returns the function's resource-based policy as a
// sub-resource. No policy configured is a NotFoundError here, unlike the
// listing where it is a benign absence.
func GetFunctionPolicy(ctx context.Context, client LambdaAPI, name string) (api.FunctionPolicy, error) {
	output, err := client.GetPolicy(ctx, &lambda.GetPolicyInput{FunctionName: aws.String(name)})
	if err != nil {
		if describe.IsCode(err, "ResourceNotFoundException") {
			return api.FunctionPolicy{}, &describe.NotFoundError{Kind: "function policy", ID: name}
		}
		return api.FunctionPolicy{}, err
	}
	return api.FunctionPolicy{
		Function:   name,
		Policy:     aws.ToString(output.Policy),
		RevisionID: aws.ToString(output.RevisionId),
	}, nil
}

func functionPolicyFacet(client LambdaAPI) describe.Facet[api.Function] {
	return describe.Facet[api.Function]{
		Name:   "policy",
		Absent: describe.AbsenceOf("ResourceNotFoundException"),
		Apply: func(ctx context.Context, fn *api.Function) error {
			output, err := client.GetPolicy(ctx, &lambda.GetPolicyInput{FunctionName: aws.String(fn.Name)})
			if err != nil {
				return err
			}
			fn.Policy = aws.ToString(output.Policy)
			return nil
		},
	}
}

func functionFromConfiguration(cfg types.FunctionConfiguration) api.Function {
	return api.Function{
		ARN:            aws.ToString(cfg.FunctionArn),
		Name:           aws.ToString(cfg.FunctionName),
		Runtime:        string(cfg.Runtime),
		Handler:        aws.ToString(cfg.Handler),
		Description:    aws.ToString(cfg.Description),
		MemorySizeMB:   aws.ToInt32(cfg.MemorySize),
		TimeoutSeconds: aws.ToInt32(cfg.Timeout),
		LastModified:   aws.ToString(cfg.LastModified),
	}
}
