package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/apigateway/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// APIGatewayAPI is the slice of the API Gateway client the REST API
// describers use.
type APIGatewayAPI interface {
	GetRestApis(ctx context.Context, params *apigateway.GetRestApisInput, optFns ...func(*apigateway.Options)) (*apigateway.GetRestApisOutput, error)
	GetRestApi(ctx context.Context, params *apigateway.GetRestApiInput, optFns ...func(*apigateway.Options)) (*apigateway.GetRestApiOutput, error)
	GetStages(ctx context.Context, params *apigateway.GetStagesInput, optFns ...func(*apigateway.Options)) (*apigateway.GetStagesOutput, error)
}

// ListRestAPIs drains the REST API listing and enriches each API with its
// deployed stages.
func ListRestAPIs(ctx context.Context, client APIGatewayAPI, batchSize int) (values []api.RestAPI, itemErrs []error, err error) {
	apis, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[types.RestApi], error) {
		output, err := client.GetRestApis(ctx, &apigateway.GetRestApisInput{Position: token})
		if err != nil {
			return describe.Page[types.RestApi]{}, err
		}
		return describe.Page[types.RestApi]{Items: output.Items, NextToken: output.Position}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	values = make([]api.RestAPI, 0, len(apis))
	for _, restAPI := range apis {
		values = append(values, restAPIFromItem(restAPI))
	}

	values, itemErrs = describe.Enrich(ctx, values, batchSize, stagesFacet(client))
	return values, itemErrs, nil
}

// GetRestAPI looks up one REST API by id, stages included.
func GetRestAPI(ctx context.Context, client APIGatewayAPI, id string) (api.RestAPI, error) {
	output, err := client.GetRestApi(ctx, &apigateway.GetRestApiInput{RestApiId: aws.String(id)})
	if err != nil {
		if describe.IsCode(err, "NotFoundException") {
			return api.RestAPI{}, &describe.NotFoundError{Kind: "rest api", ID: id}
		}
		return api.RestAPI{}, err
	}

	value := api.RestAPI{
		ID:          aws.ToString(output.Id),
		Name:        aws.ToString(output.Name),
		Description: aws.ToString(output.Description),
		CreatedDate: output.CreatedDate,
		Tags:        normalizeTags(output.Tags),
	}
	if output.EndpointConfiguration != nil {
		for _, t := range output.EndpointConfiguration.Types {
			value.EndpointTypes = append(value.EndpointTypes, string(t))
		}
	}

	enriched, err := describe.EnrichAll(ctx, []api.RestAPI{value}, 1, stagesFacet(client))
	if err != nil {
		return api.RestAPI{}, err
	}
	return enriched[0], nil
}

// ListStages returns the stages sub-resource of one REST API.
func ListStages(ctx context.Context, client APIGatewayAPI, restAPIID string) ([]api.Stage, error) {
	output, err := client.GetStages(ctx, &apigateway.GetStagesInput{RestApiId: aws.String(restAPIID)})
	if err != nil {
		if describe.IsCode(err, "NotFoundException") {
			return nil, &describe.NotFoundError{Kind: "rest api", ID: restAPIID}
		}
		return nil, err
	}

	values := make([]api.Stage, 0, len(output.Item))
	for _, stage := range output.Item {
		values = append(values, stageFromItem(stage))
	}
	return values, nil
}

func stagesFacet(client APIGatewayAPI) describe.Facet[api.RestAPI] {
	return describe.Facet[api.RestAPI]{
		Name:   "stages",
		Absent: describe.AbsenceOf("NotFoundException"),
		Apply: func(ctx context.Context, restAPI *api.RestAPI) error {
			output, err := client.GetStages(ctx, &apigateway.GetStagesInput{RestApiId: aws.String(restAPI.ID)})
			if err != nil {
				return err
			}
			for _, stage := range output.Item {
				restAPI.Stages = append(restAPI.Stages, stageFromItem(stage))
			}
			return nil
		},
	}
}

func restAPIFromItem(item types.RestApi) api.RestAPI {
	value := api.RestAPI{
		ID:          aws.ToString(item.Id),
		Name:        aws.ToString(item.Name),
		Description: aws.ToString(item.Description),
		CreatedDate: item.CreatedDate,
		Tags:        normalizeTags(item.Tags),
	}
	if item.EndpointConfiguration != nil {
		for _, t := range item.EndpointConfiguration.Types {
			value.EndpointTypes = append(value.EndpointTypes, string(t))
		}
	}
	return value
}

func stageFromItem(stage types.Stage) api.Stage {
	return api.Stage{
		Name:           aws.ToString(stage.StageName),
		DeploymentID:   aws.ToString(stage.DeploymentId),
		Description:    aws.ToString(stage.Description),
		CacheEnabled:   stage.CacheClusterEnabled,
		TracingEnabled: stage.TracingEnabled,
		LastUpdated:    stage.LastUpdatedDate,
		Tags:           normalizeTags(stage.Tags),
	}
}
