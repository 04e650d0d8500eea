package catalog

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/apigateway"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/kaytu-io/cloud-catalog/pkg/aws/describer"
	"github.com/kaytu-io/cloud-catalog/pkg/awsauth"
)

// CallerIdentityAPI is the slice of the STS client the account status probe
// uses.
type CallerIdentityAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// ClientSet hands out vendor clients bound to an account. The production
// implementation goes through the credential broker; route tests install
// fakes.
type ClientSet interface {
	Lambda(ctx context.Context, account string) (describer.LambdaAPI, error)
	ECS(ctx context.Context, account string) (describer.ECSAPI, error)
	SSM(ctx context.Context, account string) (describer.SSMAPI, error)
	Secrets(ctx context.Context, account string) (describer.SecretsAPI, error)
	RDS(ctx context.Context, account string) (describer.RDSAPI, error)
	S3(ctx context.Context, account string) (describer.S3API, error)
	APIGateway(ctx context.Context, account string) (describer.APIGatewayAPI, error)
	ECR(ctx context.Context, account string) (describer.ECRAPI, error)
	STS(ctx context.Context, account string) (CallerIdentityAPI, error)
}

type awsClientSet struct {
	factory *awsauth.Factory
}

// NewClientSet builds the production client set on top of the factory.
func NewClientSet(factory *awsauth.Factory) ClientSet {
	return &awsClientSet{factory: factory}
}

func (c *awsClientSet) Lambda(ctx context.Context, account string) (describer.LambdaAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.LambdaAPI {
		return lambda.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) ECS(ctx context.Context, account string) (describer.ECSAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.ECSAPI {
		return ecs.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) SSM(ctx context.Context, account string) (describer.SSMAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.SSMAPI {
		return ssm.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) Secrets(ctx context.Context, account string) (describer.SecretsAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.SecretsAPI {
		return secretsmanager.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) RDS(ctx context.Context, account string) (describer.RDSAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.RDSAPI {
		return rds.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) S3(ctx context.Context, account string) (describer.S3API, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.S3API {
		return s3.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) APIGateway(ctx context.Context, account string) (describer.APIGatewayAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.APIGatewayAPI {
		return apigateway.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) ECR(ctx context.Context, account string) (describer.ECRAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) describer.ECRAPI {
		return ecr.NewFromConfig(cfg)
	})
}

func (c *awsClientSet) STS(ctx context.Context, account string) (CallerIdentityAPI, error) {
	return awsauth.NewClient(ctx, c.factory, account, func(cfg aws.Config) CallerIdentityAPI {
		return sts.NewFromConfig(cfg)
	})
}
