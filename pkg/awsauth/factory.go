package awsauth

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/kaytu-io/cloud-catalog/pkg/account"
)

// Factory builds region-bound aws.Configs whose credentials provider pulls a
// lease from the broker at retrieval time, so long-lived clients never pin a
// session that has meanwhile been renewed.
type Factory struct {
	registry *account.Registry
	broker   *Broker
}

func NewFactory(registry *account.Registry, broker *Broker) *Factory {
	return &Factory{registry: registry, broker: broker}
}

// Config returns an aws.Config bound to the account's registry region. No
// credentials are resolved here; the SDK asks the broker on demand.
func (f *Factory) Config(ctx context.Context, accountName string) (aws.Config, error) {
	acc, err := f.registry.Get(accountName)
	if err != nil {
		return aws.Config{}, err
	}

	return config.LoadDefaultConfig(ctx,
		config.WithRegion(acc.Region),
		config.WithCredentialsProvider(f.provider(acc.Name)),
	)
}

func (f *Factory) provider(accountName string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		lease, err := f.broker.Resolve(ctx, accountName)
		if err != nil {
			return aws.Credentials{}, err
		}
		return aws.Credentials{
			AccessKeyID:     lease.AccessKeyID,
			SecretAccessKey: lease.SecretAccessKey,
			SessionToken:    lease.SessionToken,
			CanExpire:       true,
			Expires:         lease.ExpiresAt,
			Source:          "CredentialsBroker",
		}, nil
	})
}

// NewClient builds a vendor SDK client for the account through the factory,
// e.g. NewClient(ctx, f, "production", func(cfg aws.Config) *lambda.Client {
// return lambda.NewFromConfig(cfg) }).
func NewClient[T any](ctx context.Context, f *Factory, accountName string, build func(aws.Config) T) (T, error) {
	cfg, err := f.Config(ctx, accountName)
	if err != nil {
		var zero T
		return zero, err
	}
	return build(cfg), nil
}

// BaseConfig is the config for the broker's own STS client: explicit static
// credentials when provided, otherwise the ambient default chain.
func BaseConfig(ctx context.Context, region, accessKey, secretKey, sessionToken string) (aws.Config, error) {
	opts := []func(*config.LoadOptions) error{}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if accessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, sessionToken)))
	}
	return config.LoadDefaultConfig(ctx, opts...)
}
