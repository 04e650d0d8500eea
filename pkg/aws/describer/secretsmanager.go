package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// SecretsAPI is the slice of the Secrets Manager client the secret
// describers use.
type SecretsAPI interface {
	ListSecrets(ctx context.Context, params *secretsmanager.ListSecretsInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.ListSecretsOutput, error)
	DescribeSecret(ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.DescribeSecretOutput, error)
	GetResourcePolicy(ctx context.Context, params *secretsmanager.GetResourcePolicyInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetResourcePolicyOutput, error)
}

// ListSecrets drains secret metadata and enriches each entry with its
// resource policy. Secret values are never read.
func ListSecrets(ctx context.Context, client SecretsAPI, batchSize int) (values []api.Secret, itemErrs []error, err error) {
	entries, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[types.SecretListEntry], error) {
		output, err := client.ListSecrets(ctx, &secretsmanager.ListSecretsInput{NextToken: token})
		if err != nil {
			return describe.Page[types.SecretListEntry]{}, err
		}
		return describe.Page[types.SecretListEntry]{Items: output.SecretList, NextToken: output.NextToken}, nil
	})
	if err != nil {
		return nil, nil, err
	}

	values = make([]api.Secret, 0, len(entries))
	for _, entry := range entries {
		values = append(values, api.Secret{
			ARN:             aws.ToString(entry.ARN),
			Name:            aws.ToString(entry.Name),
			Description:     aws.ToString(entry.Description),
			KmsKeyID:        aws.ToString(entry.KmsKeyId),
			RotationEnabled: aws.ToBool(entry.RotationEnabled),
			LastChanged:     entry.LastChangedDate,
			LastAccessed:    entry.LastAccessedDate,
			Tags:            secretsTags(entry.Tags),
		})
	}

	values, itemErrs = describe.Enrich(ctx, values, batchSize, secretPolicyFacet(client))
	return values, itemErrs, nil
}

// GetSecret describes one secret by name or ARN.
func GetSecret(ctx context.Context, client SecretsAPI, id string) (api.Secret, error) {
	output, err := client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{SecretId: aws.String(id)})
	if err != nil {
		if describe.IsCode(err, "ResourceNotFoundException") {
			return api.Secret{}, &describe.NotFoundError{Kind: "secret", ID: id}
		}
		return api.Secret{}, err
	}

	value := api.Secret{
		ARN:             aws.ToString(output.ARN),
		Name:            aws.ToString(output.Name),
		Description:     aws.ToString(output.Description),
		KmsKeyID:        aws.ToString(output.KmsKeyId),
		RotationEnabled: aws.ToBool(output.RotationEnabled),
		LastChanged:     output.LastChangedDate,
		LastAccessed:    output.LastAccessedDate,
		Tags:            secretsTags(output.Tags),
	}

	enriched, err := describe.EnrichAll(ctx, []api.Secret{value}, 1, secretPolicyFacet(client))
	if err != nil {
		return api.Secret{}, err
	}
	return enriched[0], nil
}

func secretPolicyFacet(client SecretsAPI) describe.Facet[api.Secret] {
	return describe.Facet[api.Secret]{
		Name:   "policy",
		Absent: describe.AbsenceOf("ResourceNotFoundException"),
		Apply: func(ctx context.Context, secret *api.Secret) error {
			output, err := client.GetResourcePolicy(ctx, &secretsmanager.GetResourcePolicyInput{
				SecretId: aws.String(secret.ARN),
			})
			if err != nil {
				return err
			}
			secret.Policy = aws.ToString(output.ResourcePolicy)
			return nil
		},
	}
}

func secretsTags(tags []types.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return normalizeTags(out)
}
