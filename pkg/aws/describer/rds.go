package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/rds/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// RDSAPI is the slice of the RDS client the database describers use.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rds.DescribeDBInstancesInput, optFns ...func(*rds.Options)) (*rds.DescribeDBInstancesOutput, error)
}

// ListDatabases drains the account's database instances. Tags ride along in
// the describe output, so no enrichment pass is needed.
func ListDatabases(ctx context.Context, client RDSAPI) ([]api.Database, error) {
	instances, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[types.DBInstance], error) {
		output, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{Marker: token})
		if err != nil {
			return describe.Page[types.DBInstance]{}, err
		}
		return describe.Page[types.DBInstance]{Items: output.DBInstances, NextToken: output.Marker}, nil
	})
	if err != nil {
		return nil, err
	}

	values := make([]api.Database, 0, len(instances))
	for _, instance := range instances {
		values = append(values, databaseFromInstance(instance))
	}
	return values, nil
}

// GetDatabase looks up one database instance by identifier.
func GetDatabase(ctx context.Context, client RDSAPI, id string) (api.Database, error) {
	output, err := client.DescribeDBInstances(ctx, &rds.DescribeDBInstancesInput{
		DBInstanceIdentifier: aws.String(id),
	})
	if err != nil {
		if describe.IsCode(err, "DBInstanceNotFound", "DBInstanceNotFoundFault") {
			return api.Database{}, &describe.NotFoundError{Kind: "database", ID: id}
		}
		return api.Database{}, err
	}
	if len(output.DBInstances) == 0 {
		return api.Database{}, &describe.NotFoundError{Kind: "database", ID: id}
	}
	return databaseFromInstance(output.DBInstances[0]), nil
}

func databaseFromInstance(instance types.DBInstance) api.Database {
	value := api.Database{
		ARN:                aws.ToString(instance.DBInstanceArn),
		Identifier:         aws.ToString(instance.DBInstanceIdentifier),
		Engine:             aws.ToString(instance.Engine),
		EngineVersion:      aws.ToString(instance.EngineVersion),
		Status:             aws.ToString(instance.DBInstanceStatus),
		InstanceClass:      aws.ToString(instance.DBInstanceClass),
		AllocatedStorageGB: aws.ToInt32(instance.AllocatedStorage),
		MultiAZ:            aws.ToBool(instance.MultiAZ),
		Tags:               rdsTags(instance.TagList),
	}
	if instance.Endpoint != nil {
		value.Endpoint = aws.ToString(instance.Endpoint.Address)
		value.Port = aws.ToInt32(instance.Endpoint.Port)
	}
	return value
}

func rdsTags(tags []types.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return normalizeTags(out)
}
