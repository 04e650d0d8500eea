package describer

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"

	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// Vendor hard caps on ARNs per describe call.
const (
	describeClustersLimit = 100
	describeServicesLimit = 10
)

// ECSAPI is the slice of the ECS client the container describers use.
type ECSAPI interface {
	ListClusters(ctx context.Context, params *ecs.ListClustersInput, optFns ...func(*ecs.Options)) (*ecs.ListClustersOutput, error)
	DescribeClusters(ctx context.Context, params *ecs.DescribeClustersInput, optFns ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error)
	ListServices(ctx context.Context, params *ecs.ListServicesInput, optFns ...func(*ecs.Options)) (*ecs.ListServicesOutput, error)
	DescribeServices(ctx context.Context, params *ecs.DescribeServicesInput, optFns ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error)
}

// ListContainerClusters lists every cluster ARN, then describes them with
// tags included. DescribeClusters reports unknown ARNs through its failure
// list rather than an error, so a listing cannot race itself into a failure
// when a cluster is deleted mid-collection; such clusters are skipped.
func ListContainerClusters(ctx context.Context, client ECSAPI) ([]api.ContainerCluster, error) {
	arns, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[string], error) {
		output, err := client.ListClusters(ctx, &ecs.ListClustersInput{NextToken: token})
		if err != nil {
			return describe.Page[string]{}, err
		}
		return describe.Page[string]{Items: output.ClusterArns, NextToken: output.NextToken}, nil
	})
	if err != nil {
		return nil, err
	}

	values := make([]api.ContainerCluster, 0, len(arns))
	for start := 0; start < len(arns); start += describeClustersLimit {
		end := start + describeClustersLimit
		if end > len(arns) {
			end = len(arns)
		}

		output, err := client.DescribeClusters(ctx, &ecs.DescribeClustersInput{
			Clusters: arns[start:end],
			Include:  []types.ClusterField{types.ClusterFieldTags},
		})
		if err != nil {
			return nil, err
		}
		for _, cluster := range output.Clusters {
			values = append(values, clusterFromDescription(cluster))
		}
	}
	return values, nil
}

// GetContainerCluster describes one cluster by name or ARN. The vendor
// reports a missing cluster as a MISSING entry in the failure list, not as
// an error.
func GetContainerCluster(ctx context.Context, client ECSAPI, name string) (api.ContainerCluster, error) {
	output, err := client.DescribeClusters(ctx, &ecs.DescribeClustersInput{
		Clusters: []string{name},
		Include:  []types.ClusterField{types.ClusterFieldTags},
	})
	if err != nil {
		return api.ContainerCluster{}, err
	}
	if len(output.Clusters) == 0 {
		return api.ContainerCluster{}, &describe.NotFoundError{Kind: "container cluster", ID: name}
	}
	return clusterFromDescription(output.Clusters[0]), nil
}

// ListContainerServices lists and describes the services of one cluster,
// chunked by the vendor's DescribeServices input limit.
func ListContainerServices(ctx context.Context, client ECSAPI, cluster string) ([]api.ContainerService, error) {
	arns, err := describe.Collect(ctx, func(ctx context.Context, token *string) (describe.Page[string], error) {
		output, err := client.ListServices(ctx, &ecs.ListServicesInput{
			Cluster:   aws.String(cluster),
			NextToken: token,
		})
		if err != nil {
			return describe.Page[string]{}, err
		}
		return describe.Page[string]{Items: output.ServiceArns, NextToken: output.NextToken}, nil
	})
	if err != nil {
		if describe.IsCode(err, "ClusterNotFoundException") {
			return nil, &describe.NotFoundError{Kind: "container cluster", ID: cluster}
		}
		return nil, err
	}

	values := make([]api.ContainerService, 0, len(arns))
	for start := 0; start < len(arns); start += describeServicesLimit {
		end := start + describeServicesLimit
		if end > len(arns) {
			end = len(arns)
		}

		output, err := client.DescribeServices(ctx, &ecs.DescribeServicesInput{
			Cluster:  aws.String(cluster),
			Services: arns[start:end],
			Include:  []types.ServiceField{types.ServiceFieldTags},
		})
		if err != nil {
			return nil, err
		}
		for _, svc := range output.Services {
			values = append(values, api.ContainerService{
				ARN:            aws.ToString(svc.ServiceArn),
				Name:           aws.ToString(svc.ServiceName),
				ClusterARN:     aws.ToString(svc.ClusterArn),
				Status:         aws.ToString(svc.Status),
				LaunchType:     string(svc.LaunchType),
				TaskDefinition: aws.ToString(svc.TaskDefinition),
				DesiredCount:   svc.DesiredCount,
				RunningCount:   svc.RunningCount,
				PendingCount:   svc.PendingCount,
				Tags:           ecsTags(svc.Tags),
			})
		}
	}
	return values, nil
}

func clusterFromDescription(cluster types.Cluster) api.ContainerCluster {
	return api.ContainerCluster{
		ARN:                          aws.ToString(cluster.ClusterArn),
		Name:                         aws.ToString(cluster.ClusterName),
		Status:                       aws.ToString(cluster.Status),
		RunningTasks:                 cluster.RunningTasksCount,
		PendingTasks:                 cluster.PendingTasksCount,
		ActiveServices:               cluster.ActiveServicesCount,
		RegisteredContainerInstances: cluster.RegisteredContainerInstancesCount,
		Tags:                         ecsTags(cluster.Tags),
	}
}

func ecsTags(tags []types.Tag) map[string]string {
	out := make(map[string]string, len(tags))
	for _, tag := range tags {
		out[aws.ToString(tag.Key)] = aws.ToString(tag.Value)
	}
	return normalizeTags(out)
}
