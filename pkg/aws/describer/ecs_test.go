package describer

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecs"
	"github.com/aws/aws-sdk-go-v2/service/ecs/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"

	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

type stubECS struct {
	clusters    []types.Cluster
	serviceArns []string

	describeServiceCalls  int
	describeServiceSizes  []int
	unknownClusterOnList  bool
	listServicesPageSize  int
	describeClusterInputs []*ecs.DescribeClustersInput
}

func (s *stubECS) ListClusters(_ context.Context, params *ecs.ListClustersInput, _ ...func(*ecs.Options)) (*ecs.ListClustersOutput, error) {
	arns := make([]string, 0, len(s.clusters))
	for _, cluster := range s.clusters {
		arns = append(arns, aws.ToString(cluster.ClusterArn))
	}
	return &ecs.ListClustersOutput{ClusterArns: arns}, nil
}

func (s *stubECS) DescribeClusters(_ context.Context, params *ecs.DescribeClustersInput, _ ...func(*ecs.Options)) (*ecs.DescribeClustersOutput, error) {
	s.describeClusterInputs = append(s.describeClusterInputs, params)

	output := &ecs.DescribeClustersOutput{}
	for _, want := range params.Clusters {
		found := false
		for _, cluster := range s.clusters {
			if aws.ToString(cluster.ClusterArn) == want || aws.ToString(cluster.ClusterName) == want {
				output.Clusters = append(output.Clusters, cluster)
				found = true
			}
		}
		if !found {
			output.Failures = append(output.Failures, types.Failure{
				Arn:    aws.String(want),
				Reason: aws.String("MISSING"),
			})
		}
	}
	return output, nil
}

func (s *stubECS) ListServices(_ context.Context, params *ecs.ListServicesInput, _ ...func(*ecs.Options)) (*ecs.ListServicesOutput, error) {
	if s.unknownClusterOnList {
		return nil, &smithy.GenericAPIError{Code: "ClusterNotFoundException", Message: "cluster not found"}
	}

	size := s.listServicesPageSize
	if size <= 0 {
		size = len(s.serviceArns)
	}
	start := 0
	if params.NextToken != nil {
		fmt.Sscanf(*params.NextToken, "%d", &start)
	}
	end := start + size
	if end > len(s.serviceArns) {
		end = len(s.serviceArns)
	}

	output := &ecs.ListServicesOutput{ServiceArns: s.serviceArns[start:end]}
	if end < len(s.serviceArns) {
		output.NextToken = aws.String(fmt.Sprintf("%d", end))
	}
	return output, nil
}

func (s *stubECS) DescribeServices(_ context.Context, params *ecs.DescribeServicesInput, _ ...func(*ecs.Options)) (*ecs.DescribeServicesOutput, error) {
	s.describeServiceCalls++
	s.describeServiceSizes = append(s.describeServiceSizes, len(params.Services))

	output := &ecs.DescribeServicesOutput{}
	for _, arn := range params.Services {
		output.Services = append(output.Services, types.Service{
			ServiceArn:  aws.String(arn),
			ServiceName: aws.String(arn),
			ClusterArn:  params.Cluster,
		})
	}
	return output, nil
}

func clusterFixture(name string, tags []types.Tag) types.Cluster {
	return types.Cluster{
		ClusterArn:  aws.String("arn:aws:ecs:eu-west-1:111122223333:cluster/" + name),
		ClusterName: aws.String(name),
		Status:      aws.String("ACTIVE"),
		Tags:        tags,
	}
}

func TestListContainerClusters(t *testing.T) {
	client := &stubECS{
		clusters: []types.Cluster{
			clusterFixture("core", []types.Tag{{Key: aws.String("team"), Value: aws.String("platform")}}),
			clusterFixture("batch", nil),
		},
	}

	values, err := ListContainerClusters(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.Equal(t, "core", values[0].Name)
	require.Equal(t, map[string]string{"team": "platform"}, values[0].Tags)
	require.Nil(t, values[1].Tags, "empty tag set stays nil")
}

func TestGetContainerClusterMissing(t *testing.T) {
	client := &stubECS{clusters: []types.Cluster{clusterFixture("core", nil)}}

	// The vendor reports an unknown cluster as a MISSING failure entry,
	// not an API error.
	_, err := GetContainerCluster(context.Background(), client, "ghost")
	require.True(t, describe.IsNotFound(err))

	value, err := GetContainerCluster(context.Background(), client, "core")
	require.NoError(t, err)
	require.Equal(t, "core", value.Name)
}

func TestListContainerServicesChunksDescribes(t *testing.T) {
	arns := make([]string, 25)
	for i := range arns {
		arns[i] = fmt.Sprintf("arn:aws:ecs:eu-west-1:111122223333:service/core/svc-%02d", i)
	}
	client := &stubECS{
		clusters:             []types.Cluster{clusterFixture("core", nil)},
		serviceArns:          arns,
		listServicesPageSize: 10,
	}

	values, err := ListContainerServices(context.Background(), client, "core")
	require.NoError(t, err)
	require.Len(t, values, 25)
	require.Equal(t, 3, client.describeServiceCalls)
	require.Equal(t, []int{10, 10, 5}, client.describeServiceSizes, "describes stay under the vendor's 10-ARN cap")

	for i, svc := range values {
		require.Equal(t, arns[i], svc.ARN, "input order is preserved")
	}
}

func TestListContainerServicesUnknownCluster(t *testing.T) {
	client := &stubECS{unknownClusterOnList: true}

	_, err := ListContainerServices(context.Background(), client, "ghost")
	require.True(t, describe.IsNotFound(err))
}
