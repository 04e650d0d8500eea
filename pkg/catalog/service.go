package catalog

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"

	"github.com/kaytu-io/cloud-catalog/pkg/account"
	"github.com/kaytu-io/cloud-catalog/pkg/aws/describer"
	"github.com/kaytu-io/cloud-catalog/pkg/catalog/api"
	"github.com/kaytu-io/cloud-catalog/pkg/describe"
)

// Service is the aggregation core behind the HTTP surface: one method per
// operation, each resolving clients for the requested account and running
// the describers. Enrichment failures on individual items never fail a
// listing; they are logged and the items keep their primary data.
type Service struct {
	registry  *account.Registry
	clients   ClientSet
	logger    *zap.Logger
	batchSize int
}

func NewService(registry *account.Registry, clients ClientSet, logger *zap.Logger, batchSize int) *Service {
	if batchSize <= 0 {
		batchSize = describe.DefaultBatchSize
	}
	return &Service{
		registry:  registry,
		clients:   clients,
		logger:    logger,
		batchSize: batchSize,
	}
}

func (s *Service) ListAccounts() []api.Account {
	accounts := s.registry.List()
	values := make([]api.Account, 0, len(accounts))
	for _, acc := range accounts {
		values = append(values, accountToAPI(acc))
	}
	return values
}

func (s *Service) GetAccount(name string) (api.Account, error) {
	acc, err := s.registry.Get(name)
	if err != nil {
		return api.Account{}, err
	}
	return accountToAPI(acc), nil
}

// AccountStatus probes whether the service can currently assume into the
// account. An unreachable account is a report, not an error; only an
// unknown account name fails the call.
func (s *Service) AccountStatus(ctx context.Context, name string) (api.AccountStatus, error) {
	acc, err := s.registry.Get(name)
	if err != nil {
		return api.AccountStatus{}, err
	}

	status := api.AccountStatus{Account: acc.Name}

	client, err := s.clients.STS(ctx, acc.Name)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	identity, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		s.logger.Warn("account status probe failed",
			zap.String("account", acc.Name), zap.Error(err))
		status.Error = "credential probe failed"
		return status, nil
	}

	status.Reachable = true
	status.CallerArn = aws.ToString(identity.Arn)
	status.AccountID = aws.ToString(identity.Account)
	if status.AccountID != acc.AccountID {
		s.logger.Warn("assumed caller belongs to a different account",
			zap.String("account", acc.Name),
			zap.String("expected", acc.AccountID),
			zap.String("actual", status.AccountID))
	}
	return status, nil
}

func (s *Service) ListFunctions(ctx context.Context, account string) ([]api.Function, error) {
	client, err := s.clients.Lambda(ctx, account)
	if err != nil {
		return nil, err
	}
	values, itemErrs, err := describer.ListFunctions(ctx, client, s.batchSize)
	if err != nil {
		return nil, err
	}
	s.logItemErrs("function", account, itemErrs)
	return values, nil
}

func (s *Service) GetFunction(ctx context.Context, account, id string) (api.Function, error) {
	client, err := s.clients.Lambda(ctx, account)
	if err != nil {
		return api.Function{}, err
	}
	return describer.GetFunction(ctx, client, id)
}

func (s *Service) GetFunctionPolicy(ctx context.Context, account, id string) (api.FunctionPolicy, error) {
	client, err := s.clients.Lambda(ctx, account)
	if err != nil {
		return api.FunctionPolicy{}, err
	}
	return describer.GetFunctionPolicy(ctx, client, id)
}

func (s *Service) ListContainerClusters(ctx context.Context, account string) ([]api.ContainerCluster, error) {
	client, err := s.clients.ECS(ctx, account)
	if err != nil {
		return nil, err
	}
	return describer.ListContainerClusters(ctx, client)
}

func (s *Service) GetContainerCluster(ctx context.Context, account, id string) (api.ContainerCluster, error) {
	client, err := s.clients.ECS(ctx, account)
	if err != nil {
		return api.ContainerCluster{}, err
	}
	return describer.GetContainerCluster(ctx, client, id)
}

func (s *Service) ListContainerServices(ctx context.Context, account, cluster string) ([]api.ContainerService, error) {
	client, err := s.clients.ECS(ctx, account)
	if err != nil {
		return nil, err
	}
	return describer.ListContainerServices(ctx, client, cluster)
}

func (s *Service) ListParameters(ctx context.Context, account string) ([]api.Parameter, error) {
	client, err := s.clients.SSM(ctx, account)
	if err != nil {
		return nil, err
	}
	values, itemErrs, err := describer.ListParameters(ctx, client, s.batchSize)
	if err != nil {
		return nil, err
	}
	s.logItemErrs("parameter", account, itemErrs)
	return values, nil
}

func (s *Service) GetParameter(ctx context.Context, account, name string) (api.Parameter, error) {
	client, err := s.clients.SSM(ctx, account)
	if err != nil {
		return api.Parameter{}, err
	}
	return describer.GetParameter(ctx, client, name)
}

func (s *Service) ListSecrets(ctx context.Context, account string) ([]api.Secret, error) {
	client, err := s.clients.Secrets(ctx, account)
	if err != nil {
		return nil, err
	}
	values, itemErrs, err := describer.ListSecrets(ctx, client, s.batchSize)
	if err != nil {
		return nil, err
	}
	s.logItemErrs("secret", account, itemErrs)
	return values, nil
}

func (s *Service) GetSecret(ctx context.Context, account, id string) (api.Secret, error) {
	client, err := s.clients.Secrets(ctx, account)
	if err != nil {
		return api.Secret{}, err
	}
	return describer.GetSecret(ctx, client, id)
}

func (s *Service) ListDatabases(ctx context.Context, account string) ([]api.Database, error) {
	client, err := s.clients.RDS(ctx, account)
	if err != nil {
		return nil, err
	}
	return describer.ListDatabases(ctx, client)
}

func (s *Service) GetDatabase(ctx context.Context, account, id string) (api.Database, error) {
	client, err := s.clients.RDS(ctx, account)
	if err != nil {
		return api.Database{}, err
	}
	return describer.GetDatabase(ctx, client, id)
}

func (s *Service) ListBuckets(ctx context.Context, account string) ([]api.Bucket, error) {
	client, err := s.clients.S3(ctx, account)
	if err != nil {
		return nil, err
	}
	values, itemErrs, err := describer.ListBuckets(ctx, client, s.batchSize)
	if err != nil {
		return nil, err
	}
	s.logItemErrs("bucket", account, itemErrs)
	return values, nil
}

func (s *Service) GetBucket(ctx context.Context, account, name string) (api.Bucket, error) {
	client, err := s.clients.S3(ctx, account)
	if err != nil {
		return api.Bucket{}, err
	}
	return describer.GetBucket(ctx, client, name)
}

func (s *Service) ListRestAPIs(ctx context.Context, account string) ([]api.RestAPI, error) {
	client, err := s.clients.APIGateway(ctx, account)
	if err != nil {
		return nil, err
	}
	values, itemErrs, err := describer.ListRestAPIs(ctx, client, s.batchSize)
	if err != nil {
		return nil, err
	}
	s.logItemErrs("rest api", account, itemErrs)
	return values, nil
}

func (s *Service) GetRestAPI(ctx context.Context, account, id string) (api.RestAPI, error) {
	client, err := s.clients.APIGateway(ctx, account)
	if err != nil {
		return api.RestAPI{}, err
	}
	return describer.GetRestAPI(ctx, client, id)
}

func (s *Service) ListStages(ctx context.Context, account, restAPIID string) ([]api.Stage, error) {
	client, err := s.clients.APIGateway(ctx, account)
	if err != nil {
		return nil, err
	}
	return describer.ListStages(ctx, client, restAPIID)
}

func (s *Service) ListRepositories(ctx context.Context, account string) ([]api.Repository, error) {
	client, err := s.clients.ECR(ctx, account)
	if err != nil {
		return nil, err
	}
	values, itemErrs, err := describer.ListRepositories(ctx, client, s.batchSize)
	if err != nil {
		return nil, err
	}
	s.logItemErrs("repository", account, itemErrs)
	return values, nil
}

func (s *Service) GetRepository(ctx context.Context, account, name string) (api.Repository, error) {
	client, err := s.clients.ECR(ctx, account)
	if err != nil {
		return api.Repository{}, err
	}
	return describer.GetRepository(ctx, client, name)
}

func (s *Service) ListImages(ctx context.Context, account, repository string, max int) ([]api.Image, error) {
	client, err := s.clients.ECR(ctx, account)
	if err != nil {
		return nil, err
	}
	return describer.ListImages(ctx, client, repository, max)
}

func (s *Service) logItemErrs(kind, account string, itemErrs []error) {
	for i, err := range itemErrs {
		if err == nil {
			continue
		}
		s.logger.Warn("item enrichment failed",
			zap.String("kind", kind),
			zap.String("account", account),
			zap.Int("index", i),
			zap.Error(err))
	}
}

func accountToAPI(acc account.Account) api.Account {
	return api.Account{
		Name:      acc.Name,
		AccountID: acc.AccountID,
		Region:    acc.Region,
		RoleArn:   acc.RoleArn,
	}
}
