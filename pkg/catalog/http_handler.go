package catalog

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"

	"github.com/kaytu-io/cloud-catalog/pkg/account"
	"github.com/kaytu-io/cloud-catalog/pkg/awsauth"
)

type HttpHandler struct {
	Service *Service
	Logger  *zap.Logger
}

// InitializeHttpHandler wires the registry, broker, factory and client set
// into one handler. The STS client used for role assumption runs as the
// service's own base principal; everything downstream runs as the assumed
// roles.
func InitializeHttpHandler(
	accountsPath string,
	defaultRegion string,
	batchSize int,
	logger *zap.Logger,
) (*HttpHandler, error) {
	registry, err := account.Load(accountsPath)
	if err != nil {
		return nil, fmt.Errorf("load account registry: %w", err)
	}
	logger.Info("loaded account registry",
		zap.Int("accounts", len(registry.List())),
		zap.String("path", accountsPath))

	baseCfg, err := awsauth.BaseConfig(context.Background(), defaultRegion, "", "", "")
	if err != nil {
		return nil, fmt.Errorf("load base aws config: %w", err)
	}

	broker := awsauth.NewBroker(registry, sts.NewFromConfig(baseCfg), logger)
	factory := awsauth.NewFactory(registry, broker)
	service := NewService(registry, NewClientSet(factory), logger, batchSize)

	return &HttpHandler{Service: service, Logger: logger}, nil
}
