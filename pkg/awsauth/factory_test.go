package awsauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kaytu-io/cloud-catalog/pkg/account"
)

func newTestFactory(t *testing.T) (*Factory, *fakeSTS, *testClock) {
	registry := testRegistry(t)
	clock := &testClock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	stsClient := &fakeSTS{now: clock.Now, lifetime: time.Hour}
	broker := NewBroker(registry, stsClient, zap.NewNop(), WithClock(clock.Now))
	return NewFactory(registry, broker), stsClient, clock
}

func TestConfigBindsAccountRegion(t *testing.T) {
	factory, _, _ := newTestFactory(t)

	cfg, err := factory.Config(context.Background(), "staging")
	require.NoError(t, err)
	require.Equal(t, "eu-west-1", cfg.Region)

	cfg, err = factory.Config(context.Background(), "production")
	require.NoError(t, err)
	require.Equal(t, "us-east-1", cfg.Region)
}

func TestConfigUnknownAccount(t *testing.T) {
	factory, _, _ := newTestFactory(t)

	_, err := factory.Config(context.Background(), "nosuch")
	require.Error(t, err)

	var unknown *account.UnknownAccountError
	require.True(t, errors.As(err, &unknown))
}

func TestProviderRetrievesOnDemand(t *testing.T) {
	factory, stsClient, clock := newTestFactory(t)

	provider := factory.provider("production")

	creds, err := provider.Retrieve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AKIDFAKE0001", creds.AccessKeyID)
	require.True(t, creds.CanExpire)
	require.Equal(t, clock.Now().Add(time.Hour), creds.Expires)
	require.Equal(t, 1, stsClient.calls)

	// A retrieval while the lease is fresh rides the cache.
	creds, err = provider.Retrieve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AKIDFAKE0001", creds.AccessKeyID)
	require.Equal(t, 1, stsClient.calls)

	// Near expiry the same provider hands out a renewed lease, so clients
	// built long ago keep working.
	clock.Advance(59*time.Minute + 30*time.Second)
	creds, err = provider.Retrieve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AKIDFAKE0002", creds.AccessKeyID)
	require.Equal(t, 2, stsClient.calls)
}

func TestProviderUnknownAccount(t *testing.T) {
	factory, stsClient, _ := newTestFactory(t)

	_, err := factory.provider("nosuch").Retrieve(context.Background())
	require.Error(t, err)

	var unknown *account.UnknownAccountError
	require.True(t, errors.As(err, &unknown))
	require.Zero(t, stsClient.calls)
}

func TestNewClient(t *testing.T) {
	factory, _, _ := newTestFactory(t)

	type regionClient struct{ region string }

	client, err := NewClient(context.Background(), factory, "staging", func(cfg aws.Config) regionClient {
		return regionClient{region: cfg.Region}
	})
	require.NoError(t, err)
	require.Equal(t, "eu-west-1", client.region)

	_, err = NewClient(context.Background(), factory, "nosuch", func(cfg aws.Config) regionClient {
		return regionClient{region: cfg.Region}
	})
	require.Error(t, err)
}

func TestBaseConfigStaticCredentials(t *testing.T) {
	cfg, err := BaseConfig(context.Background(), "us-west-2", "AKIDSTATIC", "secret", "token")
	require.NoError(t, err)
	require.Equal(t, "us-west-2", cfg.Region)

	creds, err := cfg.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	require.Equal(t, "AKIDSTATIC", creds.AccessKeyID)
	require.Equal(t, "token", creds.SessionToken)
}
