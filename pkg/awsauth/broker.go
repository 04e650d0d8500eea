package awsauth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"

	"github.com/kaytu-io/cloud-catalog/pkg/account"
)

// freshnessMargin is how much remaining lifetime a cached lease must have to
// be handed out; anything closer to expiry is renewed first.
const freshnessMargin = time.Minute

// sessionDuration is the lifetime requested for every assumed-role session.
const sessionDuration = time.Hour

// AssumeRoleAPI is the slice of the STS client the broker needs.
type AssumeRoleAPI interface {
	AssumeRole(ctx context.Context, params *sts.AssumeRoleInput, optFns ...func(*sts.Options)) (*sts.AssumeRoleOutput, error)
}

// Lease is one set of temporary credentials for an account. Leases are
// values: renewal produces a new lease and never mutates an issued one.
type Lease struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	ExpiresAt       time.Time
}

// AssumeRoleError reports a failed credential exchange for an account.
type AssumeRoleError struct {
	Account string
	Err     error
}

func (e *AssumeRoleError) Error() string {
	return fmt.Sprintf("assume role for account %q: %v", e.Account, e.Err)
}

func (e *AssumeRoleError) Unwrap() error { return e.Err }

// Broker exchanges registry entries for temporary credentials and caches one
// lease per account. Concurrent resolutions for the same account may both
// reach STS near expiry; the last write wins, which is harmless because
// every issued lease is valid for its full lifetime.
type Broker struct {
	registry *account.Registry
	sts      AssumeRoleAPI
	logger   *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	leases map[string]Lease
}

type BrokerOption func(*Broker)

// WithClock overrides the broker's time source.
func WithClock(now func() time.Time) BrokerOption {
	return func(b *Broker) { b.now = now }
}

func NewBroker(registry *account.Registry, stsClient AssumeRoleAPI, logger *zap.Logger, opts ...BrokerOption) *Broker {
	b := &Broker{
		registry: registry,
		sts:      stsClient,
		logger:   logger,
		now:      time.Now,
		leases:   make(map[string]Lease),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Resolve returns a lease for the account that stays valid for at least the
// freshness margin, exchanging through STS when the cached one is missing or
// too close to expiry.
func (b *Broker) Resolve(ctx context.Context, accountName string) (Lease, error) {
	acc, err := b.registry.Get(accountName)
	if err != nil {
		return Lease{}, err
	}

	if lease, ok := b.cached(acc.Name); ok {
		leaseCacheHits.WithLabelValues(acc.Name).Inc()
		return lease, nil
	}

	lease, err := b.exchange(ctx, acc)
	if err != nil {
		return Lease{}, err
	}

	b.mu.Lock()
	b.leases[acc.Name] = lease
	b.mu.Unlock()

	return lease, nil
}

func (b *Broker) cached(accountName string) (Lease, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	lease, ok := b.leases[accountName]
	if !ok {
		return Lease{}, false
	}
	if !lease.ExpiresAt.After(b.now().Add(freshnessMargin)) {
		return Lease{}, false
	}
	return lease, true
}

func (b *Broker) exchange(ctx context.Context, acc account.Account) (Lease, error) {
	input := &sts.AssumeRoleInput{
		RoleArn:         aws.String(acc.RoleArn),
		RoleSessionName: aws.String(sessionName(acc.Name, b.now())),
		DurationSeconds: aws.Int32(int32(sessionDuration.Seconds())),
	}
	if acc.ExternalID != nil {
		input.ExternalId = acc.ExternalID
	}

	output, err := b.sts.AssumeRole(ctx, input)
	if err != nil {
		leaseExchanges.WithLabelValues(acc.Name, "error").Inc()
		return Lease{}, &AssumeRoleError{Account: acc.Name, Err: err}
	}
	if output.Credentials == nil {
		leaseExchanges.WithLabelValues(acc.Name, "error").Inc()
		return Lease{}, &AssumeRoleError{Account: acc.Name, Err: errors.New("response carried no credentials")}
	}
	leaseExchanges.WithLabelValues(acc.Name, "ok").Inc()

	creds := output.Credentials
	lease := Lease{
		AccessKeyID:     aws.ToString(creds.AccessKeyId),
		SecretAccessKey: aws.ToString(creds.SecretAccessKey),
		SessionToken:    aws.ToString(creds.SessionToken),
		ExpiresAt:       aws.ToTime(creds.Expiration),
	}

	b.logger.Debug("assumed role",
		zap.String("account", acc.Name),
		zap.Time("expires_at", lease.ExpiresAt))

	return lease, nil
}

// sessionName derives the RoleSessionName recorded in the vendor's audit
// trail. The timestamp keeps concurrent processes distinguishable.
func sessionName(accountName string, now time.Time) string {
	return fmt.Sprintf("%s-%d", accountName, now.Unix())
}
