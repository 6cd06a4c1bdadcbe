package protocols

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
)

var ErrUnknownProtocol = fmt.Errorf("unknown protocol")
var ErrPolicyNotFound = fmt.Errorf("protocol policy not found")

// Protocols a policy can be registered for. Mobile network channels (sms,
// gprs and ussd) are governed by the gsm entry.
var KnownProtocols = []string{"http", "https", "mqtt", "tcp", "lorawan", "nbiot", "gsm"}

//go:generate moq -rm -out protocols_mock.go . ProtocolPolicies
type ProtocolPolicies interface {
	IsEnabled(ctx context.Context, protocol, tenant string) (bool, error)

	Get(ctx context.Context, protocol, tenant string) (types.ProtocolPolicy, error)
	List(ctx context.Context) ([]types.ProtocolPolicy, error)
	Set(ctx context.Context, policy types.ProtocolPolicy) error
	Remove(ctx context.Context, protocol, tenant string) error
}

//go:generate moq -rm -out policystorage_mock.go . PolicyStorage
type PolicyStorage interface {
	GetProtocolPolicy(ctx context.Context, protocol, tenant string) (types.ProtocolPolicy, error)
	ListProtocolPolicies(ctx context.Context) ([]types.ProtocolPolicy, error)
	UpsertProtocolPolicy(ctx context.Context, policy types.ProtocolPolicy) error
	DeleteProtocolPolicy(ctx context.Context, protocol, tenant string) error
}

type service struct {
	storage PolicyStorage
}

func New(storage PolicyStorage) ProtocolPolicies {
	return service{storage: storage}
}

// IsEnabled resolves whether a protocol is allowed for a tenant. A tenant
// specific policy wins over a global one, and the absence of both means
// the protocol is enabled.
func (s service) IsEnabled(ctx context.Context, protocol, tenant string) (bool, error) {
	if tenant != "" {
		policy, err := s.storage.GetProtocolPolicy(ctx, protocol, tenant)
		if err == nil {
			return policy.Enabled, nil
		}
		if !errors.Is(err, storage.ErrNoRows) {
			return false, err
		}
	}

	policy, err := s.storage.GetProtocolPolicy(ctx, protocol, "")
	if err == nil {
		return policy.Enabled, nil
	}
	if !errors.Is(err, storage.ErrNoRows) {
		return false, err
	}

	return true, nil
}

func (s service) Get(ctx context.Context, protocol, tenant string) (types.ProtocolPolicy, error) {
	policy, err := s.storage.GetProtocolPolicy(ctx, protocol, tenant)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.ProtocolPolicy{}, ErrPolicyNotFound
		}
		return types.ProtocolPolicy{}, err
	}

	return policy, nil
}

func (s service) List(ctx context.Context) ([]types.ProtocolPolicy, error) {
	return s.storage.ListProtocolPolicies(ctx)
}

func (s service) Set(ctx context.Context, policy types.ProtocolPolicy) error {
	if !slices.Contains(KnownProtocols, policy.Protocol) {
		return ErrUnknownProtocol
	}

	return s.storage.UpsertProtocolPolicy(ctx, policy)
}

func (s service) Remove(ctx context.Context, protocol, tenant string) error {
	return s.storage.DeleteProtocolPolicy(ctx, protocol, tenant)
}
