package protocols

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

func TestProtocolIsEnabledWhenNoPolicyExists(t *testing.T) {
	is, s := testSetup(t, nil)

	enabled, err := s.IsEnabled(context.Background(), "http", "default")

	is.NoErr(err)
	is.True(enabled)
}

func TestDisabledGlobalPolicyBlocksProtocol(t *testing.T) {
	is, s := testSetup(t, []types.ProtocolPolicy{
		{Protocol: "tcp", Tenant: "", Enabled: false},
	})

	enabled, err := s.IsEnabled(context.Background(), "tcp", "default")

	is.NoErr(err)
	is.True(!enabled)
}

func TestTenantPolicyOverridesGlobal(t *testing.T) {
	is, s := testSetup(t, []types.ProtocolPolicy{
		{Protocol: "mqtt", Tenant: "", Enabled: false},
		{Protocol: "mqtt", Tenant: "default", Enabled: true},
	})

	enabled, err := s.IsEnabled(context.Background(), "mqtt", "default")
	is.NoErr(err)
	is.True(enabled)

	// other tenants still fall back on the global policy
	enabled, err = s.IsEnabled(context.Background(), "mqtt", "other")
	is.NoErr(err)
	is.True(!enabled)
}

func TestSetRejectsUnknownProtocol(t *testing.T) {
	is, s := testSetup(t, nil)

	err := s.Set(context.Background(), types.ProtocolPolicy{Protocol: "carrier-pigeon", Enabled: true})

	is.True(errors.Is(err, ErrUnknownProtocol))
}

func TestGetReturnsNotFound(t *testing.T) {
	is, s := testSetup(t, nil)

	_, err := s.Get(context.Background(), "http", "default")

	is.True(errors.Is(err, ErrPolicyNotFound))
}

func testSetup(t *testing.T, policies []types.ProtocolPolicy) (*is.I, ProtocolPolicies) {
	is := is.New(t)

	ps := &PolicyStorageMock{
		GetProtocolPolicyFunc: func(ctx context.Context, protocol, tenant string) (types.ProtocolPolicy, error) {
			for _, p := range policies {
				if p.Protocol == protocol && p.Tenant == tenant {
					return p, nil
				}
			}
			return types.ProtocolPolicy{}, storage.ErrNoRows
		},
		UpsertProtocolPolicyFunc: func(ctx context.Context, policy types.ProtocolPolicy) error {
			return nil
		},
	}

	return is, New(ps)
}
