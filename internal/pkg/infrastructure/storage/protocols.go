package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) UpsertProtocolPolicy(ctx context.Context, policy types.ProtocolPolicy) error {
	if policy.Protocol == "" {
		return ErrNoID
	}

	var settings *string
	if policy.Settings != nil {
		b, err := json.Marshal(policy.Settings)
		if err != nil {
			return err
		}
		v := string(b)
		settings = &v
	}

	_, err := s.db(ctx).Exec(ctx, `
		INSERT INTO protocol_policies (protocol, tenant, enabled, settings)
		VALUES (@protocol, @tenant, @enabled, @settings)
		ON CONFLICT (protocol, tenant) DO UPDATE
		SET enabled = EXCLUDED.enabled, settings = EXCLUDED.settings, modified_on = CURRENT_TIMESTAMP
	`, pgx.NamedArgs{
		"protocol": policy.Protocol,
		"tenant":   policy.Tenant,
		"enabled":  policy.Enabled,
		"settings": settings,
	})
	if err != nil {
		return err
	}

	return nil
}

func scanProtocolPolicy(row pgx.Row) (types.ProtocolPolicy, error) {
	var protocol, tenant string
	var enabled bool
	var settings json.RawMessage
	var modifiedOn time.Time

	err := row.Scan(&protocol, &tenant, &enabled, &settings, &modifiedOn)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.ProtocolPolicy{}, ErrNoRows
		}
		return types.ProtocolPolicy{}, err
	}

	policy := types.ProtocolPolicy{
		Protocol:   protocol,
		Tenant:     tenant,
		Enabled:    enabled,
		ModifiedOn: modifiedOn,
	}

	if settings != nil {
		err = json.Unmarshal(settings, &policy.Settings)
		if err != nil {
			return types.ProtocolPolicy{}, err
		}
	}

	return policy, nil
}

func (s *Storage) GetProtocolPolicy(ctx context.Context, protocol, tenant string) (types.ProtocolPolicy, error) {
	return scanProtocolPolicy(s.db(ctx).QueryRow(ctx, `
		SELECT protocol, tenant, enabled, settings, modified_on
		FROM protocol_policies
		WHERE protocol = @protocol AND tenant = @tenant
	`, pgx.NamedArgs{
		"protocol": protocol,
		"tenant":   tenant,
	}))
}

func (s *Storage) ListProtocolPolicies(ctx context.Context) ([]types.ProtocolPolicy, error) {
	rows, err := s.db(ctx).Query(ctx, `
		SELECT protocol, tenant, enabled, settings, modified_on
		FROM protocol_policies
		ORDER BY protocol ASC, tenant ASC
	`)
	if err != nil {
		return nil, err
	}

	var protocol, tenant string
	var enabled bool
	var settings json.RawMessage
	var modifiedOn time.Time

	policies := make([]types.ProtocolPolicy, 0)

	_, err = pgx.ForEachRow(rows, []any{&protocol, &tenant, &enabled, &settings, &modifiedOn}, func() error {
		policy := types.ProtocolPolicy{
			Protocol:   protocol,
			Tenant:     tenant,
			Enabled:    enabled,
			ModifiedOn: modifiedOn,
		}

		if settings != nil {
			err := json.Unmarshal(settings, &policy.Settings)
			if err != nil {
				return err
			}
		}

		policies = append(policies, policy)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return policies, nil
}

func (s *Storage) DeleteProtocolPolicy(ctx context.Context, protocol, tenant string) error {
	_, err := s.db(ctx).Exec(ctx, `
		DELETE FROM protocol_policies
		WHERE protocol = @protocol AND tenant = @tenant
	`, pgx.NamedArgs{
		"protocol": protocol,
		"tenant":   tenant,
	})
	if err != nil {
		return err
	}

	return nil
}
