package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func ruleData(rule types.DynamicRule) (string, error) {
	b, err := json.Marshal(rule)
	if err != nil {
		return "", err
	}

	var m map[string]any
	err = json.Unmarshal(b, &m)
	if err != nil {
		return "", err
	}

	delete(m, "id")
	delete(m, "tenant")
	delete(m, "sensorKind")
	delete(m, "active")
	delete(m, "priority")
	delete(m, "createdOn")
	delete(m, "modifiedOn")

	b, err = json.Marshal(m)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func (s *Storage) AddRule(ctx context.Context, rule types.DynamicRule) error {
	if rule.ID == "" {
		return ErrNoID
	}

	data, err := ruleData(rule)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"rule_id":  rule.ID,
		"tenant":   rule.Tenant,
		"kind":     rule.SensorKind,
		"active":   rule.Active,
		"priority": rule.Priority,
		"data":     data,
	}

	_, err = s.db(ctx).Exec(ctx, `
		INSERT INTO rules (rule_id, tenant, kind, active, priority, data)
		VALUES (@rule_id, @tenant, @kind, @active, @priority, @data)
	`, args)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyExist
		}
		return err
	}

	return nil
}

func (s *Storage) UpdateRule(ctx context.Context, rule types.DynamicRule) error {
	data, err := ruleData(rule)
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"rule_id":  rule.ID,
		"tenant":   rule.Tenant,
		"kind":     rule.SensorKind,
		"active":   rule.Active,
		"priority": rule.Priority,
		"data":     data,
	}

	_, err = s.db(ctx).Exec(ctx, `
		UPDATE rules
		SET tenant = @tenant, kind = @kind, active = @active, priority = @priority, data = @data, modified_on = CURRENT_TIMESTAMP
		WHERE rule_id = @rule_id AND deleted = FALSE
	`, args)
	if err != nil {
		return err
	}

	return nil
}

func scanRule(row pgx.Row) (types.DynamicRule, error) {
	var ruleID, tenant, sensorKind string
	var active bool
	var priority int
	var createdOn, modifiedOn time.Time
	var data json.RawMessage
	var deleted bool

	err := row.Scan(&ruleID, &tenant, &sensorKind, &active, &priority, &data, &createdOn, &modifiedOn, &deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.DynamicRule{}, ErrNoRows
		}
		return types.DynamicRule{}, err
	}

	if deleted {
		return types.DynamicRule{}, ErrDeleted
	}

	var rule types.DynamicRule
	err = json.Unmarshal(data, &rule)
	if err != nil {
		return types.DynamicRule{}, err
	}

	rule.ID = ruleID
	rule.Tenant = tenant
	rule.SensorKind = sensorKind
	rule.Active = active
	rule.Priority = priority
	rule.CreatedOn = createdOn
	rule.ModifiedOn = modifiedOn

	return rule, nil
}

func (s *Storage) GetRule(ctx context.Context, conditions ...ConditionFunc) (types.DynamicRule, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	condition.IncludeDeleted = true

	args := condition.NamedArgs()
	where := condition.Where()

	query := fmt.Sprintf(`
		SELECT rule_id, tenant, kind, active, priority, data, created_on, modified_on, deleted
		FROM rules
		%s
		ORDER BY deleted ASC, deleted_on DESC
		LIMIT 1
	`, where)

	return scanRule(s.db(ctx).QueryRow(ctx, query, args))
}

func (s *Storage) QueryRules(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.DynamicRule], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "priority"
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var offsetLimit string

	if condition.offset != nil {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.limit != nil {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	var ruleID, tenant, sensorKind string
	var active bool
	var priority int
	var createdOn, modifiedOn time.Time
	var data json.RawMessage
	var count int64

	query := fmt.Sprintf(`
		SELECT rule_id, tenant, kind, active, priority, data, created_on, modified_on, count(*) OVER () AS count
		FROM rules
		%s
		ORDER BY %s %s, rule_id ASC
		%s
	`, where, condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.db(ctx).Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.DynamicRule]{}, err
	}

	rules := make([]types.DynamicRule, 0)

	_, err = pgx.ForEachRow(rows, []any{&ruleID, &tenant, &sensorKind, &active, &priority, &data, &createdOn, &modifiedOn, &count}, func() error {
		var rule types.DynamicRule

		err := json.Unmarshal(data, &rule)
		if err != nil {
			return err
		}

		rule.ID = ruleID
		rule.Tenant = tenant
		rule.SensorKind = sensorKind
		rule.Active = active
		rule.Priority = priority
		rule.CreatedOn = createdOn
		rule.ModifiedOn = modifiedOn

		rules = append(rules, rule)

		return nil
	})
	if err != nil {
		return types.Collection[types.DynamicRule]{}, err
	}

	return types.Collection[types.DynamicRule]{
		Data:       rules,
		Count:      uint64(len(rules)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}

// GetActiveRules returns the active rules that apply to a sensor of the
// given kind within a tenant. Rules bound to no particular tenant or kind
// match everything. The result is ordered by priority, lowest first.
func (s *Storage) GetActiveRules(ctx context.Context, tenant, kind string) ([]types.DynamicRule, error) {
	rows, err := s.db(ctx).Query(ctx, `
		SELECT rule_id, tenant, kind, active, priority, data, created_on, modified_on, count(*) OVER () AS count
		FROM rules
		WHERE deleted = FALSE AND active = TRUE
		  AND (tenant = @tenant OR tenant = '')
		  AND (kind = @kind OR kind = '')
		ORDER BY priority ASC, rule_id ASC
	`, pgx.NamedArgs{
		"tenant": tenant,
		"kind":   kind,
	})
	if err != nil {
		return nil, err
	}

	var ruleID, ruleTenant, sensorKind string
	var active bool
	var priority int
	var createdOn, modifiedOn time.Time
	var data json.RawMessage
	var count int64

	rules := make([]types.DynamicRule, 0)

	_, err = pgx.ForEachRow(rows, []any{&ruleID, &ruleTenant, &sensorKind, &active, &priority, &data, &createdOn, &modifiedOn, &count}, func() error {
		var rule types.DynamicRule

		err := json.Unmarshal(data, &rule)
		if err != nil {
			return err
		}

		rule.ID = ruleID
		rule.Tenant = ruleTenant
		rule.SensorKind = sensorKind
		rule.Active = active
		rule.Priority = priority
		rule.CreatedOn = createdOn
		rule.ModifiedOn = modifiedOn

		rules = append(rules, rule)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return rules, nil
}

func (s *Storage) DeleteRule(ctx context.Context, ruleID string) error {
	_, err := s.db(ctx).Exec(ctx, `
		UPDATE rules
		SET deleted = TRUE, deleted_on = CURRENT_TIMESTAMP
		WHERE rule_id = @rule_id AND deleted = FALSE
	`, pgx.NamedArgs{
		"rule_id": ruleID,
	})
	if err != nil {
		return err
	}

	return nil
}
