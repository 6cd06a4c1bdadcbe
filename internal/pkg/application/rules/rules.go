package rules

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/google/uuid"
)

var ErrRuleNotFound = fmt.Errorf("rule not found")
var ErrRuleAlreadyExist = fmt.Errorf("rule already exists")
var ErrInvalidRule = fmt.Errorf("invalid rule")

//go:generate moq -rm -out ruleengine_mock.go . RuleEngine
type RuleEngine interface {
	Evaluate(ctx context.Context, sensor types.Sensor, reading types.SensorReading) ([]types.DynamicRule, error)

	Create(ctx context.Context, rule types.DynamicRule) (types.DynamicRule, error)
	Update(ctx context.Context, rule types.DynamicRule) error
	Delete(ctx context.Context, ruleID string) error
	Get(ctx context.Context, ruleID string, tenants []string) (types.DynamicRule, error)
	Query(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.DynamicRule], error)
}

//go:generate moq -rm -out rulestorage_mock.go . RuleStorage
type RuleStorage interface {
	AddRule(ctx context.Context, rule types.DynamicRule) error
	UpdateRule(ctx context.Context, rule types.DynamicRule) error
	DeleteRule(ctx context.Context, ruleID string) error
	GetRule(ctx context.Context, conditions ...storage.ConditionFunc) (types.DynamicRule, error)
	QueryRules(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.DynamicRule], error)
	GetActiveRules(ctx context.Context, tenant, kind string) ([]types.DynamicRule, error)
}

type service struct {
	storage RuleStorage
}

func New(storage RuleStorage) RuleEngine {
	return service{storage: storage}
}

// Evaluate returns the rules that match the reading, ordered by priority
// with the lowest value first. Rules bound to another tenant or sensor kind
// never match; unbound rules apply everywhere.
func (s service) Evaluate(ctx context.Context, sensor types.Sensor, reading types.SensorReading) ([]types.DynamicRule, error) {
	candidates, err := s.storage.GetActiveRules(ctx, sensor.Tenant, sensor.Kind.Code)
	if err != nil {
		return nil, err
	}

	matched := make([]types.DynamicRule, 0)

	for _, rule := range candidates {
		if Matches(rule, reading) {
			matched = append(matched, rule)
		}
	}

	return matched, nil
}

// Matches evaluates the rule's predicates against a reading. An empty
// predicate list never matches.
func Matches(rule types.DynamicRule, reading types.SensorReading) bool {
	if len(rule.Predicates) == 0 {
		return false
	}

	if rule.Combinator == types.CombinatorAny {
		for _, p := range rule.Predicates {
			if holds(p, reading) {
				return true
			}
		}
		return false
	}

	for _, p := range rule.Predicates {
		if !holds(p, reading) {
			return false
		}
	}

	return true
}

func holds(p types.RulePredicate, reading types.SensorReading) bool {
	switch p.Operator {
	case types.OperatorGreaterThan:
		return fieldValue(p, reading) > p.Value
	case types.OperatorLessThan:
		return fieldValue(p, reading) < p.Value
	case types.OperatorGreaterOrEqual:
		return fieldValue(p, reading) >= p.Value
	case types.OperatorLessOrEqual:
		return fieldValue(p, reading) <= p.Value
	case types.OperatorEqual:
		return fieldValue(p, reading) == p.Value
	case types.OperatorNotEqual:
		return fieldValue(p, reading) != p.Value
	case types.OperatorRange:
		v := fieldValue(p, reading)
		return v >= p.Min && v <= p.Max
	case types.OperatorChangeRate:
		return rawNumber(reading.Raw, fieldOr(p, "change_rate"), 0) > p.Value
	case types.OperatorDelta:
		return math.Abs(rawNumber(reading.Raw, fieldOr(p, "delta"), 0)) > p.Value
	}

	// unrecognized operators never match
	return false
}

func fieldValue(p types.RulePredicate, reading types.SensorReading) float64 {
	if p.Field == "" || p.Field == "value" {
		return reading.Value
	}
	return rawNumber(reading.Raw, p.Field, 0)
}

func fieldOr(p types.RulePredicate, key string) string {
	if p.Field != "" && p.Field != "value" {
		return p.Field
	}
	return key
}

// rawNumber digs a numeric value out of the untyped raw payload, falling
// back when the key is absent or not a number.
func rawNumber(raw map[string]any, key string, fallback float64) float64 {
	if raw == nil {
		return fallback
	}

	v, ok := raw[key]
	if !ok {
		return fallback
	}

	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}

	return fallback
}

func validate(rule types.DynamicRule) error {
	if rule.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRule)
	}

	if rule.Combinator != types.CombinatorAll && rule.Combinator != types.CombinatorAny {
		return fmt.Errorf("%w: unknown combinator %s", ErrInvalidRule, rule.Combinator)
	}

	if len(rule.Predicates) == 0 {
		return fmt.Errorf("%w: at least one predicate is required", ErrInvalidRule)
	}

	for _, p := range rule.Predicates {
		if p.Operator == "" {
			return fmt.Errorf("%w: predicate operator is required", ErrInvalidRule)
		}
	}

	if rule.CooldownSeconds < 0 {
		return fmt.Errorf("%w: cooldown must not be negative", ErrInvalidRule)
	}

	return nil
}

func (s service) Create(ctx context.Context, rule types.DynamicRule) (types.DynamicRule, error) {
	err := validate(rule)
	if err != nil {
		return types.DynamicRule{}, err
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}
	if rule.Combinator == "" {
		rule.Combinator = types.CombinatorAll
	}

	err = s.storage.AddRule(ctx, rule)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExist) {
			return types.DynamicRule{}, ErrRuleAlreadyExist
		}
		return types.DynamicRule{}, err
	}

	return rule, nil
}

func (s service) Update(ctx context.Context, rule types.DynamicRule) error {
	err := validate(rule)
	if err != nil {
		return err
	}

	_, err = s.storage.GetRule(ctx, storage.WithRuleID(rule.ID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) || errors.Is(err, storage.ErrDeleted) {
			return ErrRuleNotFound
		}
		return err
	}

	return s.storage.UpdateRule(ctx, rule)
}

func (s service) Delete(ctx context.Context, ruleID string) error {
	_, err := s.storage.GetRule(ctx, storage.WithRuleID(ruleID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) || errors.Is(err, storage.ErrDeleted) {
			return ErrRuleNotFound
		}
		return err
	}

	return s.storage.DeleteRule(ctx, ruleID)
}

func (s service) Get(ctx context.Context, ruleID string, tenants []string) (types.DynamicRule, error) {
	rule, err := s.storage.GetRule(ctx, storage.WithRuleID(ruleID))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) || errors.Is(err, storage.ErrDeleted) {
			return types.DynamicRule{}, ErrRuleNotFound
		}
		return types.DynamicRule{}, err
	}

	// global rules are visible to every tenant
	if rule.Tenant != "" && len(tenants) > 0 && !slices.Contains(tenants, rule.Tenant) {
		return types.DynamicRule{}, ErrRuleNotFound
	}

	return rule, nil
}

func (s service) Query(ctx context.Context, params map[string][]string, tenants []string) (types.Collection[types.DynamicRule], error) {
	conditions := storage.ParseConditions(ctx, params)

	// global rules are visible alongside the caller's own
	conditions = append(conditions, storage.WithTenants(append(slices.Clone(tenants), "")))

	return s.storage.QueryRules(ctx, conditions...)
}
