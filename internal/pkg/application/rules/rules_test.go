package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

func TestOperators(t *testing.T) {
	is := is.New(t)

	r := types.SensorReading{Value: 5.0}

	testcases := []struct {
		predicate types.RulePredicate
		expected  bool
	}{
		{types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 4.0}, true},
		{types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 5.0}, false},
		{types.RulePredicate{Operator: types.OperatorLessThan, Value: 6.0}, true},
		{types.RulePredicate{Operator: types.OperatorLessThan, Value: 5.0}, false},
		{types.RulePredicate{Operator: types.OperatorGreaterOrEqual, Value: 5.0}, true},
		{types.RulePredicate{Operator: types.OperatorLessOrEqual, Value: 5.0}, true},
		{types.RulePredicate{Operator: types.OperatorEqual, Value: 5.0}, true},
		{types.RulePredicate{Operator: types.OperatorNotEqual, Value: 5.0}, false},
		{types.RulePredicate{Operator: types.OperatorNotEqual, Value: 4.0}, true},
		{types.RulePredicate{Operator: types.OperatorRange, Min: 4.0, Max: 6.0}, true},
		{types.RulePredicate{Operator: types.OperatorRange, Min: 5.5, Max: 6.0}, false},
		{types.RulePredicate{Operator: "teleport", Value: 5.0}, false},
	}

	for _, tc := range testcases {
		rule := singlePredicateRule(tc.predicate)
		is.Equal(Matches(rule, r), tc.expected)
	}
}

func TestPredicateFieldReadsFromRawPayload(t *testing.T) {
	is := is.New(t)

	r := types.SensorReading{
		Value: 5.0,
		Raw:   map[string]any{"temperature": 18.5},
	}

	rule := singlePredicateRule(types.RulePredicate{Field: "temperature", Operator: types.OperatorGreaterThan, Value: 18.0})
	is.True(Matches(rule, r))

	// absent fields read as zero instead of failing
	rule = singlePredicateRule(types.RulePredicate{Field: "salinity", Operator: types.OperatorGreaterThan, Value: 1.0})
	is.True(!Matches(rule, r))
}

func TestChangeRateAndDeltaOperators(t *testing.T) {
	is := is.New(t)

	r := types.SensorReading{
		Value: 5.0,
		Raw:   map[string]any{"change_rate": 2.5, "delta": -3.0},
	}

	is.True(Matches(singlePredicateRule(types.RulePredicate{Operator: types.OperatorChangeRate, Value: 2.0}), r))
	is.True(!Matches(singlePredicateRule(types.RulePredicate{Operator: types.OperatorChangeRate, Value: 3.0}), r))

	// delta compares magnitude
	is.True(Matches(singlePredicateRule(types.RulePredicate{Operator: types.OperatorDelta, Value: 2.0}), r))
	is.True(!Matches(singlePredicateRule(types.RulePredicate{Operator: types.OperatorDelta, Value: 3.5}), r))
}

func TestCombinators(t *testing.T) {
	is := is.New(t)

	r := types.SensorReading{Value: 5.0}

	hit := types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 1.0}
	miss := types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 10.0}

	all := types.DynamicRule{Combinator: types.CombinatorAll, Predicates: []types.RulePredicate{hit, miss}}
	is.True(!Matches(all, r))

	either := types.DynamicRule{Combinator: types.CombinatorAny, Predicates: []types.RulePredicate{hit, miss}}
	is.True(Matches(either, r))
}

func TestEmptyPredicateListNeverMatches(t *testing.T) {
	is := is.New(t)

	rule := types.DynamicRule{Combinator: types.CombinatorAll}
	is.True(!Matches(rule, types.SensorReading{Value: 5.0}))
}

func TestEvaluateReturnsMatchingRules(t *testing.T) {
	is := is.New(t)

	active := []types.DynamicRule{
		newRule("rule-01", types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 4.0}),
		newRule("rule-02", types.RulePredicate{Operator: types.OperatorLessThan, Value: 4.0}),
		newRule("rule-03", types.RulePredicate{Operator: types.OperatorRange, Min: 0.0, Max: 10.0}),
	}

	engine := New(&RuleStorageMock{
		GetActiveRulesFunc: func(ctx context.Context, tenant, kind string) ([]types.DynamicRule, error) {
			return active, nil
		},
	})

	matched, err := engine.Evaluate(context.Background(), types.Sensor{Tenant: "default"}, types.SensorReading{Value: 5.0})

	is.NoErr(err)
	is.Equal(len(matched), 2)
	is.Equal(matched[0].ID, "rule-01")
	is.Equal(matched[1].ID, "rule-03")
}

func TestCreateValidatesTheRule(t *testing.T) {
	is := is.New(t)

	engine := New(&RuleStorageMock{
		AddRuleFunc: func(ctx context.Context, rule types.DynamicRule) error {
			return nil
		},
	})

	_, err := engine.Create(context.Background(), types.DynamicRule{Combinator: types.CombinatorAll})
	is.True(errors.Is(err, ErrInvalidRule))

	_, err = engine.Create(context.Background(), types.DynamicRule{
		Name:       "no predicates",
		Combinator: types.CombinatorAll,
	})
	is.True(errors.Is(err, ErrInvalidRule))

	created, err := engine.Create(context.Background(), types.DynamicRule{
		Name:       "high level",
		Combinator: types.CombinatorAll,
		Predicates: []types.RulePredicate{{Operator: types.OperatorGreaterThan, Value: 4.0}},
	})
	is.NoErr(err)
	is.True(created.ID != "")
}

func TestUpdateUnknownRuleFails(t *testing.T) {
	is := is.New(t)

	engine := New(&RuleStorageMock{
		GetRuleFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.DynamicRule, error) {
			return types.DynamicRule{}, storage.ErrNoRows
		},
	})

	err := engine.Update(context.Background(), newRule("rule-00", types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 4.0}))
	is.True(errors.Is(err, ErrRuleNotFound))

	err = engine.Delete(context.Background(), "rule-00")
	is.True(errors.Is(err, ErrRuleNotFound))
}

func TestGetHidesRulesFromOtherTenants(t *testing.T) {
	is := is.New(t)

	engine := New(&RuleStorageMock{
		GetRuleFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.DynamicRule, error) {
			r := newRule("rule-01", types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 4.0})
			r.Tenant = "other"
			return r, nil
		},
	})

	_, err := engine.Get(context.Background(), "rule-01", []string{"default"})
	is.True(errors.Is(err, ErrRuleNotFound))

	_, err = engine.Get(context.Background(), "rule-01", []string{"default", "other"})
	is.NoErr(err)
}

func TestGlobalRulesAreVisibleToEveryTenant(t *testing.T) {
	is := is.New(t)

	engine := New(&RuleStorageMock{
		GetRuleFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.DynamicRule, error) {
			return newRule("rule-01", types.RulePredicate{Operator: types.OperatorGreaterThan, Value: 4.0}), nil
		},
	})

	_, err := engine.Get(context.Background(), "rule-01", []string{"default"})
	is.NoErr(err)
}

func singlePredicateRule(p types.RulePredicate) types.DynamicRule {
	return types.DynamicRule{
		ID:         "rule-01",
		Name:       "test rule",
		Combinator: types.CombinatorAll,
		Predicates: []types.RulePredicate{p},
		Active:     true,
	}
}

func newRule(id string, p types.RulePredicate) types.DynamicRule {
	return types.DynamicRule{
		ID:            id,
		Name:          id,
		Combinator:    types.CombinatorAll,
		Predicates:    []types.RulePredicate{p},
		AlertKind:     types.AlertKindCustom,
		AlertSeverity: types.SeverityMedium,
		Active:        true,
	}
}
