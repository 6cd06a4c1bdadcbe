package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) AddAuditEntry(ctx context.Context, entry types.AuditEntry) error {
	if entry.ID == "" {
		return ErrNoID
	}

	data, err := json.Marshal(map[string]any{
		"description": entry.Description,
		"changes":     entry.Changes,
		"meta":        entry.Meta,
	})
	if err != nil {
		return err
	}

	args := pgx.NamedArgs{
		"entry_id":      entry.ID,
		"actor":         entry.Actor,
		"action":        entry.Action,
		"resource_type": entry.ResourceType,
		"resource_id":   entry.ResourceID,
		"source_addr":   entry.SourceAddr,
		"user_agent":    entry.UserAgent,
		"data":          string(data),
		"observed_at":   entry.ObservedAt.UTC(),
	}

	_, err = s.db(ctx).Exec(ctx, `
		INSERT INTO audit_entries (entry_id, actor, action, resource_type, resource_id, source_addr, user_agent, data, observed_at)
		VALUES (@entry_id, @actor, @action, @resource_type, @resource_id, @source_addr, @user_agent, @data, @observed_at)
	`, args)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) QueryAuditEntries(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.AuditEntry], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "observed_at"
		condition.sortOrder = "DESC"
	}

	condition.IncludeDeleted = true // audit entries are never deleted

	args := condition.NamedArgs()
	where := condition.Where()

	var offsetLimit string

	if condition.offset != nil {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.limit != nil {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	var entryID, actor, action, resourceType string
	var resourceID, sourceAddr, userAgent *string
	var data json.RawMessage
	var observedAt time.Time
	var count int64

	query := fmt.Sprintf(`
		SELECT entry_id, actor, action, resource_type, resource_id, source_addr, user_agent, data, observed_at, count(*) OVER () AS count
		FROM audit_entries
		%s
		ORDER BY %s %s
		%s
	`, where, condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.db(ctx).Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.AuditEntry]{}, err
	}

	entries := make([]types.AuditEntry, 0)

	_, err = pgx.ForEachRow(rows, []any{&entryID, &actor, &action, &resourceType, &resourceID, &sourceAddr, &userAgent, &data, &observedAt, &count}, func() error {
		entry := types.AuditEntry{
			ID:           entryID,
			Actor:        actor,
			Action:       action,
			ResourceType: resourceType,
			ObservedAt:   observedAt,
		}

		if resourceID != nil {
			entry.ResourceID = *resourceID
		}
		if sourceAddr != nil {
			entry.SourceAddr = *sourceAddr
		}
		if userAgent != nil {
			entry.UserAgent = *userAgent
		}

		var details struct {
			Description string         `json:"description"`
			Changes     map[string]any `json:"changes"`
			Meta        map[string]any `json:"meta"`
		}

		err := json.Unmarshal(data, &details)
		if err != nil {
			return err
		}

		entry.Description = details.Description
		entry.Changes = details.Changes
		entry.Meta = details.Meta

		entries = append(entries, entry)

		return nil
	})
	if err != nil {
		return types.Collection[types.AuditEntry]{}, err
	}

	return types.Collection[types.AuditEntry]{
		Data:       entries,
		Count:      uint64(len(entries)),
		Limit:      uint64(condition.Limit()),
		Offset:     uint64(condition.Offset()),
		TotalCount: uint64(count),
	}, nil
}
