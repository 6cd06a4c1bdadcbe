package audit

import (
	"context"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/google/uuid"
)

//go:generate moq -rm -out auditlog_mock.go . AuditLog
type AuditLog interface {
	// Append writes an entry and reports failure to the caller.
	Append(ctx context.Context, entry types.AuditEntry) error
	// Log writes an entry on a best effort basis. Failures are logged and
	// swallowed, so a broken audit trail never takes the operation that is
	// being audited down with it.
	Log(ctx context.Context, entry types.AuditEntry)
	Query(ctx context.Context, params map[string][]string) (types.Collection[types.AuditEntry], error)
}

//go:generate moq -rm -out auditstorage_mock.go . AuditStorage
type AuditStorage interface {
	AddAuditEntry(ctx context.Context, entry types.AuditEntry) error
	QueryAuditEntries(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AuditEntry], error)
}

type service struct {
	storage AuditStorage
}

func New(storage AuditStorage) AuditLog {
	return service{storage: storage}
}

func (s service) Append(ctx context.Context, entry types.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.ObservedAt.IsZero() {
		entry.ObservedAt = time.Now().UTC()
	}

	return s.storage.AddAuditEntry(ctx, entry)
}

func (s service) Log(ctx context.Context, entry types.AuditEntry) {
	err := s.Append(ctx, entry)
	if err != nil {
		log := logging.GetFromContext(ctx)
		log.Warn("could not write audit entry", "action", entry.Action, "resource_type", entry.ResourceType, "err", err.Error())
	}
}

func (s service) Query(ctx context.Context, params map[string][]string) (types.Collection[types.AuditEntry], error) {
	return s.storage.QueryAuditEntries(ctx, storage.ParseConditions(ctx, params)...)
}
