package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/diwise/water-monitoring/internal/pkg/infrastructure/storage"
	"github.com/diwise/water-monitoring/pkg/types"
	"github.com/matryer/is"
)

func TestAppendFillsDefaults(t *testing.T) {
	is := is.New(t)

	s := &AuditStorageMock{
		AddAuditEntryFunc: func(ctx context.Context, entry types.AuditEntry) error {
			return nil
		},
	}

	svc := New(s)

	err := svc.Append(context.Background(), types.AuditEntry{
		Actor:        "device:device-01",
		Action:       "sensor.reading_ingested",
		ResourceType: "sensor_reading",
	})
	is.NoErr(err)

	stored := s.AddAuditEntryCalls()[0].Entry
	is.True(stored.ID != "")
	is.True(!stored.ObservedAt.IsZero())
	is.Equal(stored.Action, "sensor.reading_ingested")
}

func TestAppendKeepsProvidedValues(t *testing.T) {
	is := is.New(t)

	s := &AuditStorageMock{
		AddAuditEntryFunc: func(ctx context.Context, entry types.AuditEntry) error {
			return nil
		},
	}

	observedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

	err := New(s).Append(context.Background(), types.AuditEntry{
		ID:         "entry-01",
		Action:     "update",
		ObservedAt: observedAt,
	})
	is.NoErr(err)

	stored := s.AddAuditEntryCalls()[0].Entry
	is.Equal(stored.ID, "entry-01")
	is.Equal(stored.ObservedAt, observedAt)
}

func TestLogSwallowsStorageFailures(t *testing.T) {
	is := is.New(t)

	s := &AuditStorageMock{
		AddAuditEntryFunc: func(ctx context.Context, entry types.AuditEntry) error {
			return fmt.Errorf("the database is on fire")
		},
	}

	// must not panic or propagate
	New(s).Log(context.Background(), types.AuditEntry{Action: "sensor.reading_ingested"})

	is.Equal(len(s.AddAuditEntryCalls()), 1)
}

func TestQueryForwardsFilters(t *testing.T) {
	is := is.New(t)

	s := &AuditStorageMock{
		QueryAuditEntriesFunc: func(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.AuditEntry], error) {
			return types.Collection[types.AuditEntry]{}, nil
		},
	}

	_, err := New(s).Query(context.Background(), map[string][]string{"action": {"sensor.reading_ingested"}})
	is.NoErr(err)

	is.Equal(len(s.QueryAuditEntriesCalls()), 1)
	is.True(len(s.QueryAuditEntriesCalls()[0].Conditions) > 0)
}
