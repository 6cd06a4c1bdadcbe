package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	host     string
	user     string
	password string
	port     string
	dbname   string
	sslmode  string

	poolSize    int
	maxOverflow int
	poolTimeout time.Duration
}

func (c Config) ConnStr() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.user, c.password, c.host, c.port, c.dbname, c.sslmode)
}

func NewConfig(host, user, password, port, dbname, sslmode string) Config {
	return Config{
		host:        host,
		user:        user,
		password:    password,
		port:        port,
		dbname:      dbname,
		sslmode:     sslmode,
		poolSize:    5,
		maxOverflow: 10,
		poolTimeout: 60 * time.Second,
	}
}

func (c Config) WithPool(size, maxOverflow int, timeout time.Duration) Config {
	c.poolSize = size
	c.maxOverflow = maxOverflow
	c.poolTimeout = timeout
	return c
}

func NewPool(ctx context.Context, config Config) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(config.ConnStr())
	if err != nil {
		return nil, err
	}

	cfg.MinConns = int32(config.poolSize)
	cfg.MaxConns = int32(config.poolSize + config.maxOverflow)
	cfg.ConnConfig.ConnectTimeout = config.poolTimeout

	p, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	err = p.Ping(ctx)
	if err != nil {
		return nil, err
	}

	return p, nil
}

var (
	ErrNoRows        = errors.New("no rows in result set")
	ErrTooManyRows   = errors.New("too many rows in result set")
	ErrQueryRow      = errors.New("could not execute query")
	ErrStoreFailed   = errors.New("could not store data")
	ErrNoID          = errors.New("data contains no id")
	ErrMissingTenant = errors.New("missing tenant information")
	ErrAlreadyExist  = errors.New("already exists")
	ErrDeleted       = errors.New("deleted")
)

type Storage struct {
	pool *pgxpool.Pool
}

func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

func New(ctx context.Context, config Config) (*Storage, error) {
	pool, err := NewPool(ctx, config)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// db returns the transaction bound to ctx if one is in flight,
// otherwise the shared pool.
func (s *Storage) db(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return s.pool
}

// WithinTransaction runs fn inside a single database transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
// Nested calls join the already running transaction.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = fn(context.WithValue(ctx, txKey{}, tx))
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *Storage) CreateTables(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS sensors (
			sensor_id		TEXT 	NOT NULL,
			device_id		TEXT 	NOT NULL,
			tenant			TEXT 	NOT NULL,
			kind			TEXT 	NOT NULL,
			status			TEXT 	NOT NULL DEFAULT 'active',
			battery_level	INT 	NULL,
			signal_strength	INT 	NULL,
			pipeline_id		TEXT 	NULL,
			last_reading_at	timestamp with time zone NULL,
			location 		POINT 	NULL,
			data 			JSONB	NOT NULL,
			created_on  	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted     	BOOLEAN DEFAULT FALSE,
			deleted_on  	timestamp with time zone NULL,
			CONSTRAINT pkey_sensors_unique PRIMARY KEY (sensor_id, deleted)
		);

		CREATE UNIQUE INDEX IF NOT EXISTS sensors_device_id_idx ON sensors (device_id) WHERE NOT deleted;
		CREATE INDEX IF NOT EXISTS sensors_tenant_deleted_idx ON sensors (tenant) WHERE NOT deleted;
		CREATE INDEX IF NOT EXISTS sensors_name_idx ON sensors ((data ->> 'name'));

		CREATE TABLE IF NOT EXISTS sensor_readings (
			reading_id		TEXT 	NOT NULL,
			sensor_id		TEXT 	NOT NULL,
			device_id		TEXT 	NOT NULL,
			tenant			TEXT 	NOT NULL,
			observed_at		timestamp with time zone NOT NULL,
			value			DOUBLE PRECISION NOT NULL,
			unit			TEXT 	NULL,
			quality			DOUBLE PRECISION NOT NULL DEFAULT 1.0,
			is_anomaly		BOOLEAN NOT NULL DEFAULT FALSE,
			anomaly_score	DOUBLE PRECISION NOT NULL DEFAULT 0,
			raw				JSONB 	NULL,
			created_on  	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_sensor_readings PRIMARY KEY (reading_id)
		);

		CREATE INDEX IF NOT EXISTS sensor_readings_sensor_time_idx ON sensor_readings (sensor_id, observed_at DESC);
		CREATE INDEX IF NOT EXISTS sensor_readings_tenant_idx ON sensor_readings (tenant, observed_at DESC);

		CREATE TABLE IF NOT EXISTS device_credentials (
			sensor_id			TEXT 	NOT NULL,
			device_id			TEXT 	NOT NULL,
			api_key				TEXT 	NULL,
			cert_pem			TEXT 	NULL,
			cert_fingerprint	TEXT 	NULL,
			mqtt_username		TEXT 	NULL,
			mqtt_password		TEXT 	NULL,
			active				BOOLEAN NOT NULL DEFAULT TRUE,
			expires_at			timestamp with time zone NULL,
			last_authenticated	timestamp with time zone NULL,
			created_on  		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on			timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_device_credentials PRIMARY KEY (sensor_id)
		);

		CREATE INDEX IF NOT EXISTS device_credentials_device_idx ON device_credentials (device_id);

		CREATE TABLE IF NOT EXISTS alerts (
			alert_id	TEXT 	NOT NULL,
			tenant		TEXT 	NOT NULL,
			sensor_id	TEXT 	NULL,
			kind		TEXT 	NOT NULL,
			severity	TEXT 	NOT NULL,
			status		TEXT 	NOT NULL DEFAULT 'open',
			rule_id		TEXT 	NULL,
			observed_at	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			data 		JSONB	NOT NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted     BOOLEAN DEFAULT FALSE,
			deleted_on  timestamp with time zone NULL,
			CONSTRAINT pkey_alerts_unique PRIMARY KEY (alert_id, deleted)
		);

		CREATE INDEX IF NOT EXISTS alerts_tenant_status_idx ON alerts (tenant, status) WHERE NOT deleted;
		CREATE INDEX IF NOT EXISTS alerts_sensor_idx ON alerts (sensor_id) WHERE NOT deleted;

		CREATE TABLE IF NOT EXISTS rules (
			rule_id		TEXT 	NOT NULL,
			tenant		TEXT 	NOT NULL DEFAULT '',
			kind	TEXT 	NOT NULL DEFAULT '',
			active		BOOLEAN NOT NULL DEFAULT TRUE,
			priority	INT 	NOT NULL DEFAULT 0,
			data 		JSONB	NOT NULL,
			created_on  timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted     BOOLEAN DEFAULT FALSE,
			deleted_on  timestamp with time zone NULL,
			CONSTRAINT pkey_rules_unique PRIMARY KEY (rule_id, deleted)
		);

		CREATE INDEX IF NOT EXISTS rules_tenant_idx ON rules (tenant) WHERE NOT deleted;

		CREATE TABLE IF NOT EXISTS protocol_policies (
			protocol	TEXT 	NOT NULL,
			tenant		TEXT 	NOT NULL DEFAULT '',
			enabled		BOOLEAN NOT NULL DEFAULT TRUE,
			settings	JSONB 	NULL,
			modified_on	timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_protocol_policies PRIMARY KEY (protocol, tenant)
		);

		CREATE TABLE IF NOT EXISTS audit_entries (
			entry_id		TEXT 	NOT NULL,
			actor			TEXT 	NOT NULL DEFAULT '',
			action			TEXT 	NOT NULL,
			resource_type	TEXT 	NOT NULL,
			resource_id		TEXT 	NULL,
			source_addr		TEXT 	NULL,
			user_agent		TEXT 	NULL,
			data 			JSONB	NOT NULL,
			observed_at		timestamp with time zone NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CONSTRAINT pkey_audit_entries PRIMARY KEY (entry_id)
		);

		CREATE INDEX IF NOT EXISTS audit_entries_actor_idx ON audit_entries (actor, observed_at DESC);
		CREATE INDEX IF NOT EXISTS audit_entries_resource_idx ON audit_entries (resource_type, action);
	`)
	if err != nil {
		return err
	}

	return nil
}

func (s *Storage) Close() {
	s.pool.Close()
}
