package postgres

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Patronage store (PostgreSQL).
var Migrations = migrate.NewGroup("patronage")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_patronage_counters",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patronage_counters (
    name TEXT PRIMARY KEY,
    next BIGINT NOT NULL
);

INSERT INTO patronage_counters (name, next) VALUES ('plan', 1) ON CONFLICT DO NOTHING;
INSERT INTO patronage_counters (name, next) VALUES ('subscription', 1) ON CONFLICT DO NOTHING;
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patronage_counters`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patronage_plans",
			Version: "20240101000002",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patronage_plans (
    id             BIGINT PRIMARY KEY,
    space_id       BIGINT NOT NULL,
    wallet         TEXT,
    price_amount   BIGINT NOT NULL DEFAULT 0,
    price_currency TEXT NOT NULL DEFAULT '',
    period_kind    TEXT NOT NULL DEFAULT '',
    period_blocks  BIGINT NOT NULL DEFAULT 0,
    period_key     TEXT NOT NULL DEFAULT '',
    content_kind   TEXT NOT NULL DEFAULT 'none',
    content_value  TEXT NOT NULL DEFAULT '',
    is_active      BOOLEAN NOT NULL DEFAULT TRUE,
    created_by     TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_by     TEXT,
    updated_at     TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_patronage_plans_space ON patronage_plans (space_id);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patronage_plans`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patronage_subscriptions",
			Version: "20240101000003",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patronage_subscriptions (
    id         BIGINT PRIMARY KEY,
    wallet     TEXT,
    plan_id    BIGINT NOT NULL,
    space_id   BIGINT NOT NULL,
    period_key TEXT NOT NULL DEFAULT '',
    is_active  BOOLEAN NOT NULL DEFAULT TRUE,
    created_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_by TEXT,
    updated_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_patronage_subs_patron ON patronage_subscriptions (created_by);
CREATE INDEX IF NOT EXISTS idx_patronage_subs_space ON patronage_subscriptions (space_id);
CREATE INDEX IF NOT EXISTS idx_patronage_subs_period ON patronage_subscriptions (period_key);
CREATE INDEX IF NOT EXISTS idx_patronage_subs_patron_plan ON patronage_subscriptions (created_by, plan_id, is_active);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patronage_subscriptions`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patronage_wallets",
			Version: "20240101000004",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patronage_space_wallets (
    space_id BIGINT PRIMARY KEY,
    wallet   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS patronage_patron_wallets (
    patron TEXT PRIMARY KEY,
    wallet TEXT NOT NULL
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
DROP TABLE IF EXISTS patronage_space_wallets;
DROP TABLE IF EXISTS patronage_patron_wallets;
`)
				return err
			},
		},
		&migrate.Migration{
			Name:    "create_patronage_payments",
			Version: "20240101000005",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS patronage_payments (
    id              TEXT PRIMARY KEY,
    subscription_id BIGINT NOT NULL,
    plan_id         BIGINT NOT NULL,
    payer           TEXT NOT NULL DEFAULT '',
    recipient       TEXT NOT NULL DEFAULT '',
    amount          BIGINT NOT NULL DEFAULT 0,
    currency        TEXT NOT NULL DEFAULT '',
    settled_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_patronage_payments_sub ON patronage_payments (subscription_id);
CREATE INDEX IF NOT EXISTS idx_patronage_payments_payer ON patronage_payments (payer);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS patronage_payments`)
				return err
			},
		},
	)
}
