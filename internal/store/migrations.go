package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	category            TEXT NOT NULL DEFAULT '',
	description         TEXT NOT NULL DEFAULT '',
	price               REAL NOT NULL DEFAULT 0,
	image_url           TEXT NOT NULL DEFAULT '',
	is_trend            INTEGER NOT NULL DEFAULT 0,
	trending_percentage INTEGER NOT NULL DEFAULT 0,
	keywords            TEXT NOT NULL DEFAULT '',
	created_at          DATETIME NOT NULL,
	updated_at          DATETIME NOT NULL,
	fetched_at          DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notifications (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL,
	message      TEXT NOT NULL,
	type         TEXT NOT NULL DEFAULT 'info',
	read         INTEGER NOT NULL DEFAULT 0,
	created_at   DATETIME NOT NULL,
	action_route TEXT NOT NULL DEFAULT '',
	action_label TEXT NOT NULL DEFAULT '',
	data         TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS settings (
	id                  INTEGER PRIMARY KEY CHECK (id = 1),
	email_notifications INTEGER NOT NULL DEFAULT 1,
	push_notifications  INTEGER NOT NULL DEFAULT 1,
	trend_alerts        INTEGER NOT NULL DEFAULT 1,
	campaign_updates    INTEGER NOT NULL DEFAULT 1,
	product_updates     INTEGER NOT NULL DEFAULT 1,
	system_updates      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_products_category ON products(category);
CREATE INDEX IF NOT EXISTS idx_products_is_trend ON products(is_trend);
CREATE INDEX IF NOT EXISTS idx_notifications_read ON notifications(read);
CREATE INDEX IF NOT EXISTS idx_notifications_created ON notifications(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
