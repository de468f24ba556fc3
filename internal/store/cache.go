package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nvelasco/trendboard/internal/model"
)

// Cache is a local SQLite database that persists the last-known product
// snapshot, the notification feed, and the delivery settings across
// restarts. It backs the stale-but-available policy: the dashboard can
// render cached data while the product API is unreachable.
type Cache struct {
	db *sqlx.DB
}

// OpenCache opens (or creates) a SQLite database at dbPath, enables WAL
// mode, and runs any pending schema migrations.
func OpenCache(dbPath string) (*Cache, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	c := &Cache{db: db}
	if err := c.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return c, nil
}

// Close closes the underlying database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (c *Cache) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := c.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = c.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := c.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// ReplaceProducts overwrites the cached product snapshot with the given
// collection inside a single transaction.
func (c *Cache) ReplaceProducts(ctx context.Context, products []model.Product) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM products"); err != nil {
		return fmt.Errorf("clearing product snapshot: %w", err)
	}

	const query = `
		INSERT INTO products (
			id, name, category, description, price,
			image_url, is_trend, trending_percentage, keywords,
			created_at, updated_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	stmt, err := tx.PreparexContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, p := range products {
		_, err = stmt.ExecContext(ctx,
			p.ID, p.Name, p.Category, p.Description, p.Price,
			p.ImageURL, boolToInt(p.IsTrend), p.TrendingPercentage, p.Keywords,
			p.CreatedAt.UTC(), p.UpdatedAt.UTC(), now,
		)
		if err != nil {
			return fmt.Errorf("caching product %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

// UpsertProduct inserts or replaces a single cached product.
func (c *Cache) UpsertProduct(ctx context.Context, p model.Product) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO products (
			id, name, category, description, price,
			image_url, is_trend, trending_percentage, keywords,
			created_at, updated_at, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Category, p.Description, p.Price,
		p.ImageURL, boolToInt(p.IsTrend), p.TrendingPercentage, p.Keywords,
		p.CreatedAt.UTC(), p.UpdatedAt.UTC(), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("caching product %s: %w", p.ID, err)
	}
	return nil
}

// DeleteProduct removes a cached product by ID.
func (c *Cache) DeleteProduct(ctx context.Context, id string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting cached product %s: %w", id, err)
	}
	return nil
}

// GetProducts retrieves the cached product snapshot.
func (c *Cache) GetProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := c.db.QueryxContext(ctx,
		"SELECT * FROM products ORDER BY created_at",
	)
	if err != nil {
		return nil, fmt.Errorf("querying cached products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// SaveNotification inserts a notification record.
func (c *Cache) SaveNotification(ctx context.Context, n model.Notification) error {
	data, err := json.Marshal(n.Data)
	if err != nil {
		return fmt.Errorf("marshaling notification data: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO notifications (
			id, title, message, type, read, created_at,
			action_route, action_label, data
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, string(n.Type), boolToInt(n.Read),
		n.CreatedAt.UTC(), n.ActionRoute, n.ActionLabel, string(data),
	)
	if err != nil {
		return fmt.Errorf("saving notification %s: %w", n.ID, err)
	}
	return nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Cache) MarkNotificationRead(ctx context.Context, id string) error {
	_, err := c.db.ExecContext(ctx,
		"UPDATE notifications SET read = 1 WHERE id = ?", id,
	)
	if err != nil {
		return fmt.Errorf("marking notification %s as read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification as read.
func (c *Cache) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "UPDATE notifications SET read = 1")
	if err != nil {
		return fmt.Errorf("marking all notifications as read: %w", err)
	}
	return nil
}

// DeleteNotification removes a notification by ID.
func (c *Cache) DeleteNotification(ctx context.Context, id string) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM notifications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting notification %s: %w", id, err)
	}
	return nil
}

// ClearNotifications empties the notification feed.
func (c *Cache) ClearNotifications(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, "DELETE FROM notifications")
	if err != nil {
		return fmt.Errorf("clearing notifications: %w", err)
	}
	return nil
}

// GetNotifications retrieves all notifications, most recent first.
func (c *Cache) GetNotifications(ctx context.Context) ([]model.Notification, error) {
	rows, err := c.db.QueryxContext(ctx,
		"SELECT * FROM notifications ORDER BY created_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// SaveSettings replaces the stored delivery settings.
func (c *Cache) SaveSettings(ctx context.Context, s model.NotificationSettings) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO settings (
			id, email_notifications, push_notifications,
			trend_alerts, campaign_updates, product_updates, system_updates
		) VALUES (1, ?, ?, ?, ?, ?, ?)`,
		boolToInt(s.EmailNotifications), boolToInt(s.PushNotifications),
		boolToInt(s.TrendAlerts), boolToInt(s.CampaignUpdates),
		boolToInt(s.ProductUpdates), boolToInt(s.SystemUpdates),
	)
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}

// GetSettings retrieves the stored delivery settings. Returns nil when
// no settings have been saved yet.
func (c *Cache) GetSettings(ctx context.Context) (*model.NotificationSettings, error) {
	row := c.db.QueryRowxContext(ctx, "SELECT * FROM settings WHERE id = 1")

	var id, email, push, trend, campaign, product, system int
	err := row.Scan(&id, &email, &push, &trend, &campaign, &product, &system)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning settings row: %w", err)
	}

	return &model.NotificationSettings{
		EmailNotifications: email != 0,
		PushNotifications:  push != 0,
		TrendAlerts:        trend != 0,
		CampaignUpdates:    campaign != 0,
		ProductUpdates:     product != 0,
		SystemUpdates:      system != 0,
	}, nil
}

// scanProduct scans a product row from a sqlx.Rows result set.
func scanProduct(rows *sqlx.Rows) (model.Product, error) {
	var (
		p         model.Product
		isTrend   int
		createdAt time.Time
		updatedAt time.Time
		fetchedAt time.Time
	)

	err := rows.Scan(
		&p.ID, &p.Name, &p.Category, &p.Description, &p.Price,
		&p.ImageURL, &isTrend, &p.TrendingPercentage, &p.Keywords,
		&createdAt, &updatedAt, &fetchedAt,
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("scanning product row: %w", err)
	}

	p.IsTrend = isTrend != 0
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt

	return p, nil
}

// scanNotification scans a notification row from a sqlx.Rows result set.
func scanNotification(rows *sqlx.Rows) (model.Notification, error) {
	var (
		n         model.Notification
		nType     string
		readInt   int
		createdAt time.Time
		dataJSON  string
	)

	err := rows.Scan(
		&n.ID, &n.Title, &n.Message, &nType, &readInt, &createdAt,
		&n.ActionRoute, &n.ActionLabel, &dataJSON,
	)
	if err != nil {
		return model.Notification{}, fmt.Errorf("scanning notification row: %w", err)
	}

	n.Type = model.NotificationType(nType)
	n.Read = readInt != 0
	n.CreatedAt = createdAt

	if dataJSON != "" && dataJSON != "{}" {
		if err := json.Unmarshal([]byte(dataJSON), &n.Data); err != nil {
			return model.Notification{}, fmt.Errorf("unmarshaling notification data: %w", err)
		}
	}

	return n, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
