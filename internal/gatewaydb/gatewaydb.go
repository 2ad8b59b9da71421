// Package gatewaydb is the persistence collaborator (spec §6.5, A3):
// load/store of per-radar attributes that should survive a restart
// (assigned id, user name, remembered model and ranges). Backed by
// modernc.org/sqlite and schema-migrated with golang-migrate/migrate/v4,
// grounded on the teacher's db.go and its embedded-schema pattern.
package gatewaydb

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/wavemark/radargw/internal/monitoring"
	"github.com/wavemark/radargw/internal/radarcore/model"
	"github.com/wavemark/radargw/internal/radarcore/registry"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB is the gateway's sqlite-backed persistence collaborator. It
// implements registry.Persistence.
type DB struct {
	sql *sql.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// applies any pending migrations.
func Open(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("gatewaydb: open %s: %w", path, err)
	}

	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("gatewaydb: migration driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("gatewaydb: migration source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", driver)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("gatewaydb: migrate init: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		sqlDB.Close()
		return nil, fmt.Errorf("gatewaydb: migrate up: %w", err)
	}

	monitoring.Infof("gatewaydb: initialized radar persistence schema at %s", path)
	return &DB{sql: sqlDB}, nil
}

func (db *DB) Close() error { return db.sql.Close() }

var _ registry.Persistence = (*DB)(nil)

// Load implements registry.Persistence.
func (db *DB) Load(key string) (registry.PersistedAttributes, bool) {
	row := db.sql.QueryRow(`SELECT id, user_name, model, ranges FROM radars WHERE key = ?`, key)
	var id int64
	var userName, model, rangesJSON sql.NullString
	if err := row.Scan(&id, &userName, &model, &rangesJSON); err != nil {
		return registry.PersistedAttributes{}, false
	}
	attrs := registry.PersistedAttributes{
		ID:       uint32(id),
		UserName: userName.String,
		Model:    model.String,
	}
	if rangesJSON.Valid {
		json.Unmarshal([]byte(rangesJSON.String), &attrs.Ranges)
	}
	return attrs, true
}

// Store implements registry.Persistence.
func (db *DB) Store(info *model.RadarInfo) {
	info.Mu.RLock()
	userName, modelName, ranges := info.UserName, info.ModelName, info.Ranges
	info.Mu.RUnlock()

	rangesJSON, _ := json.Marshal(ranges)
	_, err := db.sql.Exec(
		`INSERT INTO radars (key, id, user_name, model, ranges, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET
		   id=excluded.id, user_name=excluded.user_name,
		   model=excluded.model, ranges=excluded.ranges, updated_at=CURRENT_TIMESTAMP`,
		info.Key, info.ID, userName, modelName, string(rangesJSON),
	)
	if err != nil {
		monitoring.Errorf("gatewaydb: store %s: %v", info.Key, err)
	}
}
