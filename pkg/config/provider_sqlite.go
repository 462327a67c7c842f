package config

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/chrissnell/almanac/pkg/migrate"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Keys in the settings table
const (
	settingListenAddr = "server.listen_addr"
	settingPort       = "server.port"
	settingCert       = "server.cert"
	settingKey        = "server.key"
	settingCachePath  = "storage.cache_path"
	settingPrefetch   = "storage.prefetch_days"
)

var ErrObserverNotFound = errors.New("observer not found")

// SQLiteProvider implements ConfigProvider for SQLite database configuration
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteProvider opens the database at dbPath and brings its schema up
// to date.
func NewSQLiteProvider(dbPath string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	sub, err := fs.Sub(migrations, "migrations")
	if err != nil {
		db.Close()
		return nil, err
	}
	migrator := migrate.NewMigrator(db, migrate.NewFSProvider(sub, "config_migrations"), nil)
	if err := migrator.MigrateUp(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate config database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// LoadConfig loads the complete configuration from SQLite database
func (s *SQLiteProvider) LoadConfig() (*ConfigData, error) {
	config := &ConfigData{}

	observers, err := s.GetObservers()
	if err != nil {
		return nil, fmt.Errorf("failed to load observers: %w", err)
	}
	config.Observers = observers

	server, err := s.GetServer()
	if err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	config.Server = *server

	storage, err := s.GetStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}
	config.Storage = *storage

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// GetObservers returns observers from the database, ordered by name
func (s *SQLiteProvider) GetObservers() ([]ObserverData, error) {
	rows, err := s.db.Query(`SELECT name, latitude, longitude, time_zone FROM observers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query observers: %w", err)
	}
	defer rows.Close()

	var observers []ObserverData
	for rows.Next() {
		var o ObserverData
		var tz sql.NullString
		if err := rows.Scan(&o.Name, &o.Latitude, &o.Longitude, &tz); err != nil {
			return nil, fmt.Errorf("failed to scan observer row: %w", err)
		}
		if tz.Valid {
			o.TimeZone = tz.String
		}
		observers = append(observers, o)
	}
	return observers, rows.Err()
}

// GetObserver returns a single observer by name
func (s *SQLiteProvider) GetObserver(name string) (*ObserverData, error) {
	var o ObserverData
	var tz sql.NullString
	err := s.db.QueryRow(`SELECT name, latitude, longitude, time_zone FROM observers WHERE name = ?`, name).
		Scan(&o.Name, &o.Latitude, &o.Longitude, &tz)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrObserverNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query observer: %w", err)
	}
	if tz.Valid {
		o.TimeZone = tz.String
	}
	return &o, nil
}

// GetServer returns the REST server settings
func (s *SQLiteProvider) GetServer() (*ServerData, error) {
	settings, err := s.settings()
	if err != nil {
		return nil, err
	}

	server := &ServerData{
		ListenAddr: settings[settingListenAddr],
		Cert:       settings[settingCert],
		Key:        settings[settingKey],
	}
	if p, ok := settings[settingPort]; ok {
		server.Port, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s setting %q: %w", settingPort, p, err)
		}
	}
	return server, nil
}

// GetStorage returns the cache settings
func (s *SQLiteProvider) GetStorage() (*StorageData, error) {
	settings, err := s.settings()
	if err != nil {
		return nil, err
	}
	storage := &StorageData{CachePath: settings[settingCachePath]}
	if p, ok := settings[settingPrefetch]; ok {
		storage.PrefetchDays, err = strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid %s setting %q: %w", settingPrefetch, p, err)
		}
	}
	return storage, nil
}

func (s *SQLiteProvider) settings() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan setting row: %w", err)
		}
		settings[k] = v
	}
	return settings, rows.Err()
}

// IsReadOnly returns false since SQLite supports writes
func (s *SQLiteProvider) IsReadOnly() bool {
	return false
}

// Close closes the database connection
func (s *SQLiteProvider) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Write methods for configuration management

// SaveConfig replaces the stored configuration with configData
func (s *SQLiteProvider) SaveConfig(configData *ConfigData) error {
	if err := configData.Validate(); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, query := range []string{"DELETE FROM observers", "DELETE FROM settings"} {
		if _, err := tx.Exec(query); err != nil {
			return fmt.Errorf("failed to clear existing config: %w", err)
		}
	}

	for _, o := range configData.Observers {
		if err := insertObserver(tx, &o); err != nil {
			return fmt.Errorf("failed to insert observer %s: %w", o.Name, err)
		}
	}

	settings := map[string]string{
		settingListenAddr: configData.Server.ListenAddr,
		settingCert:       configData.Server.Cert,
		settingKey:        configData.Server.Key,
		settingCachePath:  configData.Storage.CachePath,
	}
	if configData.Server.Port != 0 {
		settings[settingPort] = strconv.Itoa(configData.Server.Port)
	}
	if configData.Storage.PrefetchDays != 0 {
		settings[settingPrefetch] = strconv.Itoa(configData.Storage.PrefetchDays)
	}
	for k, v := range settings {
		if v == "" {
			continue
		}
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("failed to insert setting %s: %w", k, err)
		}
	}

	return tx.Commit()
}

// AddObserver adds a new observer to the configuration
func (s *SQLiteProvider) AddObserver(observer *ObserverData) error {
	if err := (&ConfigData{Observers: []ObserverData{*observer}}).Validate(); err != nil {
		return err
	}
	if _, err := s.GetObserver(observer.Name); err == nil {
		return fmt.Errorf("observer %s already exists", observer.Name)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertObserver(tx, observer); err != nil {
		return fmt.Errorf("failed to insert observer: %w", err)
	}
	return tx.Commit()
}

// DeleteObserver removes an observer from the configuration
func (s *SQLiteProvider) DeleteObserver(name string) error {
	result, err := s.db.Exec(`DELETE FROM observers WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete observer: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrObserverNotFound, name)
	}
	return nil
}

func insertObserver(tx *sql.Tx, o *ObserverData) error {
	_, err := tx.Exec(`INSERT INTO observers (name, latitude, longitude, time_zone) VALUES (?, ?, ?, ?)`,
		o.Name, o.Latitude, o.Longitude, nullString(o.TimeZone))
	return err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
