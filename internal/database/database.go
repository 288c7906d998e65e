package database

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"socialnet/internal/config"
)

type DB struct {
	*sqlx.DB
}

// DSN builds a postgres URL from the database section of cfg.
func DSN(cfg config.DB) string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.DbUSER, cfg.DbPASSWORD),
		Host:   cfg.DbHOST + ":" + cfg.DbPORT,
		Path:   "/" + cfg.DbNAME,
	}
	q := dsn.Query()
	q.Set("sslmode", cfg.DbSSLMODE)
	q.Set("timezone", "UTC")
	dsn.RawQuery = q.Encode()
	return dsn.String()
}

func ConnectDB(cfg *config.Config) (*DB, error) {
	log.Printf("Connecting to database: host=%s, dbname=%s", cfg.DB.DbHOST, cfg.DB.DbNAME)

	db, err := sqlx.Connect("postgres", DSN(cfg.DB))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	dbStruct := &DB{db}

	if err := dbStruct.RunMigrations(cfg.DB.MigrationsDir); err != nil {
		db.Close()
		return nil, err
	}

	if err := dbStruct.HealthCheck(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Println("Connected to PostgreSQL")
	return dbStruct, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) RunMigrations(migrationsDir string) error {
	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("error creating postgres migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+migrationsDir, "postgres", driver)
	if err != nil {
		return fmt.Errorf("error creating migration instance: %w", err)
	}

	log.Printf("Applying migrations from: %s", migrationsDir)

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Println("Database schema is up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	log.Println("Migrations applied")
	return nil
}

func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database connection is not initialized")
	}

	return db.Ping()
}
