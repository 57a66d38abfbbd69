package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var defaultDSN = map[string]string{
	"sqlite": "blackpiston.db",
	"mysql":  "root:@tcp(127.0.0.1:3306)/blackpiston?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s",
	"pgx":    "postgres://localhost/blackpiston?sslmode=disable",
}

// OpenDB opens and pings the snapshot database for driver (sqlite, mysql or
// pgx). An empty dsn selects the driver's local default.
func OpenDB(driver, dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = defaultDSN[driver]
	}
	if dsn == "" {
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// one writer at a time
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
	}
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	log.Printf("[DB] connected driver=%s", driver)
	return db, nil
}
