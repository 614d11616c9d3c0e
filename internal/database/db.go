package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSN builds the driver connection string. DATETIME columns are parsed into
// time.Time in the given location; shareit stores naive local timestamps.
func DSN(user, pass, host, port, name, loc string) (string, error) {
	location, err := time.LoadLocation(loc)
	if err != nil {
		return "", fmt.Errorf("db location %q: %w", loc, err)
	}
	cfg := mysql.NewConfig()
	cfg.User = user
	cfg.Passwd = pass
	cfg.Net = "tcp"
	cfg.Addr = host + ":" + port
	cfg.DBName = name
	cfg.ParseTime = true
	cfg.Loc = location
	cfg.MultiStatements = false
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN(), nil
}

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name, loc string) (*sql.DB, error) {
	dsn, err := DSN(user, pass, host, port, name, loc)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
