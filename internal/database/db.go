package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.  The handle is
// shared by the fleet catalog reads and the booking archive writes;
// the in-memory engine itself never touches the database.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	dsnCfg := mysql.Config{
		User:      user,
		Passwd:    pass,
		Net:       "tcp",
		Addr:      host + ":" + port,
		DBName:    name,
		ParseTime: true, // DATETIME columns scan into time.Time
		Loc:       time.UTC,
		Params:    map[string]string{"charset": "utf8mb4"},
	}

	db, err := sql.Open("mysql", dsnCfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	// Catalog reads are bursty at trip creation time, archive writes
	// are steady; a modest pool covers both.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
