package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
)

//go:embed sql/*.sql
var sqlFiles embed.FS

const migrationDir = "sql"

// Run применяет все миграции к базе по строке подключения conn
func Run(conn string) error {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return fmt.Errorf("migrations: open db: %w", err)
	}
	defer db.Close()

	return Up(db)
}

// Up применяет миграции к уже открытому соединению
func Up(db *sql.DB) error {
	goose.SetBaseFS(sqlFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations: set dialect: %w", err)
	}

	logger.Info("running migrations", map[string]any{"dir": migrationDir})
	if err := goose.Up(db, migrationDir); err != nil {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

// gooseLogger пишет вывод goose в общий логгер
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	logger.Info(fmt.Sprintf(format, v...), nil)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	logger.Fatal(fmt.Sprintf(format, v...), nil)
}
