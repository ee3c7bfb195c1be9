package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

func init() {
	log.SetFormatter(&log.JSONFormatter{
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

// Configure задает уровень и формат (json или text) глобального логгера
func Configure(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	log.SetLevel(lvl)

	switch format {
	case "", "json":
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05Z07:00"})
	case "text":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("logger: unknown format %q", format)
	}
	return nil
}

// SetOutput нужен в тестах, чтобы не засорять вывод
func SetOutput(w io.Writer) {
	log.SetOutput(w)
}

func Debug(message string, fields map[string]any) {
	log.WithFields(fields).Debug(message)
}

func Info(message string, fields map[string]any) {
	log.WithFields(fields).Info(message)
}

func Warn(message string, fields map[string]any) {
	log.WithFields(fields).Warn(message)
}

func Error(message string, fields map[string]any) {
	log.WithFields(fields).Error(message)
}

func Fatal(message string, fields map[string]any) {
	log.WithFields(fields).Fatal(message)
}
