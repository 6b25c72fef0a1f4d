package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger глобальный структурированный логгер
	Logger *slog.Logger

	// level уровень логирования, переключаемый после загрузки конфигурации
	level = new(slog.LevelVar)
)

func init() {
	// Инициализируем структурированный логгер в формате JSON
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Используем JSON handler для структурированного логирования
	Logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// SetLevel устанавливает уровень логирования ("DEBUG", "INFO", "WARN", "ERROR")
// Неизвестное значение оставляет уровень INFO
func SetLevel(name string) {
	switch strings.ToUpper(name) {
	case "DEBUG":
		level.Set(slog.LevelDebug)
	case "INFO":
		level.Set(slog.LevelInfo)
	case "WARN", "WARNING":
		level.Set(slog.LevelWarn)
	case "ERROR":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// LogError логирует ошибку с дополнительными атрибутами
func LogError(err error, msg string, attrs ...any) {
	attrs = append(attrs, "error", err)
	Logger.Error(msg, attrs...)
}

// LogErrorf логирует ошибку с форматированным сообщением
func LogErrorf(err error, format string, args ...any) {
	LogError(err, fmt.Sprintf(format, args...))
}

// LogWarn логирует предупреждение
func LogWarn(msg string, attrs ...any) {
	Logger.Warn(msg, attrs...)
}
