// Package logger обёртка над zerolog с printf-интерфейсом,
// который потребляют usecase и service через свои контракты.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger leveled printf-style logger. Writes JSON lines to the
// configured file, or to stdout when the path is empty.
type Logger struct {
	log    zerolog.Logger
	closer io.Closer
}

// New создает логгер с записью в файл file и минимальным уровнем level
// Пустой file означает вывод в stdout
func New(file string, level string) (*Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}

	output := io.Writer(os.Stdout)
	var closer io.Closer

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: failed to open log file %s: %w", file, err)
		}
		output = f
		closer = f
	}

	log := zerolog.New(output).Level(parsed).With().Timestamp().Logger()

	return &Logger{log: log, closer: closer}, nil
}

// Info logs a formatted message at info level.
func (l *Logger) Info(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

// Warn logs a formatted message at warn level.
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log.Warn().Msgf(format, v...)
}

// Error logs a formatted message at error level.
func (l *Logger) Error(format string, v ...interface{}) {
	l.log.Error().Msgf(format, v...)
}

// Fatal logs a formatted message at fatal level and exits the process.
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}

// Close закрывает файл логов, если он был открыт
func (l *Logger) Close() {
	if l.closer != nil {
		_ = l.closer.Close()
	}
}
