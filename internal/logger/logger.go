package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	Fatal(msg string, fields ...any)
	With(key string, value any) Logger
	WithComponent(component string) Logger
}

type Config struct {
	Level     string
	Format    string
	Output    string
	File      string
	Component string

	// Writer, quando definido, substitui Output/File (usado em testes).
	Writer io.Writer
}

type ZLogger struct {
	logger zerolog.Logger
}

func New(config Config) Logger {
	zerolog.SetGlobalLevel(ParseLevel(config.Level))

	output := config.Writer
	if output == nil {
		output = createOutput(config)
	}
	logger := createLogger(config, output)

	if config.Component != "" {
		logger = logger.With().Str("component", config.Component).Logger()
	}

	return &ZLogger{logger: logger}
}

func NewDefault() Logger {
	return New(Config{
		Level:  "info",
		Format: "console",
		Output: "stdout",
	})
}

// NewForComponent deriva do logger global, herdando nível e formato configurados em Init.
func NewForComponent(component string) Logger {
	return Get().WithComponent(component)
}

// Nop descarta tudo.
func Nop() Logger {
	return &ZLogger{logger: zerolog.Nop()}
}

func (l *ZLogger) Debug(msg string, fields ...any) {
	l.emit(l.logger.Debug(), msg, fields...)
}

func (l *ZLogger) Info(msg string, fields ...any) {
	l.emit(l.logger.Info(), msg, fields...)
}

func (l *ZLogger) Warn(msg string, fields ...any) {
	l.emit(l.logger.Warn(), msg, fields...)
}

func (l *ZLogger) Error(msg string, fields ...any) {
	l.emit(l.logger.Error(), msg, fields...)
}

func (l *ZLogger) Fatal(msg string, fields ...any) {
	l.emit(l.logger.Fatal(), msg, fields...)
}

func (l *ZLogger) With(key string, value any) Logger {
	return &ZLogger{logger: l.logger.With().Interface(key, value).Logger()}
}

func (l *ZLogger) WithComponent(component string) Logger {
	return &ZLogger{logger: l.logger.With().Str("component", component).Logger()}
}

func (l *ZLogger) emit(event *zerolog.Event, msg string, fields ...any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key := fmt.Sprintf("%v", fields[i])
		if err, ok := fields[i+1].(error); ok {
			event.AnErr(key, err)
			continue
		}
		event.Interface(key, fields[i+1])
	}
	event.Msg(msg)
}

func createOutput(config Config) io.Writer {
	switch strings.ToLower(config.Output) {
	case "stderr":
		return os.Stderr
	case "file":
		if config.File == "" {
			return os.Stdout
		}
		file, err := os.OpenFile(config.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "erro ao abrir arquivo de log %s: %v\n", config.File, err)
			return os.Stdout
		}
		return file
	default:
		return os.Stdout
	}
}

func createLogger(config Config, output io.Writer) zerolog.Logger {
	if strings.ToLower(config.Format) == "console" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

var globalLogger Logger

func Init(config Config) {
	globalLogger = New(config)
}

func InitDefault() {
	globalLogger = NewDefault()
}

func Get() Logger {
	if globalLogger == nil {
		InitDefault()
	}
	return globalLogger
}

func Debug(msg string, fields ...any) {
	Get().Debug(msg, fields...)
}

func Info(msg string, fields ...any) {
	Get().Info(msg, fields...)
}

func Warn(msg string, fields ...any) {
	Get().Warn(msg, fields...)
}

func Error(msg string, fields ...any) {
	Get().Error(msg, fields...)
}

func Fatal(msg string, fields ...any) {
	Get().Fatal(msg, fields...)
}

func With(key string, value any) Logger {
	return Get().With(key, value)
}

func WithComponent(component string) Logger {
	return Get().WithComponent(component)
}
