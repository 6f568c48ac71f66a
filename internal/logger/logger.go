package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type Logger struct {
	*zerolog.Logger
	component string
}

var logLevel = map[string]zerolog.Level{
	"development": zerolog.DebugLevel,
	"staging":     zerolog.InfoLevel,
	"production":  zerolog.InfoLevel,
}

// New creates a logger instance for a specific component.
func New(component string) *Logger {
	return NewWithEnv(component, os.Getenv("APP_ENV"))
}

func NewWithEnv(component, env string) *Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	output := zerolog.ConsoleWriter{
		Out: os.Stdout,
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("[%s] %s", component, i)
		},
	}
	if env == "production" {
		output.TimeFormat = ""
	} else {
		output.TimeFormat = "2006-01-02 15:04:05"
	}

	l := zerolog.New(output).Level(getLogLevel(env)).With().Timestamp().Logger()
	return &Logger{Logger: &l, component: component}
}

func getLogLevel(env string) zerolog.Level {
	if level, ok := logLevel[env]; ok {
		return level
	}
	return zerolog.DebugLevel
}

func (l *Logger) LogDebug(msg string)  { l.Debug().Msg(msg) }
func (l *Logger) LogInfo(msg string)   { l.Info().Msg(msg) }
func (l *Logger) LogWarn(msg string)   { l.Warn().Msg(msg) }

func (l *Logger) LogError(msg string, err error) {
	if err != nil {
		l.Error().Err(err).Msg(msg)
		return
	}
	l.Error().Msg(msg)
}

func (l *Logger) LogDebugf(format string, v ...interface{}) { l.Debug().Msgf(format, v...) }
func (l *Logger) LogInfof(format string, v ...interface{})  { l.Info().Msgf(format, v...) }
func (l *Logger) LogWarnf(format string, v ...interface{})  { l.Warn().Msgf(format, v...) }
func (l *Logger) LogErrorf(format string, v ...interface{}) { l.Error().Msgf(format, v...) }
