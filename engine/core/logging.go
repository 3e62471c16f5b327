package core

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// LogLevel is the minimum severity the engine logger reports.
// It decodes from its lowercase name ("debug", "info", "warn", "error", "fatal").
type LogLevel log.Level

const (
	DebugLevel = LogLevel(log.DebugLevel)
	InfoLevel  = LogLevel(log.InfoLevel)
	WarnLevel  = LogLevel(log.WarnLevel)
	ErrorLevel = LogLevel(log.ErrorLevel)
	FatalLevel = LogLevel(log.FatalLevel)
)

func (l LogLevel) String() string {
	return log.Level(l).String()
}

func (l *LogLevel) UnmarshalText(text []byte) error {
	lvl, err := log.ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = LogLevel(lvl)
	return nil
}

func (l LogLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

var once sync.Once

type logger struct {
	*log.Logger
}

var singleton *logger

func getLogger() *logger {
	once.Do(
		func() {
			l := log.NewWithOptions(os.Stderr, log.Options{
				ReportCaller:    true,
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "RTS Camera 🎥 ",
				CallerOffset:    1,
			})
			l.SetLevel(log.InfoLevel)
			singleton = &logger{l}
		})
	return singleton
}

// SetLogLevel changes the minimum level reported by the engine logger.
func SetLogLevel(level LogLevel) {
	getLogger().SetLevel(log.Level(level))
}

// SetLogOutput redirects the engine logger, e.g. to io.Discard in tests.
func SetLogOutput(w io.Writer) {
	getLogger().SetOutput(w)
}

func LogDebug(msg string, args ...interface{}) {
	getLogger().Debugf(msg, args...)
}

func LogInfo(msg string, args ...interface{}) {
	getLogger().Infof(msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	getLogger().Warnf(msg, args...)
}

func LogError(msg string, args ...interface{}) {
	getLogger().Errorf(msg, args...)
}

func LogFatal(msg string, args ...interface{}) {
	getLogger().Fatalf(msg, args...)
}

// With returns a sub-logger carrying the given key/value pairs, used by
// systems that log repeatedly about the same entity.
func With(keyvals ...interface{}) *log.Logger {
	return getLogger().With(keyvals...)
}
