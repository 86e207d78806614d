package unittest

import (
	"flag"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var verbose = flag.Bool("vv", false, "print debugging logs")

func LogVerbose() {
	*verbose = true
}

// Logger returns a zerolog
// use -vv flag to print debugging logs for tests
func Logger() zerolog.Logger {
	writer := io.Discard

	if *verbose {
		writer = os.Stderr
	}
	zerolog.TimestampFunc = func() time.Time { return time.Now().UTC() }
	log := zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return log
}

// LoggerHook collects the messages of every log event it sees.
type LoggerHook struct {
	logs *strings.Builder
}

func NewLoggerHook() LoggerHook {
	return LoggerHook{logs: &strings.Builder{}}
}

func (hook LoggerHook) Run(_ *zerolog.Event, _ zerolog.Level, msg string) {
	hook.logs.WriteString(msg)
	hook.logs.WriteString("\n")
}

// Logs returns the messages collected so far, one per line.
func (hook LoggerHook) Logs() string {
	return hook.logs.String()
}

// HookedLogger returns a logger wired to a fresh LoggerHook.
func HookedLogger() (zerolog.Logger, LoggerHook) {
	hook := NewLoggerHook()
	return Logger().Hook(hook), hook
}
