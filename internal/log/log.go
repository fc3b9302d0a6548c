// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the environment variable clstrctl reads its log level from.
const EnvLevel = "CLSTRCTL_LOG"

const tracePrefix = "TRACE: "

var traceEnabled bool

// InitLogger installs Handler on stderr and sets the level from a name
// (trace, debug, info, warn, error, fatal). Unknown or empty names mean
// error.
func InitLogger(level string) {
	InitLoggerTo(os.Stderr, level)
}

// InitLoggerTo is InitLogger with an explicit destination.
func InitLoggerTo(w io.Writer, level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	traceEnabled = level == "trace"

	log.SetHandler(&Handler{Writer: w})
	log.SetLevel(parseLevel(level))
}

func parseLevel(level string) log.Level {
	switch level {
	case "trace", "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// Handler writes one "timestamp L message key=value..." line per entry.
type Handler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface.
func (h *Handler) HandleLog(e *log.Entry) error {
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, tracePrefix) {
		level = "T"
		message = message[len(tracePrefix):]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", time.Now().Format("2006-01-02 15:04:05"), level, message)
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	_, err := io.WriteString(h.Writer, b.String())
	return err
}

// Tracef logs below Debug; it is a no-op unless the level is trace.
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug(tracePrefix + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry carrying err as a field.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
