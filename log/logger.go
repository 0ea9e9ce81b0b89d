package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

type Level logging.Level

// The verbosity levels understood by SetLevel.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelMap = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

// The format applied to emitted log entries.
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The shared leveled backend used by all loggers.
var leveledBackend logging.LeveledBackend

// Logger provides leveled logging primitives.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Redirect logger output to the given sink.
func SetSink(sink io.Writer) {
	backend := logging.NewBackendFormatter(
		logging.NewLogBackend(sink, "", 0),
		format,
	)
	leveledBackend = logging.AddModuleLevel(backend)
	leveledBackend.SetLevel(logging.INFO, "")
	logging.SetBackend(leveledBackend)
}

// Adjust logger verbosity.
func SetLevel(level Level) {
	leveledBackend.SetLevel(levelMap[level], "")
}

func init() {
	SetSink(os.Stdout)
	SetLevel(Notice)
}
