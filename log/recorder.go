package log

import "fmt"

// Recorder wraps a Logger and captures info, warning and error entries
// so that callers can inspect accumulated diagnostics after an operation
// completes. Debug and notice entries pass through without being recorded.
type Recorder struct {
	logger Logger

	infos    []string
	warnings []string
	errors   []string
}

// Create a Recorder that forwards entries to the given logger.
func NewRecorder(logger Logger) *Recorder {
	return &Recorder{logger: logger}
}

// Implements log.Logger.
func (r *Recorder) Debug(v ...interface{}) {
	r.logger.Debug(v...)
}

// Implements log.Logger.
func (r *Recorder) Debugf(format string, v ...interface{}) {
	r.logger.Debugf(format, v...)
}

// Implements log.Logger.
func (r *Recorder) Notice(v ...interface{}) {
	r.logger.Notice(v...)
}

// Implements log.Logger.
func (r *Recorder) Noticef(format string, v ...interface{}) {
	r.logger.Noticef(format, v...)
}

// Implements log.Logger.
func (r *Recorder) Info(v ...interface{}) {
	r.infos = append(r.infos, fmt.Sprint(v...))
	r.logger.Info(v...)
}

// Implements log.Logger.
func (r *Recorder) Infof(format string, v ...interface{}) {
	r.infos = append(r.infos, fmt.Sprintf(format, v...))
	r.logger.Infof(format, v...)
}

// Implements log.Logger.
func (r *Recorder) Warning(v ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprint(v...))
	r.logger.Warning(v...)
}

// Implements log.Logger.
func (r *Recorder) Warningf(format string, v ...interface{}) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, v...))
	r.logger.Warningf(format, v...)
}

// Implements log.Logger.
func (r *Recorder) Error(v ...interface{}) {
	r.errors = append(r.errors, fmt.Sprint(v...))
	r.logger.Error(v...)
}

// Implements log.Logger.
func (r *Recorder) Errorf(format string, v ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, v...))
	r.logger.Errorf(format, v...)
}

// Check whether any error entries have been recorded.
func (r *Recorder) HasErrors() bool {
	return len(r.errors) != 0
}

// Check whether any warning entries have been recorded.
func (r *Recorder) HasWarnings() bool {
	return len(r.warnings) != 0
}

// Get a copy of the recorded info entries in emission order.
func (r *Recorder) Infos() []string {
	return copyEntries(r.infos)
}

// Get a copy of the recorded warning entries in emission order.
func (r *Recorder) Warnings() []string {
	return copyEntries(r.warnings)
}

// Get a copy of the recorded error entries in emission order.
func (r *Recorder) Errors() []string {
	return copyEntries(r.errors)
}

// Discard all recorded entries.
func (r *Recorder) Clear() {
	r.infos = nil
	r.warnings = nil
	r.errors = nil
}

func copyEntries(entries []string) []string {
	if entries == nil {
		return nil
	}
	out := make([]string, len(entries))
	copy(out, entries)
	return out
}
