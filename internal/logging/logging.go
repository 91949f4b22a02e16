// Package logging provides the opt-in diagnostic hook shared by every
// satkey package. The core never logs on its own initiative; it only
// writes through this hook once a caller installs one.
package logging

import goLog "log"

// Logger receives diagnostic breadcrumbs (covering-set size, batch
// covering counts). It is never used for control flow.
type Logger interface {
	Logf(format string, a ...interface{})
}

type dummyLogger struct{}

func (dummyLogger) Logf(format string, a ...interface{}) {}

type stdlibLogger struct{}

func (stdlibLogger) Logf(format string, a ...interface{}) {
	goLog.Printf(format, a...)
}

var log Logger = dummyLogger{}

// EnableStdlib routes diagnostics to the standard log package. For more
// flexibility install a custom Logger with SetLogger.
func EnableStdlib() {
	SetLogger(stdlibLogger{})
}

// SetLogger installs logger as the destination for diagnostics from every
// satkey package. Passing nil disables logging again.
func SetLogger(logger Logger) {
	if logger == nil {
		log = dummyLogger{}
		return
	}
	log = logger
}

// Logf forwards to the currently installed Logger.
func Logf(format string, a ...interface{}) {
	log.Logf(format, a...)
}
