package effect

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

var loggerPtr atomic.Pointer[logrus.Logger]

func init() {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	loggerPtr.Store(l)
}

// SetLogger replaces the logger used by Compute. Pass nil to silence it.
// Safe to call while invocations are running.
func SetLogger(l *logrus.Logger) {
	if l == nil {
		l = logrus.New()
		l.SetOutput(io.Discard)
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *logrus.Logger {
	return loggerPtr.Load()
}
