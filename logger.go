package bitmap

import (
	"log/slog"
	"sync/atomic"
)

// silent discards every record; its handler reports every level disabled so
// callers skip building attributes.
var silent = slog.New(slog.DiscardHandler)

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(silent)
}

// SetLogger installs l for this package and its sub-packages. Nothing is
// logged until it is called; nil restores that default. It is safe to call
// while other goroutines log.
//
// Levels:
//   - [slog.LevelDebug]: conversion paths, parallel fan-out, codec selection
//   - [slog.LevelWarn]: substitutions made by adapters in compatible mode
//
// Example:
//
//	bitmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. The codec and integration packages log
// through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
