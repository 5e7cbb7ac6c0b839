package errors

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// DefaultHandler is the global error handler.
// It defaults to LogHandler with verbose=false.
var DefaultHandler ErrorHandler = &LogHandler{}

// SetHandler configures the global error handler.
// Pass nil to restore the default LogHandler.
//
// The scene graph is single-threaded, so the handler is not guarded.
func SetHandler(h ErrorHandler) {
	if h == nil {
		DefaultHandler = &LogHandler{}
	} else {
		DefaultHandler = h
	}
}

// Report sends an error to the global handler.
// If err.Timestamp is zero, it is set to the current time.
// It returns err when its severity is above SeverityWarning and nil otherwise,
// so call sites can write `return errors.Report(...)`.
func Report(err *SceneError) error {
	if err == nil {
		return nil
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	if err.Severity >= SeverityFatal && err.StackTrace == "" {
		err.StackTrace = CaptureStack()
	}
	if h := DefaultHandler; h != nil {
		h.HandleError(err)
	}
	if err.Severity > SeverityWarning {
		return err
	}
	return nil
}

// Warn reports a SeverityWarning error built from the arguments.
func Warn(op string, kind Kind, object any, err error) {
	Report(&SceneError{Op: op, Kind: kind, Severity: SeverityWarning, Object: describe(object), Err: err})
}

// Fail reports a SeverityError error built from the arguments and returns it.
func Fail(op string, kind Kind, object any, err error) error {
	return Report(&SceneError{Op: op, Kind: kind, Severity: SeverityError, Object: describe(object), Err: err})
}

// ReportPanic sends a panic error to the global handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	if h := DefaultHandler; h != nil {
		h.HandlePanic(err)
	}
}

// Recover is a helper for deferred panic recovery.
// Usage: defer errors.Recover("operation.name")
func Recover(op string) {
	if r := recover(); r != nil {
		ReportPanic(&PanicError{
			Op:         op,
			Value:      r,
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// CaptureStack returns the current call stack as a string.
// It skips the first few frames to exclude the CaptureStack call itself.
func CaptureStack() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder
	for {
		frame, more := frames.Next()
		sb.WriteString(frame.Function)
		sb.WriteString("\n\t")
		sb.WriteString(frame.File)
		sb.WriteString(":")
		sb.WriteString(strconv.Itoa(frame.Line))
		sb.WriteString("\n")
		if !more {
			break
		}
	}
	return sb.String()
}

// describe renders the offending object for SceneError.Object.
func describe(object any) string {
	switch v := object.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Collector is an ErrorHandler that keeps every report in memory.
// It backs diagnostic overlays and tests.
type Collector struct {
	Errors []*SceneError
	Panics []*PanicError
}

// HandleError records err.
func (c *Collector) HandleError(err *SceneError) {
	c.Errors = append(c.Errors, err)
}

// HandlePanic records err.
func (c *Collector) HandlePanic(err *PanicError) {
	c.Panics = append(c.Panics, err)
}

// Count returns the number of recorded errors of the given kind.
func (c *Collector) Count(kind Kind) int {
	n := 0
	for _, err := range c.Errors {
		if err.Kind == kind {
			n++
		}
	}
	return n
}

// Capture installs a fresh Collector as the global handler and returns it
// along with a function that restores the previous handler.
func Capture() (*Collector, func()) {
	old := DefaultHandler
	c := &Collector{}
	SetHandler(c)
	return c, func() { SetHandler(old) }
}
