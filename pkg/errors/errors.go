// Package errors provides the structured diagnostic channel for the scene graph.
//
// Every usage error, degraded layout value and recovered panic is funneled
// through Report or ReportPanic to the global ErrorHandler. Errors above
// SeverityWarning are also returned to the caller so the offending operation
// can abort while the rest of the graph stays intact.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// Sentinel errors wrapped by SceneError.Err. Test with errors.Is.
var (
	// ErrConstant is returned when a frozen (process-wide shared) node is mutated.
	ErrConstant = stderrors.New("constant node cannot be modified")
	// ErrDestroyed is returned when a node that is being destroyed is attached.
	ErrDestroyed = stderrors.New("node is being destroyed")
	// ErrNotChild is returned when detaching a node from a parent that does not hold it.
	ErrNotChild = stderrors.New("node is not a child of this parent")
	// ErrCycle is returned when attaching a node under one of its own descendants.
	ErrCycle = stderrors.New("attaching node would create a cycle")
	// ErrNilNode is returned when a nil node is passed to a structural operation.
	ErrNilNode = stderrors.New("nil node")
	// ErrReentrantDrain is returned when Drain is called while a drain is running.
	ErrReentrantDrain = stderrors.New("drain called while processing")
	// ErrPropValue is reported when a property value has the wrong type.
	ErrPropValue = stderrors.New("value does not match property type")
	// ErrMalformedLength is returned for textual lengths that cannot be parsed.
	ErrMalformedLength = stderrors.New("malformed length")
)

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return stderrors.New(text)
}

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindUsage indicates an API misuse such as mutating a constant node.
	KindUsage
	// KindOwnership indicates a violation of the parent/handle ownership rules.
	KindOwnership
	// KindLength indicates a malformed length or unit specification.
	KindLength
	// KindLayout indicates a layout value that was degraded to a default.
	KindLayout
	// KindReplication indicates an inconsistent Box/View state.
	KindReplication
	// KindSchedule indicates a scheduler misuse or deferred work.
	KindSchedule
	// KindConfig indicates an invalid configuration value.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage"
	case KindOwnership:
		return "ownership"
	case KindLength:
		return "length"
	case KindLayout:
		return "layout"
	case KindReplication:
		return "replication"
	case KindSchedule:
		return "schedule"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// Severity orders reported errors. Anything above SeverityWarning is
// returned to the caller by Report.
type Severity int

const (
	// SeverityWarning marks a degraded but recoverable condition.
	SeverityWarning Severity = iota
	// SeverityError marks an aborted operation.
	SeverityError
	// SeverityFatal marks a programming-contract violation.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// SceneError represents a structured error in the scene graph.
type SceneError struct {
	// Op is the operation that failed (e.g., "scene.Element.Add").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Severity says whether the operation was aborted.
	Severity Severity
	// Object describes the offending object, if any.
	Object string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *SceneError) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("%s [%s] object=%s: %v", e.Op, e.Kind, e.Object, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *SceneError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "update.Scheduler.Drain").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the scene graph.
type ErrorHandler interface {
	// HandleError is called when an error or warning is reported.
	HandleError(err *SceneError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
