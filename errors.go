// errors.go — diagnostics carried by parse results and batch runs.
//
// Diagnostics never abort anything. The extraction core records what went
// wrong and keeps going; callers decide what a given severity means for
// their exit status. Codes are stable strings so downstream tooling can
// match on them without parsing messages.
package binder

import "fmt"

// Severity classifies a Diagnostic.
type Severity int

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "info"
	}
}

// Stable diagnostic codes. New codes are appended, never renumbered.
const (
	CodeNoInputs      = "B1001" // no script files under the configured root
	CodeOutsideRoot   = "B1002" // a file resolves outside the configured root
	CodeNothingToBind = "B1003" // a file yields no exposable declarations
	CodeFileFailed    = "B1004" // one file's processing failed; batch continues
	CodeInternal      = "B1005" // unexpected internal failure
)

// Diagnostic is one reportable condition. File is empty for diagnostics
// raised inside Parse, where the caller already knows the file.
type Diagnostic struct {
	Code     string
	Severity Severity
	Message  string
	File     string
}

func (d Diagnostic) String() string {
	if d.File != "" {
		return fmt.Sprintf("%s [%s] %s: %s", d.Severity, d.Code, d.File, d.Message)
	}
	return fmt.Sprintf("%s [%s] %s", d.Severity, d.Code, d.Message)
}

// HasErrors reports whether any diagnostic in the list is error-severity.
// Callers map this to their exit status; lower severities never fail a run.
func HasErrors(diags []Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == SevError {
			return true
		}
	}
	return false
}

// internalDiag converts a recovered panic value into a CodeInternal
// diagnostic. Used by Parse and by the batch driver's per-file guard.
func internalDiag(r any) Diagnostic {
	return Diagnostic{
		Code:     CodeInternal,
		Severity: SevError,
		Message:  fmt.Sprintf("internal failure: %v", r),
	}
}
