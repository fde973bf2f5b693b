package save

import "fmt"

// Status is the outcome vocabulary reported to the control surface. The
// numeric values are part of the wire format.
type Status int

const (
	StatusOK Status = iota
	StatusErrorSub
	StatusErrorDir
	StatusErrorOther
	StatusWarning
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusErrorSub:
		return "ERROR_SUB"
	case StatusErrorDir:
		return "ERROR_DIR"
	case StatusErrorOther:
		return "ERROR_OTHER"
	case StatusWarning:
		return "WARNING"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is what a save reports back: a status and a message fit for the
// user. Err carries the underlying cause of ERROR_OTHER.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Err     error  `json:"-"`
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}

func result(status Status, message string) Result {
	return Result{Status: status, Message: message}
}

func failure(err error) Result {
	return Result{
		Status:  StatusErrorOther,
		Message: "Save failed: " + err.Error(),
		Err:     err,
	}
}
