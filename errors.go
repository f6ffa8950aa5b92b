package fortiadc

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors returned by the client. Match with errors.Is.
var (
	// ErrAuthenticationFailed indicates the appliance rejected the
	// configured credentials (HTTP 401 on login).
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrUnsupportedMethod indicates Do was called with a method name
	// outside GET/POST/PUT/DELETE. No request is issued in that case.
	ErrUnsupportedMethod = errors.New("unsupported request method")
)

// ErrorKind classifies vendor error codes into coarse categories that
// callers can switch on without memorizing numeric codes.
type ErrorKind int

const (
	// KindUnknown covers every code without a specific classification.
	KindUnknown ErrorKind = iota

	// KindEntryMissing means the referenced configuration entry does not
	// exist on the appliance (codes -1 and -13).
	KindEntryMissing

	// KindDuplicateEntry means an entry with the same key already exists
	// (code -15).
	KindDuplicateEntry

	// KindEntryNotFound is reserved for callers that map HTTP 404 lookups
	// onto the same taxonomy. No vendor code produces it directly.
	KindEntryNotFound
)

// String returns a short human-readable name for the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindEntryMissing:
		return "entry missing"
	case KindDuplicateEntry:
		return "duplicate entry"
	case KindEntryNotFound:
		return "entry not found"
	default:
		return "unknown"
	}
}

// errorKindByCode is the static vendor-code classification table.
var errorKindByCode = map[int]ErrorKind{
	-1:  KindEntryMissing,
	-13: KindEntryMissing,
	-15: KindDuplicateEntry,
}

// KindForCode returns the ErrorKind for a vendor error code.
// Codes absent from the table classify as KindUnknown.
func KindForCode(code int) ErrorKind {
	if kind, ok := errorKindByCode[code]; ok {
		return kind
	}
	return KindUnknown
}

// APIError is an application-level failure reported by the appliance as a
// negative payload inside an otherwise successful HTTP response.
type APIError struct {
	// Kind is the static classification of Code.
	Kind ErrorKind

	// Code is the vendor error code, always negative.
	Code int

	// Message is the catalog-resolved description of Code.
	Message string
}

// NewAPIError builds an APIError for a vendor code, classifying it via the
// static code table.
func NewAPIError(code int, message string) *APIError {
	return &APIError{
		Kind:    KindForCode(code),
		Code:    code,
		Message: message,
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("appliance error %d (%s): %s", e.Code, e.Kind, e.Message)
}
