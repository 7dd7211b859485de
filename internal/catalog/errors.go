package catalog

import "fmt"

// RemoteError reports a failed catalog request. StatusCode is zero when the
// request never produced an HTTP response.
type RemoteError struct {
	StatusCode int
	Err        error
}

func (e *RemoteError) Error() string {
	switch {
	case e.StatusCode == 0 && e.Err != nil:
		return fmt.Sprintf("catalog request failed: %v", e.Err)
	case e.Err != nil:
		return fmt.Sprintf("catalog returned status %d: %v", e.StatusCode, e.Err)
	default:
		return fmt.Sprintf("catalog returned status %d", e.StatusCode)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether the failure happened below HTTP (DNS, timeout,
// connection reset, cancellation).
func (e *RemoteError) IsTransport() bool {
	return e.StatusCode == 0
}
