package audit

import "errors"

// ErrInboxFull signals that the worker's buffer is saturated and the event
// was dropped. Audit is best-effort; callers log and move on.
var ErrInboxFull = errors.New("audit inbox full, event dropped")
