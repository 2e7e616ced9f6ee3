package orchestrator

import "errors"

// ErrNoData signals that no line items could be extracted from any
// source file; the run terminates before aggregation.
var ErrNoData = errors.New("no records extracted from source directory")
