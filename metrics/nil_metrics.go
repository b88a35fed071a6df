package metrics

import (
	"time"
)

// NilEngine discards all metrics. Useful for tests and for running with
// metrics disabled.
type NilEngine struct{}

func (NilEngine) RecordRequest(reqType RequestType, status RequestStatus)     {}
func (NilEngine) RecordRequestTime(reqType RequestType, length time.Duration) {}
func (NilEngine) RecordRenderTime(formatType string, length time.Duration)    {}
func (NilEngine) RecordBatchSize(size int)                                    {}
func (NilEngine) RecordItemFailure(code string)                               {}
func (NilEngine) RecordStorageRequestTime(success bool, length time.Duration) {}
