// Package metrics defines the observability interface for bridge file
// operations. Implementations are optional: pass nil to disable collection
// with zero overhead.
package metrics

import "time"

// OperationMetrics records completed file operations at the host endpoint.
type OperationMetrics interface {
	// RecordOperation records a completed operation.
	//
	// Parameters:
	//   - operation: operation name ("stat", "read", "write", ...)
	//   - scheme: URI scheme the operation targeted
	//   - duration: time taken to process the operation
	//   - errorCode: wire error code if the operation failed, empty on success
	RecordOperation(operation, scheme string, duration time.Duration, errorCode string)

	// RecordPayloadSize records the content size of a read or write.
	RecordPayloadSize(operation, scheme string, bytes int)
}
