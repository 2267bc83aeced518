// Package workers runs the background processes of the server. Every worker
// blocks until its context is cancelled, so the signal context that stops
// the transports stops the workers as well.
package workers

import "context"

// Worker is a background process. Run blocks until ctx is done.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// StatusReporter receives the result of every storage probe.
type StatusReporter interface {
	ReportStorageStatus(up bool)
}
