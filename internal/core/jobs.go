package core

import (
	"context"
)

// GateRequest asks for one change to be evaluated in the background.
type GateRequest struct {
	Ref            ChangeRef
	HeadSHA        string
	InstallationID int64
	// Trigger names the webhook event that produced the request.
	Trigger string
}

// JobDispatcher defines the contract for a system that can accept and queue
// gate evaluations. It decouples the webhook handler from job execution.
type JobDispatcher interface {
	// Dispatch queues a request. It returns an error if the queue is full.
	Dispatch(ctx context.Context, req *GateRequest) error
	Stop()
}

// Job is a single, executable unit of work run by the dispatcher.
type Job interface {
	Run(ctx context.Context, req *GateRequest) error
}
