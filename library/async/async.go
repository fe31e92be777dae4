// Package async runs long-lived loops as services that can be started and
// stopped from the outside.
package async

import "context"

type Starter interface {
	Start() <-chan struct{}
	StartAndWait() error
	Started() <-chan struct{}
	StartError() error
}

type Stopper interface {
	Stop() <-chan struct{}
	StopAndWait() error
	Stopped() <-chan struct{}
	StopError() error
}

type Service interface {
	Starter
	Stopper
}

// Loop is the body of a service. It calls ready once it is able to serve and
// returns when ctx is cancelled. An error returned before ready is a start
// error, after it a stop error.
type Loop func(ctx context.Context, ready func()) error
