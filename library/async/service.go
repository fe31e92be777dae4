package async

import (
	"context"
	"sync"
)

func NewService(loop Loop) Service {
	if loop == nil {
		panic("async: nil service loop")
	}

	return &service{
		loop:    loop,
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

type service struct {
	loop Loop
	mu   sync.Mutex

	running  bool
	cancel   context.CancelFunc
	ready    sync.Once
	startErr error
	stopErr  error

	started chan struct{}
	stopped chan struct{}
}

func (s *service) Start() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running && s.cancel == nil {
		var ctx context.Context
		ctx, s.cancel = context.WithCancel(context.Background())
		s.running = true
		go s.main(ctx)
	}
	return s.started
}

func (s *service) Started() <-chan struct{} { return s.started }
func (s *service) Stopped() <-chan struct{} { return s.stopped }

func (s *service) StartError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startErr
}

func (s *service) StartAndWait() error {
	<-s.Start()
	return s.StartError()
}

func (s *service) Stop() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.cancel == nil:
		// Never started.
		s.cancel = func() {}
		s.markReady()
		close(s.stopped)
	case s.running:
		s.cancel()
	}
	return s.stopped
}

func (s *service) StopError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopErr
}

func (s *service) StopAndWait() error {
	<-s.Stop()
	return s.StopError()
}

func (s *service) markReady() {
	s.ready.Do(func() { close(s.started) })
}

func (s *service) main(ctx context.Context) {
	ready := false
	err := s.loop(ctx, func() {
		s.mu.Lock()
		ready = true
		s.mu.Unlock()
		s.markReady()
	})

	s.mu.Lock()
	if ready {
		s.stopErr = err
	} else {
		s.startErr = err
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.markReady()
	close(s.stopped)
}
