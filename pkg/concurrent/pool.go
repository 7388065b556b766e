package concurrent

import (
	"errors"
	"time"
)

var ErrScheduleTimeout = errors.New("schedule error: timed out")

/*
Pool. goroutine pool for the websocket server: at most size goroutines run tasks, tasks beyond
that wait in a queue of queueSize. goroutines are started lazily and live until Close.
*/
type Pool struct {
	sem  chan struct{}
	work chan func()
}

func NewPool(size, queueSize int) *Pool {
	return &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queueSize),
	}
}

// Spawn. starts n idle goroutines up front. n above the pool size blocks until goroutines exit.
func (p *Pool) Spawn(n int) {
	for i := 0; i < n; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}
}

// Schedule. runs task on a pool goroutine, blocking while the pool and queue are full.
func (p *Pool) Schedule(task func()) {
	p.schedule(task, nil)
}

// ScheduleTimeout. like Schedule, ErrScheduleTimeout when no goroutine or queue slot frees up within timeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()

	for task := range p.work {
		task()
	}
}

// Close. stops the pool goroutines once the queued tasks are done. no Schedule after Close.
func (p *Pool) Close() {
	close(p.work)
}
