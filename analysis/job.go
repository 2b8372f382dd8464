package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is an analysis running in the background.
type Job struct {
	Path string

	mu        sync.RWMutex
	status    Status
	startedAt time.Time
	endedAt   time.Time
	outcome   Outcome
	done      chan struct{}
}

// Trigger starts AnalyzeAndExport on its own goroutine and returns at once.
// The run cannot be cancelled.
func Trigger(provider Provider, path string, opts Options) *Job {
	if path == "" {
		path = DefaultReportPath
	}
	job := &Job{Path: path, status: StatusPending, done: make(chan struct{})}
	go job.run(provider, opts)
	return job
}

func (j *Job) run(provider Provider, opts Options) {
	defer close(j.done)

	j.mu.Lock()
	j.status = StatusRunning
	j.startedAt = time.Now()
	j.mu.Unlock()

	outcome := AnalyzeAndExport(context.Background(), provider, j.Path, opts)

	j.mu.Lock()
	defer j.mu.Unlock()
	j.endedAt = time.Now()
	j.outcome = outcome
	if outcome.Err != nil {
		j.status = StatusFailed
	} else {
		j.status = StatusCompleted
	}
}

// Message is the notice shown to whoever triggered the job.
func (j *Job) Message() string {
	return fmt.Sprintf("The reflect analysis result is being generated asynchronously, check the %s file later", j.Path)
}

func (j *Job) Status() Status {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status
}

// Elapsed is the run time so far, or the total once the job has ended.
func (j *Job) Elapsed() time.Duration {
	j.mu.RLock()
	defer j.mu.RUnlock()
	switch {
	case j.startedAt.IsZero():
		return 0
	case j.endedAt.IsZero():
		return time.Since(j.startedAt)
	}
	return j.endedAt.Sub(j.startedAt)
}

// Done is closed when the job has finished.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job has finished and returns its outcome.
func (j *Job) Wait() Outcome {
	<-j.done
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.outcome
}
