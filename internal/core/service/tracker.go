package service

import (
	"sizemic/internal/core/domain"
	"slices"
	"sync"
)

type Tracker interface {
	Resized(file string)
	Failed(file string, err error)
	Report() *domain.BatchReport
}

// BatchTracker collects the outcome of every file in a manifest run.
type BatchTracker struct {
	mutex   sync.Mutex
	total   int
	resized []string
	failed  []domain.FileError
}

func NewBatchTracker(total int) *BatchTracker {
	return &BatchTracker{total: total}
}

func (t *BatchTracker) Resized(file string) {
	t.mutex.Lock()
	t.resized = append(t.resized, file)
	t.mutex.Unlock()
}

func (t *BatchTracker) Failed(file string, err error) {
	t.mutex.Lock()
	t.failed = append(t.failed, domain.FileError{File: file, Err: err})
	t.mutex.Unlock()
}

// Report returns a snapshot of the outcomes recorded so far.
func (t *BatchTracker) Report() *domain.BatchReport {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	return &domain.BatchReport{
		Total:   t.total,
		Resized: slices.Clone(t.resized),
		Failed:  slices.Clone(t.failed),
	}
}
