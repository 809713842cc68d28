package service

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchTracker(t *testing.T) {
	tracker := NewBatchTracker(3)

	tracker.Resized("a.jpg")
	tracker.Failed("b.jpg", errors.New("mock error"))
	tracker.Resized("c.jpg")

	report := tracker.Report()
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, []string{"a.jpg", "c.jpg"}, report.Resized)
	require.Len(t, report.Failed, 1)
	assert.Equal(t, "b.jpg", report.Failed[0].File)
	assert.EqualError(t, report.Failed[0].Err, "mock error")
}

func TestBatchTrackerReportIsSnapshot(t *testing.T) {
	tracker := NewBatchTracker(2)
	tracker.Resized("a.jpg")

	report := tracker.Report()
	tracker.Resized("b.jpg")

	assert.Len(t, report.Resized, 1)
	assert.Len(t, tracker.Report().Resized, 2)
}

func TestBatchTrackerConcurrentUse(t *testing.T) {
	tracker := NewBatchTracker(100)

	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Resized("x.png")
		}()
	}
	wg.Wait()

	assert.Len(t, tracker.Report().Resized, 100)
}
