package dispatch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type DispatchSuite struct {
	suite.Suite
}

func (suite *DispatchSuite) TestSubmitRunsTask(t provider.T) {
	t.Parallel()

	pool := New(2, 8, time.Second)
	defer pool.Stop()

	var wg sync.WaitGroup
	wg.Add(1)

	ok := pool.Submit(Task{
		Name: "probe",
		Run: func(ctx context.Context) error {
			wg.Done()
			return nil
		},
	})

	assert.True(t, ok)
	wg.Wait()
}

func (suite *DispatchSuite) TestSubmitRejectsEmptyTask(t provider.T) {
	t.Parallel()

	pool := New(1, 1, time.Second)
	defer pool.Stop()

	assert.False(t, pool.Submit(Task{Name: "empty"}))
}

func (suite *DispatchSuite) TestSurvivesPanicAndError(t provider.T) {
	t.Parallel()

	pool := New(1, 8, time.Second)
	defer pool.Stop()

	done := make(chan struct{})

	pool.Submit(Task{
		Name: "panics",
		Run: func(ctx context.Context) error {
			panic("boom")
		},
	})
	pool.Submit(Task{
		Name: "fails",
		Run: func(ctx context.Context) error {
			return errors.New("expected failure")
		},
	})
	pool.Submit(Task{
		Name: "still alive",
		Run: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not survive preceding failures")
	}
}

func (suite *DispatchSuite) TestStopDrainsQueue(t provider.T) {
	t.Parallel()

	pool := New(2, 16, time.Second)

	var mu sync.Mutex
	ran := 0
	for range 10 {
		pool.Submit(Task{
			Name: "counted",
			Run: func(ctx context.Context) error {
				mu.Lock()
				ran++
				mu.Unlock()
				return nil
			},
		})
	}

	pool.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 10, ran)
}

func (suite *DispatchSuite) TestTaskContextCarriesTimeout(t provider.T) {
	t.Parallel()

	pool := New(1, 1, time.Second)
	defer pool.Stop()

	deadlines := make(chan bool, 1)
	pool.Submit(Task{
		Name: "deadline probe",
		Run: func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			deadlines <- ok
			return nil
		},
	})

	assert.True(t, <-deadlines)
}

func TestDispatchSuite(t *testing.T) {
	suite.RunSuite(t, new(DispatchSuite))
}
