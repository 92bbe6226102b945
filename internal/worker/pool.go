package worker

import (
	"sync"

	"github.com/cooooin/harmony/internal/metrics"
)

type task func()

// Pool runs background jobs, mainly audit writes, off the request path.
type Pool struct {
	wg   sync.WaitGroup
	jobs chan task
}

func NewPool(n int) *Pool {
	p := &Pool{jobs: make(chan task, 1024)}
	for i := 0; i < n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				job()
				metrics.WorkerQueueDepth.Dec()
			}
		}()
	}
	return p
}

// Submit blocks when the queue is full rather than dropping the job.
func (p *Pool) Submit(f task) {
	metrics.WorkerQueueDepth.Inc()
	p.jobs <- f
}

// Stop drains the queue and waits for in-flight jobs.
func (p *Pool) Stop() { close(p.jobs); p.wg.Wait() }
