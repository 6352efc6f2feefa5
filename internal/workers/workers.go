package workers

// Workers aggregates background workers and starts them together.
type Workers struct {
	workers []Worker
}

// NewWorkers collects the given workers into one aggregate.
func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every registered worker in registration order.
func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
