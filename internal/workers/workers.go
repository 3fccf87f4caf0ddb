package workers

type Workers struct {
	workers []Worker
}

// NewWorkers aggregates the given workers.
func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
