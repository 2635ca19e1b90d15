package worker

import (
	"context"
	"sync"

	"github.com/Orange-Health/deploy-report/internal/models"
)

// ServiceWorker drains service names from nameC and emits assembled records
// on recC.
type ServiceWorker func(ind int, nameC <-chan string, recC chan<- models.ServiceRecord)

// Pool fans service names out to countWorkers workers and closes the record
// channel once all of them drain.
func Pool(countWorkers int, nameC <-chan string, w ServiceWorker) <-chan models.ServiceRecord {
	recC := make(chan models.ServiceRecord, countWorkers)
	go func() {
		defer close(recC)
		var wg sync.WaitGroup
		wg.Add(countWorkers)
		for i := 0; i < countWorkers; i++ {
			go func(ind int, wg *sync.WaitGroup) {
				defer wg.Done()
				w(ind, nameC, recC)
			}(i, &wg)
		}
		wg.Wait()
	}()

	return recC
}

// New builds a worker around the per-service processing function. Workers
// stop picking up new services once the context is cancelled.
func New(ctx context.Context, process func(ctx context.Context, service string) models.ServiceRecord) ServiceWorker {
	return func(ind int, nameC <-chan string, recC chan<- models.ServiceRecord) {
		for service := range nameC {
			select {
			case <-ctx.Done():
				return
			default:
			}

			recC <- process(ctx, service)
		}
	}
}
