package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Orange-Health/deploy-report/internal/models"
)

func TestPool(t *testing.T) {
	namesChannel := make(chan string)
	recordsChannel := Pool(3, namesChannel, mockWorker)
	var testData = map[string]struct{}{
		"oms-api":     {},
		"oms-worker":  {},
		"partner-api": {},
		"occ-web":     {},
		"bifrost":     {},
	}

	go func() {
		for k := range testData {
			namesChannel <- k
		}
		close(namesChannel)
	}()

	cnt := 0
	for rec := range recordsChannel {
		_, ok := testData[rec.Service]
		assert.True(t, ok)
		cnt++
	}
	assert.Equal(t, len(testData), cnt)
}

func TestNewStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	namesChannel := make(chan string, 2)
	namesChannel <- "oms-api"
	namesChannel <- "oms-worker"
	close(namesChannel)

	processed := 0
	w := New(ctx, func(ctx context.Context, service string) models.ServiceRecord {
		processed++
		return models.ServiceRecord{Service: service}
	})

	recC := make(chan models.ServiceRecord, 2)
	w(0, namesChannel, recC)
	assert.Equal(t, 0, processed)
}

func mockWorker(ind int, nameC <-chan string, recC chan<- models.ServiceRecord) {
	for service := range nameC {
		recC <- models.ServiceRecord{Service: service, Tag: "build-1"}
	}
}
