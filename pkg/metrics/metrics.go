package metrics

import (
	"path"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Metric names recorded by the storefront.
const (
	StoreRetry        = "storefront_store_retry"
	StoreFailure      = "storefront_store_failure"
	BrokenImageReport = "storefront_broken_image_report"
	PoolActive        = "storefront_pool_active"
	HealthCheckFailed = "storefront_health_failed"
)

var (
	storage tstorage.Storage
	mu      sync.RWMutex
)

// InitMetrics opens the time-series storage under <workdir>/data/metrics.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	if storage != nil {
		return nil
	}
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(path.Join(workdir, "data", "metrics")),
		tstorage.WithPartitionDuration(time.Hour),
		tstorage.WithRetention(7*24*time.Hour),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// InitMemoryMetrics opens an in-memory storage, used by tests and by
// deployments without a writable workdir.
func InitMemoryMetrics() error {
	mu.Lock()
	defer mu.Unlock()
	if storage != nil {
		return nil
	}
	s, err := tstorage.NewStorage(tstorage.WithTimestampPrecision(tstorage.Seconds))
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// Record stores one data point. It is a no-op before InitMetrics.
func Record(name string, value float64, labels ...tstorage.Label) {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{{
		Metric:    name,
		Labels:    labels,
		DataPoint: tstorage.DataPoint{Timestamp: time.Now().Unix(), Value: value},
	}})
}

// Sum adds up every point of the series recorded since the given time.
func Sum(name string, since time.Time, labels ...tstorage.Label) float64 {
	mu.RLock()
	defer mu.RUnlock()
	if storage == nil {
		return 0
	}
	points, err := storage.Select(name, labels, since.Unix(), time.Now().Unix()+1)
	if err != nil {
		// ErrNoDataPoints included
		return 0
	}
	var total float64
	for _, p := range points {
		total += p.Value
	}
	return total
}

// Label is a shorthand for building a series label.
func Label(name, value string) tstorage.Label {
	return tstorage.Label{Name: name, Value: value}
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
