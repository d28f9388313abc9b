//go:build unit

package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/devops2blob/internal/domain/entities"
	"github.com/rios0rios0/devops2blob/internal/infrastructure/repositories/metrics"
)

func TestRecorderRepository(t *testing.T) {
	t.Parallel()

	t.Run("should count uploaded files and bytes", func(t *testing.T) {
		t.Parallel()

		// given
		registry := prometheus.NewRegistry()
		recorder := metrics.NewRecorderRepository(registry)

		// when
		recorder.FileUploaded("q1.csv", 10)
		recorder.FileUploaded("report.pdf", 32)

		// then
		families, err := registry.Gather()
		require.NoError(t, err)
		values := map[string]float64{}
		for _, family := range families {
			if family.GetMetric()[0].GetCounter() != nil {
				values[family.GetName()] = family.GetMetric()[0].GetCounter().GetValue()
			}
		}
		assert.InDelta(t, 2, values["devops2blob_files_uploaded_total"], 0)
		assert.InDelta(t, 42, values["devops2blob_bytes_uploaded_total"], 0)
	})

	t.Run("should count runs by outcome", func(t *testing.T) {
		t.Parallel()

		// given
		registry := prometheus.NewRegistry()
		recorder := metrics.NewRecorderRepository(registry)

		// when
		recorder.RunFinished(entities.RunOutcomeSuccess, time.Second)
		recorder.RunFinished(entities.RunOutcomeBindError, time.Second)
		recorder.RunFinished(entities.RunOutcomeSuccess, 2*time.Second)

		// then
		runs, err := testutil.GatherAndCount(registry, "devops2blob_runs_total")
		require.NoError(t, err)
		durations, err := testutil.GatherAndCount(registry, "devops2blob_run_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 2, runs)
		assert.Equal(t, 1, durations)
	})
}
