package batch

import (
	"context"
	"strings"
	"testing"

	"github.com/GriffinCanCode/quadrature/internal/config"
	"github.com/GriffinCanCode/quadrature/internal/integration"
	"github.com/GriffinCanCode/quadrature/internal/monitoring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func ptr[T any](v T) *T { return &v }

func newRunner(workers int) (*Runner, *monitoring.Metrics) {
	metrics := monitoring.NewMetrics()
	svc := integration.NewService(config.Default().Quadrature, nil, metrics)
	return NewRunner(svc, workers), metrics
}

func TestLoadTOML(t *testing.T) {
	jobs, err := Load("testdata/jobs.toml")
	require.NoError(t, err)
	require.Len(t, jobs, 4)

	assert.Equal(t, Job{Name: "parabola", Integrand: "square", Low: 0, High: 1, Tolerance: ptr(1e-6)}, jobs[0])
	assert.True(t, jobs[1].Compare)
	require.NotNil(t, jobs[2].MaxDepth)
	assert.Equal(t, 5, *jobs[2].MaxDepth)
	assert.Nil(t, jobs[2].Tolerance)
	assert.Equal(t, -1.0, jobs[3].Low)
}

func TestLoadYAMLAssignsNames(t *testing.T) {
	jobs, err := Load("testdata/jobs.yaml")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "parabola", jobs[0].Name)
	require.NotNil(t, jobs[0].Tolerance)
	assert.Equal(t, 1e-6, *jobs[0].Tolerance)
	assert.True(t, strings.HasPrefix(jobs[1].Name, "job_"))
	assert.Equal(t, "gaussian", jobs[1].Integrand)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("jobs = 1"), "json")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Parse([]byte("[[jobs]\nname="), "toml")
	assert.Error(t, err)

	_, err = Parse([]byte("jobs: [\n"), "yaml")
	assert.Error(t, err)

	_, err = Load("testdata/missing.toml")
	assert.Error(t, err)
}

func TestRunKeepsOrderAndIsolatesFailures(t *testing.T) {
	jobs, err := Load("testdata/jobs.toml")
	require.NoError(t, err)

	runner, metrics := newRunner(3)
	outcomes, err := runner.Run(context.Background(), jobs)
	require.NoError(t, err)
	require.Len(t, outcomes, len(jobs))

	for i, out := range outcomes {
		assert.Equal(t, jobs[i].Name, out.Job)
	}

	require.False(t, outcomes[0].Failed())
	assert.InDelta(t, 1.0/3.0, outcomes[0].Response.Result.Value, 1e-6)

	require.False(t, outcomes[1].Failed())
	require.NotNil(t, outcomes[1].Response.AbsError)
	assert.Less(t, *outcomes[1].Response.AbsError, 1e-3)

	require.False(t, outcomes[2].Failed())
	assert.True(t, outcomes[2].Response.Result.Degraded())

	assert.True(t, outcomes[3].Failed())
	assert.Nil(t, outcomes[3].Response)
	assert.Contains(t, outcomes[3].Error, "not evaluable")

	snap := metrics.Snapshot()
	assert.Equal(t, int64(4), snap.Integrations)
	assert.Equal(t, int64(1), snap.Errors)
	assert.Equal(t, int64(1), snap.Degraded)
}

func TestRunExplicitZeroToleranceFails(t *testing.T) {
	jobs, err := Parse([]byte(`
[[jobs]]
name = "zero"
integrand = "square"
low = 0.0
high = 1.0
tol = 0.0

[[jobs]]
name = "default"
integrand = "square"
low = 0.0
high = 1.0
`), "toml")
	require.NoError(t, err)
	require.NotNil(t, jobs[0].Tolerance)
	assert.Nil(t, jobs[1].Tolerance)

	runner, _ := newRunner(2)
	outcomes, err := runner.Run(context.Background(), jobs)
	require.NoError(t, err)

	assert.True(t, outcomes[0].Failed())
	assert.Contains(t, outcomes[0].Error, "tolerance")
	require.False(t, outcomes[1].Failed())
	assert.Equal(t, 1e-6, outcomes[1].Response.Tolerance)
}

func TestRunSingleWorker(t *testing.T) {
	runner, _ := newRunner(0)
	outcomes, err := runner.Run(context.Background(), []Job{
		{Name: "a", Integrand: "linear", Low: 0, High: 2},
		{Name: "b", Integrand: "cube", Low: 0, High: 2},
	})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, outcomes[0].Response.Result.Value, 1e-12)
	assert.InDelta(t, 4.0, outcomes[1].Response.Result.Value, 1e-12)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner, _ := newRunner(2)
	_, err := runner.Run(ctx, []Job{{Name: "a", Integrand: "oscillatory", Low: 1, High: 3}})
	assert.ErrorIs(t, err, context.Canceled)
}
