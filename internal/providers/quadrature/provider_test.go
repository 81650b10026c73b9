package quadrature

import (
	"context"
	"testing"

	"github.com/GriffinCanCode/quadrature/internal/config"
	"github.com/GriffinCanCode/quadrature/internal/integration"
	"github.com/GriffinCanCode/quadrature/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSuccess(t *testing.T, result *types.Result) {
	t.Helper()
	require.NotNil(t, result)
	if !result.Success {
		t.Fatalf("Expected success, got error: %v", *result.Error)
	}
}

func assertFailure(t *testing.T, result *types.Result) {
	t.Helper()
	require.NotNil(t, result)
	require.False(t, result.Success, "Expected failure, got success")
	require.NotNil(t, result.Error)
}

func TestQuadratureProvider(t *testing.T) {
	provider := NewProvider(integration.NewService(config.Default().Quadrature, nil, nil))
	ctx := context.Background()

	t.Run("Definition", func(t *testing.T) {
		def := provider.Definition()
		assert.Equal(t, "quadrature", def.ID)
		assert.Equal(t, types.CategoryMath, def.Category)

		ids := make([]string, 0, len(def.Tools))
		for _, tool := range def.Tools {
			ids = append(ids, tool.ID)
		}
		assert.ElementsMatch(t, []string{"math.integrate", "math.simpson", "math.sample", "math.integrands"}, ids)
	})

	t.Run("Integrate", func(t *testing.T) {
		t.Run("square", func(t *testing.T) {
			result, err := provider.Execute(ctx, "math.integrate", map[string]interface{}{
				"integrand": "square",
				"low":       0,
				"high":      1,
				"tol":       1e-6,
			}, nil)
			require.NoError(t, err)
			assertSuccess(t, result)
			assert.InDelta(t, 1.0/3.0, result.Data["result"], 1e-6)
			assert.Equal(t, false, result.Data["degraded"])
			assert.Equal(t, 0, result.Data["depth_exceeded"])
			assert.InDelta(t, 1.0/3.0, result.Data["exact"], 1e-15)
		})

		t.Run("oscillatory with compare", func(t *testing.T) {
			result, err := provider.Execute(ctx, "math.integrate", map[string]interface{}{
				"integrand": "oscillatory",
				"low":       1.0,
				"high":      3.0,
				"tol":       1e-4,
				"compare":   true,
			}, nil)
			require.NoError(t, err)
			assertSuccess(t, result)
			assert.InDelta(t, result.Data["reference"], result.Data["result"], 1e-3)
			assert.Less(t, result.Data["abs_error"], 1e-3)
		})

		t.Run("depth guard", func(t *testing.T) {
			result, err := provider.Execute(ctx, "math.integrate", map[string]interface{}{
				"integrand": "cusp",
				"low":       0.0,
				"high":      1.0,
				"max_depth": 5,
			}, nil)
			require.NoError(t, err)
			assertSuccess(t, result)
			assert.Equal(t, true, result.Data["degraded"])
			assert.Equal(t, 5, result.Data["max_depth"])
		})

		t.Run("degenerate interval", func(t *testing.T) {
			result, err := provider.Execute(ctx, "math.integrate", map[string]interface{}{
				"integrand": "reciprocal",
				"low":       0.0,
				"high":      0.0,
			}, nil)
			require.NoError(t, err)
			assertSuccess(t, result)
			assert.Equal(t, 0.0, result.Data["result"])
		})

		failures := []struct {
			name   string
			params map[string]interface{}
		}{
			{"missing integrand", map[string]interface{}{"low": 0.0, "high": 1.0}},
			{"missing low", map[string]interface{}{"integrand": "square", "high": 1.0}},
			{"missing high", map[string]interface{}{"integrand": "square", "low": 0.0}},
			{"unknown integrand", map[string]interface{}{"integrand": "nope", "low": 0.0, "high": 1.0}},
			{"zero tol", map[string]interface{}{"integrand": "square", "low": 0.0, "high": 1.0, "tol": 0.0}},
			{"zero depth", map[string]interface{}{"integrand": "square", "low": 0.0, "high": 1.0, "max_depth": 0}},
			{"negative tol", map[string]interface{}{"integrand": "square", "low": 0.0, "high": 1.0, "tol": -1.0}},
			{"fractional depth", map[string]interface{}{"integrand": "square", "low": 0.0, "high": 1.0, "max_depth": 2.5}},
			{"reversed interval", map[string]interface{}{"integrand": "square", "low": 1.0, "high": 0.0}},
			{"pole", map[string]interface{}{"integrand": "reciprocal", "low": -1.0, "high": 1.0}},
		}
		for _, tt := range failures {
			t.Run(tt.name, func(t *testing.T) {
				result, err := provider.Execute(ctx, "math.integrate", tt.params, nil)
				require.NoError(t, err)
				assertFailure(t, result)
			})
		}
	})

	t.Run("Integrate canceled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := provider.Execute(cctx, "math.integrate", map[string]interface{}{
			"integrand": "oscillatory",
			"low":       1.0,
			"high":      3.0,
		}, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("Simpson", func(t *testing.T) {
		result, err := provider.Execute(ctx, "math.simpson", map[string]interface{}{
			"integrand": "cube",
			"low":       0,
			"high":      2,
		}, nil)
		require.NoError(t, err)
		assertSuccess(t, result)
		assert.InDelta(t, 4.0, result.Data["result"], 1e-12)
	})

	t.Run("Sample", func(t *testing.T) {
		result, err := provider.Execute(ctx, "math.sample", map[string]interface{}{
			"integrand": "linear",
			"low":       0.0,
			"high":      1.0,
			"samples":   5,
		}, nil)
		require.NoError(t, err)
		assertSuccess(t, result)
		assert.Equal(t, 5, result.Data["count"])
		assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, result.Data["x"])

		result, err = provider.Execute(ctx, "math.sample", map[string]interface{}{
			"integrand": "linear",
			"low":       0.0,
			"high":      1.0,
			"samples":   1,
		}, nil)
		require.NoError(t, err)
		assertFailure(t, result)
	})

	t.Run("Integrands", func(t *testing.T) {
		result, err := provider.Execute(ctx, "math.integrands", nil, nil)
		require.NoError(t, err)
		assertSuccess(t, result)
		items, ok := result.Data["integrands"].([]map[string]interface{})
		require.True(t, ok)
		assert.NotEmpty(t, items)
	})

	t.Run("App context", func(t *testing.T) {
		caller := "cli"
		requestID := "req_01ARZ3NDEKTSV4RRFFQ69G5FAV"
		appCtx := &types.Context{Caller: &caller, RequestID: &requestID}

		result, err := provider.Execute(ctx, "math.simpson", map[string]interface{}{
			"integrand": "linear",
			"low":       0.0,
			"high":      2.0,
		}, appCtx)
		require.NoError(t, err)
		assertSuccess(t, result)
		assert.Equal(t, "cli", result.Data["caller"])
		assert.Equal(t, requestID, result.Data["request_id"])

		result, err = provider.Execute(ctx, "math.nope", nil, appCtx)
		require.NoError(t, err)
		assertFailure(t, result)
		assert.Equal(t, requestID, result.Data["request_id"])

		result, err = provider.Execute(ctx, "math.simpson", map[string]interface{}{
			"integrand": "linear",
			"low":       0.0,
			"high":      2.0,
		}, &types.Context{})
		require.NoError(t, err)
		assert.NotContains(t, result.Data, "caller")
		assert.NotContains(t, result.Data, "request_id")
	})

	t.Run("Unknown tool", func(t *testing.T) {
		result, err := provider.Execute(ctx, "math.nope", nil, nil)
		require.NoError(t, err)
		assertFailure(t, result)
	})
}
