package operations

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Black-And-White-Club/majors-pool/pkg/observability/metrics"
	"github.com/Black-And-White-Club/majors-pool/pkg/results"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var errBusiness = errors.New("business rule")

func newRunner(reg prometheus.Registerer) *Runner {
	return &Runner{
		Service: "TestService",
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.NewOperationMetrics(reg, "test"),
		Tracer:  noop.NewTracerProvider().Tracer("test"),
	}
}

func TestWithTelemetry(t *testing.T) {
	tests := []struct {
		name        string
		op          Func[int, error]
		wantErr     bool
		wantFailure bool
		wantValue   int
	}{
		{
			name: "success",
			op: func(ctx context.Context) (results.OperationResult[int, error], error) {
				return results.SuccessResult[int, error](7), nil
			},
			wantValue: 7,
		},
		{
			name: "domain failure is not an error",
			op: func(ctx context.Context) (results.OperationResult[int, error], error) {
				return results.FailureResult[int, error](errBusiness), nil
			},
			wantFailure: true,
		},
		{
			name: "infrastructure error is wrapped",
			op: func(ctx context.Context) (results.OperationResult[int, error], error) {
				return results.OperationResult[int, error]{}, errors.New("db down")
			},
			wantErr: true,
		},
		{
			name: "panic is recovered",
			op: func(ctx context.Context) (results.OperationResult[int, error], error) {
				panic("boom")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRunner(prometheus.NewRegistry())
			result, err := WithTelemetry(r, context.Background(), "DoThing", "id-1", tt.op)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "DoThing")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFailure, result.IsFailure())
			if !tt.wantFailure {
				assert.Equal(t, tt.wantValue, *result.Success)
			}
		})
	}
}

func TestWithTelemetry_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := newRunner(reg)

	_, _ = WithTelemetry(r, context.Background(), "DoThing", "", func(ctx context.Context) (results.OperationResult[int, error], error) {
		return results.SuccessResult[int, error](1), nil
	})
	_, _ = WithTelemetry(r, context.Background(), "DoThing", "", func(ctx context.Context) (results.OperationResult[int, error], error) {
		return results.OperationResult[int, error]{}, errors.New("db down")
	})

	count, err := testutil.GatherAndCount(reg, "majors_pool_test_operation_attempts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRunInTx_WithoutDBUsesNilHandle(t *testing.T) {
	r := newRunner(prometheus.NewRegistry())
	called := false
	result, err := RunInTx(r, context.Background(), func(ctx context.Context, db bun.IDB) (results.OperationResult[string, error], error) {
		called = true
		assert.Nil(t, db)
		return results.SuccessResult[string, error]("ok"), nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ok", *result.Success)
}

func TestUnwrap(t *testing.T) {
	v, err := Unwrap(results.SuccessResult[string, error]("ok"), nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	_, err = Unwrap(results.FailureResult[string, error](errBusiness), nil)
	assert.ErrorIs(t, err, errBusiness)

	_, err = Unwrap(results.OperationResult[string, error]{}, errors.New("db down"))
	assert.EqualError(t, err, "db down")
}
