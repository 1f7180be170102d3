package assert

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/flowcomm/internal/config"
	"github.com/kode4food/flowcomm/pkg/flow"
)

// Wrapper wraps testify assertions with flow-specific helpers
type Wrapper struct {
	*testing.T
	*assert.Assertions
	Require *require.Assertions
}

// DefaultRetryInterval is the default polling interval for Eventually checks
const DefaultRetryInterval = 10 * time.Millisecond

// New creates a new test assertion wrapper with both assert and require from
// testify plus flow-specific helpers
func New(t *testing.T) *Wrapper {
	return &Wrapper{
		T:          t,
		Assertions: assert.New(t),
		Require:    require.New(t),
	}
}

// Pending asserts that a result has not been resolved and carries exactly
// the given extra data
func (w *Wrapper) Pending(res *flow.Result, extra map[string]any) {
	w.Helper()
	w.Require.NotNil(res)
	w.Equal(&flow.Result{
		Status: flow.Pending,
		Extra:  extra,
	}, res)
}

// Done asserts that a result was resolved with output and carries exactly
// the given extra data
func (w *Wrapper) Done(res *flow.Result, output any, extra map[string]any) {
	w.Helper()
	w.Require.NotNil(res)
	w.Equal(&flow.Result{
		Output: output,
		Status: flow.Done,
		Extra:  extra,
	}, res)
}

// NotFound asserts that err reports a missing flow
func (w *Wrapper) NotFound(err error) {
	w.Helper()
	w.True(errors.Is(err, flow.ErrFlowNotFound),
		"expected flow not found, got %v", err)
}

// ActiveFlow asserts that name is the most recently activated flow
func (w *Wrapper) ActiveFlow(r *flow.Registry, name flow.Name) {
	w.Helper()
	got, ok := r.IsActive(name)
	w.True(ok, "expected %s to be active, history %v", name, r.History())
	w.Equal(name, got)
}

// Inactive asserts that none of the names are active
func (w *Wrapper) Inactive(r *flow.Registry, names ...flow.Name) {
	w.Helper()
	got, ok := r.IsActive(names...)
	w.False(ok, "expected %v to be inactive, got %s", names, got)
}

// ConfigValid asserts that a configuration is valid
func (w *Wrapper) ConfigValid(cfg *config.Config) {
	w.Helper()
	w.NoError(cfg.Validate())
	w.True(cfg.APIPort > 0 && cfg.APIPort <= config.MaxTCPPort)
	w.True(cfg.ShutdownTimeout > 0)
}

// ConfigInvalid asserts that a configuration is invalid
func (w *Wrapper) ConfigInvalid(cfg *config.Config, contains string) {
	w.Helper()
	err := cfg.Validate()
	w.Error(err)
	if contains != "" && err != nil {
		w.Contains(err.Error(), contains)
	}
}

// Eventually retries fn until it returns true or the timeout elapses
func (w *Wrapper) Eventually(fn func() bool, timeout time.Duration) {
	w.Helper()
	w.Assertions.Eventually(fn, timeout, DefaultRetryInterval)
}
