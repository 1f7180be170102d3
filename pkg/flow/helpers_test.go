package flow_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/kode4food/flowcomm/pkg/flow"
)

const homeURL = "http://www.avol.io/"

type testEnv struct {
	Registry *flow.Registry
	History  *flow.History
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T, opts ...flow.Option) *testEnv {
	t.Helper()
	var buf bytes.Buffer
	nav := flow.NewHistory(homeURL)
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	all := append([]flow.Option{
		flow.WithNavigator(nav),
		flow.WithLogger(logger),
	}, opts...)
	return &testEnv{
		Registry: flow.New(all...),
		History:  nav,
		logs:     &buf,
	}
}

func (e *testEnv) Logs() string {
	return e.logs.String()
}

func (e *testEnv) Count(level string) int {
	return strings.Count(e.logs.String(), "level="+level)
}

func (e *testEnv) ClearLogs() {
	e.logs.Reset()
}
