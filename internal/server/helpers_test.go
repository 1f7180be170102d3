package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/flowcomm/internal/events"
	"github.com/kode4food/flowcomm/internal/server"
	"github.com/kode4food/flowcomm/pkg/flow"
	"github.com/kode4food/flowcomm/pkg/log"
)

const homeURL = "http://www.avol.io/"

type testServerEnv struct {
	Server   *server.Server
	Router   *gin.Engine
	Registry *flow.Registry
	History  *flow.History
	Hub      *events.Hub
}

func init() {
	gin.SetMode(gin.TestMode)
}

func testServer(t *testing.T) *testServerEnv {
	t.Helper()
	nav := flow.NewHistory(homeURL)
	reg := flow.New(
		flow.WithNavigator(nav),
		flow.WithLogger(log.Discard()),
	)
	hub := events.NewHub()
	srv := server.NewServer(reg, hub)
	env := &testServerEnv{
		Server:   srv,
		Router:   srv.SetupRoutes(),
		Registry: reg,
		History:  nav,
		Hub:      hub,
	}
	t.Cleanup(func() {
		srv.CloseWebSockets()
		hub.Close()
	})
	return env
}

func (e *testServerEnv) Do(
	t *testing.T, method, path string, body any,
) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var res T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}
