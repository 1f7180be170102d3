package flow_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kode4food/flowcomm/pkg/flow"
)

func TestResultMarshalFlattensExtra(t *testing.T) {
	res := &flow.Result{
		Output: map[string]any{"v": true},
		Status: flow.Done,
		Extra:  map[string]any{"k": 2},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{"output":{"v":true},"status":"done","k":2}`,
		string(data))

	data, err = json.Marshal(flow.Result{Status: flow.Pending})
	require.NoError(t, err)
	assert.JSONEq(t, `{"output":null,"status":"pending"}`, string(data))
}

func TestResultUnmarshal(t *testing.T) {
	var res flow.Result
	err := json.Unmarshal(
		[]byte(`{"output":{"name":"ale"},"status":"done","duck":true}`), &res,
	)
	require.NoError(t, err)
	assert.Equal(t, flow.Result{
		Output: map[string]any{"name": "ale"},
		Status: flow.Done,
		Extra:  map[string]any{"duck": true},
	}, res)

	err = json.Unmarshal([]byte(`{}`), &res)
	require.NoError(t, err)
	assert.Equal(t, flow.Result{Status: flow.Pending}, res)
}

func TestResultUnmarshalInvalid(t *testing.T) {
	var res flow.Result
	assert.ErrorIs(t, res.UnmarshalJSON([]byte(`[1,2]`)), flow.ErrInvalidResult)
	assert.ErrorIs(t, res.UnmarshalJSON([]byte(`{"a":`)), flow.ErrInvalidResult)
}

func TestResultGet(t *testing.T) {
	res := &flow.Result{
		Output: map[string]any{
			"user":  map[string]any{"name": "ale"},
			"items": []any{1, 2, 3},
		},
		Status: flow.Done,
		Extra:  map[string]any{"k": 2},
	}

	assert.Equal(t, "ale", res.Get("output.user.name").String())
	assert.Equal(t, int64(3), res.Get("output.items.#").Int())
	assert.Equal(t, int64(2), res.Get("k").Int())
	assert.Equal(t, "done", res.Get("status").String())
	assert.False(t, res.Get("missing").Exists())

	bad := &flow.Result{Output: func() {}}
	assert.False(t, bad.Get("status").Exists())
}

func TestResultValueAndClone(t *testing.T) {
	res := &flow.Result{Status: flow.Pending}
	_, ok := res.Value("k")
	assert.False(t, ok)

	res.Extra = map[string]any{"k": 1}
	v, ok := res.Value("k")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	c := res.Clone()
	c.Extra["k"] = 2
	c.Status = flow.Done
	assert.Equal(t, 1, res.Extra["k"])
	assert.Equal(t, flow.Pending, res.Status)
}

func TestIsReservedKey(t *testing.T) {
	assert.True(t, flow.IsReservedKey("output"))
	assert.True(t, flow.IsReservedKey("status"))
	assert.False(t, flow.IsReservedKey("duck"))
}
