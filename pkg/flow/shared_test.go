package flow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kode4food/flowcomm/pkg/flow"
)

func TestSharedIsSingleton(t *testing.T) {
	first := flow.Shared()
	assert.NotNil(t, first)
	assert.Same(t, first, flow.Shared())

	first.Reset()
	defer first.Reset()

	assert.NoError(t, first.Activate("shared-flow"))
	_, ok := flow.Shared().Read("shared-flow")
	assert.True(t, ok)
}
