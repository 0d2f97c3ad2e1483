package pulse_test

import (
	"testing"

	"github.com/oliverbestmann/polyspin/pulse"
	"github.com/oliverbestmann/polyspin/pulse/pulsetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countCalls(dev *pulsetest.Device, name string) int {
	var count int
	for _, call := range dev.Calls {
		if call == name {
			count++
		}
	}

	return count
}

func TestUniformCacheLooksUpOnce(t *testing.T) {
	dev := pulsetest.NewDevice()

	program, err := pulse.BuildProgram(dev, vertexSource, fragmentSource, pulse.LinkOptions{})
	require.NoError(t, err)

	cache := pulse.NewUniformCache(dev)

	first := cache.Location(program.ID, "model")
	second := cache.Location(program.ID, "model")

	assert.Equal(t, first, second)
	assert.NotEqual(t, int32(-1), first)
	assert.Equal(t, 1, countCalls(dev, "GetUniformLocation"))
}

func TestUniformCacheMissingUniform(t *testing.T) {
	dev := pulsetest.NewDevice()

	program, err := pulse.BuildProgram(dev, vertexSource, fragmentSource, pulse.LinkOptions{})
	require.NoError(t, err)

	cache := pulse.NewUniformCache(dev)
	assert.Equal(t, int32(-1), cache.Location(program.ID, "projection"))
	assert.Equal(t, int32(-1), cache.Location(program.ID, "projection"))
	assert.Equal(t, 1, countCalls(dev, "GetUniformLocation"))

	// uploading to a missing uniform is a no-op
	dev.UseProgram(program.ID)
	dev.UniformMatrix4(-1, [16]float32{})
	assert.Empty(t, dev.Violations)
}

func TestUniformCacheForget(t *testing.T) {
	dev := pulsetest.NewDevice()

	programA, err := pulse.BuildProgram(dev, vertexSource, fragmentSource, pulse.LinkOptions{})
	require.NoError(t, err)

	programB, err := pulse.BuildProgram(dev, vertexSource, fragmentSource, pulse.LinkOptions{})
	require.NoError(t, err)

	cache := pulse.NewUniformCache(dev)
	cache.Location(programA.ID, "model")
	cache.Location(programB.ID, "model")

	cache.Forget(programA.ID)

	cache.Location(programA.ID, "model")
	cache.Location(programB.ID, "model")

	assert.Equal(t, 3, countCalls(dev, "GetUniformLocation"))
}
