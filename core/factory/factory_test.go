package factory

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{ A int }

type sampleConf struct {
	A int `json:"a"`
}

func sampleFactory(conf map[string]any) (*sample, error) {
	var c sampleConf
	if err := Decode(conf, &c); err != nil {
		return nil, err
	}
	return &sample{A: c.A}, nil
}

func TestRegistry_Create(t *testing.T) {
	reg := NewRegistry[*sample]()
	require.NoError(t, reg.Register("s", sampleFactory))

	inst, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"a": 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, inst.A)
}

func TestRegistry_Errors(t *testing.T) {
	reg := NewRegistry[int]()
	require.NoError(t, reg.Register("x", func(map[string]any) (int, error) { return 1, nil }))

	err := reg.Register("x", func(map[string]any) (int, error) { return 2, nil })
	assert.True(t, errors.Is(err, ErrDuplicate))
	assert.Error(t, reg.Register("y", nil))
	assert.Error(t, reg.Register("", func(map[string]any) (int, error) { return 0, nil }))

	_, err = reg.Create(ModuleConfig{Type: "missing"})
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.Contains(t, err.Error(), "known: [x]")
}

func TestRegistry_CreatePrefixesFactoryErrors(t *testing.T) {
	reg := NewRegistry[*sample]()
	reg.MustRegister("s", sampleFactory)

	_, err := reg.Create(ModuleConfig{Type: "s", Conf: map[string]any{"b": 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s: decode module config")
}

func TestRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	reg := NewRegistry[int]()
	reg.MustRegister("x", func(map[string]any) (int, error) { return 0, nil })
	assert.Panics(t, func() {
		reg.MustRegister("x", func(map[string]any) (int, error) { return 0, nil })
	})
}

func TestRegistry_Names(t *testing.T) {
	reg := NewRegistry[int]()
	for _, n := range []string{"mqtt", "influx", "nop"} {
		require.NoError(t, reg.Register(n, func(map[string]any) (int, error) { return 0, nil }))
	}
	assert.Equal(t, []string{"influx", "mqtt", "nop"}, reg.Names())
}

func TestDecode_WeakTypes(t *testing.T) {
	var c struct {
		Port    int           `json:"port"`
		Enabled bool          `json:"enabled"`
		Timeout time.Duration `json:"timeout"`
	}
	err := Decode(map[string]any{"port": "2112", "enabled": "true", "timeout": "5s"}, &c)
	require.NoError(t, err)
	assert.Equal(t, 2112, c.Port)
	assert.True(t, c.Enabled)
	assert.Equal(t, 5*time.Second, c.Timeout)
}

func TestDecode_RejectsUnknownKeys(t *testing.T) {
	var c sampleConf
	err := Decode(map[string]any{"a": 1, "bucket": "runs"}, &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket")
}

func TestDecode_NilMap(t *testing.T) {
	var c sampleConf
	require.NoError(t, Decode(nil, &c))
	assert.Zero(t, c.A)
}
