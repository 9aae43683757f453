package scenarios

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScenario(t *testing.T) {
	files, err := filepath.Glob("*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		sc, err := Load(f)
		require.NoErrorf(t, err, "load %s", f)
		t.Run(sc.Name, func(t *testing.T) {
			RunScenario(t, sc)
		})
	}
}

func TestLoadInvalid(t *testing.T) {
	_, err := Load("no-file.yaml")
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":"), 0o600))
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadDefaultsTrials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: min\nnum_trains: 1\n"), 0o600))
	sc, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 20, sc.Trials)
}

func TestModelConfigRejectsUnknownWeather(t *testing.T) {
	sc := &Scenario{Weather: "foggy", NumTrains: 1}
	_, err := sc.ModelConfig()
	require.Error(t, err)
}
