package scenarios

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kilianp07/ridership/core/montecarlo"
	"github.com/kilianp07/ridership/core/random"
	"github.com/kilianp07/ridership/core/ridership"
)

// RunScenario drives the scenario through the Monte Carlo driver and checks
// that every trial served the expected number of riders.
func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	line, err := sc.Line()
	require.NoError(t, err)
	cfg, err := sc.ModelConfig()
	require.NoError(t, err)

	m, err := ridership.NewModel(line, cfg, &random.Scripted{Normals: sc.Normals})
	require.NoError(t, err)

	d := montecarlo.NewDriver(m, random.New(1))
	iv, err := d.RunSimulation(context.Background(), sc.Trials)
	require.NoError(t, err)

	for i, v := range d.Results() {
		require.Equalf(t, sc.Expected.Served, v, "trial %d", i)
	}
	require.Equal(t, sc.Expected.Served, iv.Mean)
	require.Equal(t, iv.Lower, iv.Upper)

	vr, err := d.ValueAtRisk(montecarlo.DefaultRisk)
	require.NoError(t, err)
	require.Equal(t, sc.Expected.Served, vr)
}
