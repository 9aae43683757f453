// Package montecarlo runs repeated independent trials of a stochastic model
// and summarises the outcomes.
//
// A Driver is generic over the Trial capability: it knows nothing about
// trains or stations. RunSimulation collects one outcome per trial into a
// result set owned by the driver and returns a bootstrap confidence interval
// of the mean. ValueAtRisk reads the empirical quantile of the last run.
// RunParallel spreads trials over workers, each with its own Trial.
package montecarlo
