// Package estimate computes empirical probabilities over a dataset.
//
// Conditional builds P(child | parents) tables from grouped row counts:
// joint counts over parents+child divided by counts over parents alone.
// Parent combinations that never occur are simply absent; there is no
// smoothing. Marginal is the zero-parent case.
//
// Evaluate answers a scenario (a conjunction of column == value
// constraints) by filtering rows and averaging a 0/1 outcome column. The
// graph is not consulted: compound queries are answered from the rows, not
// by multiplying tables.
//
// An empty match is reported as ErrInsufficientData, never as 0.
package estimate
