// Package network holds the assumed dependency structure between dataset
// columns.
//
// The structure is declared, not learned: the model lists nodes (with their
// diagram positions) and directed parent -> child edges. New rejects unknown
// endpoints, duplicates, self loops and cycles, since conditional tables are
// only meaningful on a DAG.
//
// The graph is used for display and rendering. Frequency tables are requested
// independently and are never derived from it.
package network
