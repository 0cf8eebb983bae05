// Package recommend ranks board games for a group of players.
//
// A run filters the catalog to games that seat the group, scores each
// remaining game once per present player (stated preferences plus play
// history), folds the player scores into a dissent-penalized group score and
// sorts the result with deterministic tie-breaks. Every score comes with a
// per-player breakdown so callers can explain it.
//
// The package does no I/O. Callers load games, preferences and history
// up front and pass them in a Request.
package recommend
