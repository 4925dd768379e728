// Package paths provides centralized path handling for a3update.
// Every location the tool reads or mutates is derived here from the
// resolved configuration, so components never join paths by hand.
package paths
