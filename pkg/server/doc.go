// Package server launches the Arma 3 dedicated server process from the
// server directory, attached to the terminal, and waits for it to exit.
package server
