// Package process runs the external programs a3update drives: SteamCMD and
// the dedicated server. Commands are values so callers can be tested with a
// recording Runner instead of real binaries.
package process
