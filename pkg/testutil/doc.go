// Package testutil provides utilities for testing a3update components.
//
// Key components:
//   - Install: a throwaway installation tree with a loaded configuration
//   - MemoryFS: in-memory types.FS with per-operation error injection
//   - RecordingRunner: a process.Runner that records commands instead of running them
//   - File helpers that fail the test on error
//
// testutil must not import the packages it helps test, so presets are
// described with Mod values rather than modlist types.
package testutil
