// Package filesystem provides filesystem implementations for a3update.
//
// This package contains implementations of the types.FS interface: the
// standard OS filesystem and a dry-run wrapper that reads through to another
// FS but only logs the mutations it is asked to perform.
package filesystem
