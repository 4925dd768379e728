// Package types defines the interfaces shared across a3update packages.
// FS is the filesystem seam: the real filesystem, the dry-run wrapper and
// the in-memory test filesystem all implement it.
package types
