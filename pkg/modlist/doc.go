// Package modlist reads the mod presets exported by the Arma 3 Launcher.
//
// A preset is an HTML document with one table row per mod. Each row carries
// the mod's display name and a link to its Steam Workshop page, from which
// the numeric content ID is taken. The result is a List keyed by the folder
// name the server loads the mod from ("@" plus the lowercased display name).
//
// Extraction never fails on malformed markup: rows it cannot use are skipped
// and counted in Stats. Only I/O errors are returned.
package modlist
