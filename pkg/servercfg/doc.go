// Package servercfg keeps the mods="..." line of the dedicated server's
// server.cfg in sync with the active preset. Only that one line is ever
// touched; the rest of the file is preserved byte for byte.
package servercfg
