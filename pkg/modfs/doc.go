// Package modfs prepares downloaded mods for the Linux server.
//
// SteamCMD keeps the mixed-case names mods are published with, but the
// server looks files up in lowercase, so the download tree is renamed to
// lowercase bottom-up. Mods are then exposed in the mods directory through
// one symlink per preset entry, rebuilt from scratch on every run.
package modfs
