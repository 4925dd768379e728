// Package steamcmd builds and runs SteamCMD invocations for the dedicated
// server app and for Workshop items. All items of one update are fetched in
// a single SteamCMD session so the login happens once.
package steamcmd
