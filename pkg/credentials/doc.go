// Package credentials resolves the Steam login used by SteamCMD. Values
// come from the configuration (which includes STEAM_USERNAME and
// STEAM_PASSWORD from the environment or a .env file); otherwise the
// operator is asked once per run. Credentials are never written anywhere.
package credentials
