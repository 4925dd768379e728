// Package runner sequences one a3update run: base server update, modlist
// selection and extraction, update planning, the SteamCMD fetch, the
// lowercase pass, the link rebuild, the server config patch and finally the
// server launch. Steps are strictly sequential and share one context.
//
// The config patch and the link rebuild always use the full modlist; only
// the fetch is limited to the mods the planner marked outdated.
package runner
