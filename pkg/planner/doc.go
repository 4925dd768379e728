// Package planner decides which mods of a preset must be downloaded.
//
// A mod is outdated when it has never been downloaded or when its Workshop
// changelog announces an update newer than the download. Outdated downloads
// are evicted before the plan is returned so the fetch starts from nothing.
package planner
