// Package prompt asks the operator for what a run cannot take from its
// configuration: which modlist to use and the Steam login. Prompts are
// huh forms and are refused when stdin is not a terminal.
package prompt
