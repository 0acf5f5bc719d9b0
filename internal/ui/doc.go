// Package ui implements the interactive terminal interface using Bubbletea.
//
// The App model owns two panels, a navigable size tree and a squarified
// treemap, kept in sync through selection events. Scanning runs through
// the core controller; the UI only consumes its event stream.
package ui
