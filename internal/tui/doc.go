// Package tui is the interactive edfc application: the cargo table plane
// and the tools planes that pick which station's buyers get highlighted.
//
// All state lives on the Bubble Tea update goroutine. Background work
// (remote lookups, clipboard, browser, journal and cargo file watching)
// reaches the model only through messages.
package tui
