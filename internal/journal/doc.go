// Package journal follows the game's journal directory. It parses the
// events edfc reacts to, tracks the systems the player is in or heading to,
// and locates the Market.json and NavRoute.json side files.
package journal
