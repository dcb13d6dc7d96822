// Package listview provides a small scrolling picker for Bubble Tea
// screens.
//
// The picker renders only the rows that fit its height, keeps the
// selection on screen, skips rows that are not selectable (group titles)
// and maps mouse rows back to items.
package listview
