// Package canvas provides a raw drawing surface made of terminal cells.
//
// The table engine draws text runs at absolute cell coordinates with an
// anchor, the same way a pixel canvas is drawn, and the Buffer turns the
// resulting grid into styled lines for a Bubble Tea view.
package canvas
