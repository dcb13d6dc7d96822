// Package table draws the cargo table onto a canvas.Surface by hand.
//
// Layout computes column offsets and the derived trailing column, Renderer
// places and crops one cell at a time, HitTester maps pointer coordinates
// back to logical cells, and View ties them to a cargo.Source.
package table
