// Package cargo models the carrier inventory shown by the cargo table.
//
// A Source owns the inventory and notifies subscribers whenever it changes;
// the table pulls a full Snapshot on every redraw and never patches rows in
// place. Commodity symbols are explained through a Catalogue so rows carry a
// display name, a category and the numeric market id used by highlight filters.
package cargo
