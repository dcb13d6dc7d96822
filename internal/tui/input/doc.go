// Package input turns raw pointer events into table commands: wheel events
// into discrete scroll steps and grip drags into live height changes.
package input
