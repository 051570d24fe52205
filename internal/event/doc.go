// Package event provides a small named-event emitter used to report
// decoration lifecycle changes to external observers.
//
// The emitter is a deliberate isolation boundary: emission iterates a
// snapshot copy of the listener set, so listeners may unsubscribe during
// emission, and a panicking listener is recovered and discarded without
// interrupting delivery to the others or the emitting call.
package event
