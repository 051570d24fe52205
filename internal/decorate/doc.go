// Package decorate contains the Decorator, the orchestrator that turns
// a host editor's diagnostic markers into line decorations.
//
// The Decorator owns the configuration, subscribes to the host's
// marker, cursor, and buffer events, debounces recomputation, and runs
// the filter/build/replace pipeline. Its lifecycle is a small state
// machine: uninitialized -> active <-> disabled -> disposed. No
// lifecycle method propagates a panic or error past its boundary;
// failures surface on the error event so host integrations are
// insulated from internal errors.
package decorate
