// Package state provides small reactive values for interactive programs.
//
// A Signal holds one value and notifies subscribers after every accepted
// write. Subscribers run synchronously in registration order unless they
// were registered with a Scheduler, in which case the scheduler decides
// when the callback runs (a Queue defers it until Flush).
package state
