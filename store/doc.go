// Package store holds the application's shared "current" value.
//
// A Store has exactly one field. It starts at the zero value of T, which
// callers treat as "nothing selected", and changes only through SetCurrent.
// RequestSetCurrent is the intent entry point: it announces an Action to
// action hooks and then forwards to SetCurrent without altering the payload.
//
// Reads are reactive: a Store is a state.Readable, so consumers can
// Subscribe, derive values with Getter, or Watch old/new pairs.
package store
