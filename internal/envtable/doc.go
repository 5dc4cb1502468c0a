// Package envtable owns the process-wide environment variable table shared by
// every step of an invocation.
//
// The table is only written through Apply, PropagateUserVars and LoadDotenv.
// Writes happen in step order and are never undone during a run, so a value
// set by one step is visible to every later step.
package envtable
