// Package engine is the execution driver. It resolves one named command into
// its canonical steps and runs them strictly in order, stopping at the first
// failure.
//
// A Driver moves through Idle, Normalizing, Executing and then Done or
// Failed. It runs once; a second Run on the same Driver is an error.
package engine
