// Package registry provides the glue between configuration files and Go code.
//
// Configuration files cannot carry code, so they reference Go functions by
// name: `{ call = "print" }` for a callback step and `{ func = "name" }` for a
// function that produces a command spec at run time. The Registry stores those
// names and the compiled functions behind them, and implements
// config.Resolver so the loaders can bind references while decoding.
package registry
