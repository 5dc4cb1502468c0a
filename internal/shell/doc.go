// Package shell runs step commands.
//
// By default a script is handed to `bash -c` with the parent's standard
// streams. Setting the `shell` option to "builtin" runs it in-process with the
// mvdan.cc/sh interpreter instead, which needs no shell on the host.
package shell
