// Package schema holds the HCL decoding structures for .madrun.hcl files.
package schema
