// Package testutil holds fakes and fixtures shared by the package tests.
package testutil
