// Package testutil contains helpers used across tests to assert on log
// output. These helpers are not intended for production usage.
package testutil
