// Package pkgpebble wraps a Pebble key/value database with a small API and an
// explicit fsync policy. It is used for state that must survive a restart.
package pkgpebble
