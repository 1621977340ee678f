// Package uidctl contains the Cobra commands of the uidctl binary: encoding
// IDs locally, decoding them, and reading the trusted time source.
package uidctl
