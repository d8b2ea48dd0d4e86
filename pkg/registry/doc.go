// Package registry resolves instance names to host descriptors.
//
// It is a thin layer over the loaded configuration: no retries, no
// defaults for unknown names. A missing or malformed instance is a hard
// configuration error.
package registry
