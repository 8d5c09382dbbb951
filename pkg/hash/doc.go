// Package hash provides hashing utilities for dev-service identifiers.
//
// This package is used to generate stable identifiers from container
// configuration. These hashes are used for:
//   - Reuse labels (devservices.hash=<sha1>) so an identical launch can
//     find a container started by a previous run
//   - Short, readable suffixes for container names
//
// Example usage:
//
//	// Full digest of a canonical configuration string
//	digest := hash.SHA1Sum("image=gvenzl/oracle-xe\nport=0:1521\n")
//
//	// 8-character prefix for display
//	short := hash.Short(digest)
package hash
