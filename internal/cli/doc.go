// Package cli implements the devservices command tree.
//
// Commands:
//   - start: start the configured database and wait for Ctrl-C
//   - kinds: list the database kinds that can be started
//   - ps:    list dev service containers
//   - stop:  stop and remove dev service containers left running
//   - version
//
// Status output goes to stderr through package ui; stdout only carries
// machine-readable results such as the connection URL.
package cli
