// Package config loads the devservices project configuration.
//
// Settings are layered, later layers winning:
//   - devservices.yaml in the project root (the git worktree root, else the
//     working directory)
//   - a .env file next to it, loaded into the process environment without
//     overriding variables that are already set
//   - DEVSERVICES_* environment variables
//
// Example devservices.yaml:
//
//	db-kind: oracle
//	launch-mode: dev
//	devservices:
//	  image-name: gvenzl/oracle-xe:21-slim-faststart
//	  username: app
//	  password: secret
//	  db-name: orders
//	  port: 1521
//	  startup-timeout: 5m
//	  container-env:
//	    TZ: UTC
//	  properties:
//	    oracle.jdbc.timezoneAsRegion: "false"
//	  volumes:
//	    oracle-data: /opt/oracle/oradata
//	  shared-network: false
//	  reuse: true
package config
