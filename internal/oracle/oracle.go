// Package oracle provides the Oracle database dev service.
//
// The provider starts a gvenzl/oracle-xe container capped at two CPUs,
// either joined to the shared dev-service network under a generated alias or
// published on a fixed or engine-chosen host port, and reports a thin-driver
// JDBC URL for it.
package oracle

import (
	"time"
)

const (
	// Kind is the database kind this provider registers under.
	Kind = "oracle"

	// ServiceName is used in log lines and errors.
	ServiceName = "Oracle"

	// Image is the image family the default image belongs to.
	Image = "gvenzl/oracle-xe"

	DefaultUsername     = "quarkus"
	DefaultPassword     = "quarkus"
	DefaultDatabaseName = "quarkusdb"

	// Port is the listener port inside the container.
	Port = 1521

	// CPUs caps the container. The image ships a fixed memory configuration
	// that can fail to initialize when the database sizes itself for every
	// host CPU (gvenzl/oci-oracle-xe#64); two is plenty for local work.
	CPUs     = 2
	NanoCPUs = CPUs * 1_000_000_000

	// ReadyMessage is logged by the image once the database accepts connections.
	ReadyMessage = "DATABASE IS READY TO USE!"

	// DefaultStartupTimeout applies when the request sets none.
	DefaultStartupTimeout = 240 * time.Second

	// builtinDatabase is the pluggable database the image always creates.
	builtinDatabase = "xepdb1"
)

// Container labels.
const (
	HashLabel       = "devservices.hash"
	AliasLabel      = "devservices.alias"
	KindLabel       = "devservices.kind"
	LaunchModeLabel = "devservices.launch-mode"
)

// systemUsers cannot be used as the application user.
var systemUsers = []string{"system", "sys"}
