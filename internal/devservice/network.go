package devservice

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultNetworkName is the shared network dev services join when none is configured.
const DefaultNetworkName = "devservices"

// ContainerNamePrefix starts the name of every dev service container.
const ContainerNamePrefix = "devservices-"

const aliasSuffixLen = 5

// SharedNetworkAlias returns a fresh, lowercase alias of the form
// "<prefix>-<5 random chars>" for a container joining the shared network.
func SharedNetworkAlias(prefix string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:aliasSuffixLen]
	return strings.ToLower(prefix + "-" + suffix)
}
