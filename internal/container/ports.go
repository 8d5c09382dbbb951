package container

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"github.com/docker/go-connections/nat"
)

// ErrPortInUse is returned by Run when a fixed host port is already bound.
var ErrPortInUse = errors.New("host port already in use")

// PortMapping represents a port mapping. A zero Host asks the engine for an
// ephemeral host port.
type PortMapping struct {
	Host      int
	Container int
}

// Ephemeral reports whether the engine picks the host port.
func (pm PortMapping) Ephemeral() bool {
	return pm.Host == 0
}

func (pm PortMapping) natPort() nat.Port {
	return nat.Port(fmt.Sprintf("%d/tcp", pm.Container))
}

// FixedPort binds host port to containerPort.
func FixedPort(host, containerPort int) PortMapping {
	return PortMapping{Host: host, Container: containerPort}
}

// EphemeralPort exposes containerPort on an engine-chosen host port.
func EphemeralPort(containerPort int) PortMapping {
	return PortMapping{Container: containerPort}
}

// CheckPortInUse checks if a host port is currently bound by something else.
func CheckPortInUse(port int) bool {
	ln, err := net.Listen("tcp", net.JoinHostPort("", strconv.Itoa(port)))
	if err != nil {
		return true
	}
	_ = ln.Close()
	return false
}

// EngineHost returns the host name under which published container ports are
// reachable. A tcp DOCKER_HOST points at a remote engine; everything else
// (unix sockets, npipes, unset) is local.
func EngineHost() string {
	dockerHost := os.Getenv("DOCKER_HOST")
	if dockerHost == "" {
		return "localhost"
	}

	parsed, err := url.Parse(dockerHost)
	if err != nil {
		return "localhost"
	}

	switch parsed.Scheme {
	case "tcp", "http", "https":
		if host := parsed.Hostname(); host != "" {
			return host
		}
	}

	return "localhost"
}
