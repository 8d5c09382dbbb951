// Package container handles Docker operations for dev-service containers.
//
// The package provides five main components:
//
// 1. Docker Client Wrapper (docker.go)
//    - Simplified interface to Docker SDK
//    - Image resolution and pulling
//    - Reusable container discovery by label
//
// 2. Container Lifecycle (lifecycle.go)
//    - Run, inspect, stop, and remove containers
//    - Mapped host port and exit state reporting
//
// 3. Port Management (ports.go)
//    - Fixed or engine-chosen (ephemeral) host port bindings
//    - Host port availability checks
//    - Engine host resolution (DOCKER_HOST vs localhost)
//
// 4. Networks and Readiness (network.go, wait.go)
//    - Shared bridge network creation on demand
//    - Log-message wait strategy
//
// 5. Volume Management (volumes.go)
//    - Bind mounts and named volumes
//    - Automatic host directory creation
//
// Basic usage:
//
//	client, err := container.NewClient()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	cfg := container.RunConfig{
//	    Name:         "devservices-oracle-1a2b3c",
//	    Image:        "docker.io/gvenzl/oracle-xe:21-slim-faststart",
//	    PortMappings: []container.PortMapping{{Container: 1521}},
//	    NanoCPUs:     2_000_000_000,
//	}
//
//	containerID, err := client.Run(ctx, cfg)
//
// A PortMapping with Host set to zero lets the engine pick a free host port;
// read it back with Inspect once the container is running.
package container
