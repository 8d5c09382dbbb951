// Package devservicetest provides an in-memory container engine for provider tests.
package devservicetest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rickgorman/devservices/internal/container"
)

// Engine is a fake devservice.Engine. It records every call and hands out
// ephemeral host ports from a counter, so concurrent runs never collide.
type Engine struct {
	mu sync.Mutex

	HostName string

	// Errors injected per operation.
	ImageErr   error
	NetworkErr error
	RunErr     error
	WaitErr    error
	InspectErr error
	StopErr    error

	// ExitState is reported by Inspect after a failed wait.
	OOMKilled bool
	ExitCode  int

	// Reusable maps a label value to the ID returned by FindRunningByLabel.
	Reusable map[string]string

	nextPort   int
	nextID     int
	Images     []string
	Networks   []string
	Runs       []container.RunConfig
	containers map[string]*container.Status
	Stopped    []string
	Removed    []string
	Closed     bool
}

// NewEngine creates a fake engine reachable at "localhost".
func NewEngine() *Engine {
	return &Engine{
		HostName:   "localhost",
		Reusable:   make(map[string]string),
		nextPort:   49152,
		containers: make(map[string]*container.Status),
	}
}

func (e *Engine) Host() string {
	return e.HostName
}

func (e *Engine) EnsureImage(_ context.Context, ref string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Images = append(e.Images, ref)
	return e.ImageErr
}

func (e *Engine) EnsureNetwork(_ context.Context, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Networks = append(e.Networks, name)
	return e.NetworkErr
}

func (e *Engine) FindRunningByLabel(_ context.Context, _, value string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Reusable[value], nil
}

// AddRunning registers a running container, e.g. one left from an earlier launch.
func (e *Engine) AddRunning(id string, labels map[string]string, ports map[int]int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.containers[id] = &container.Status{ID: id, Running: true, Labels: labels, Ports: ports}
}

func (e *Engine) Run(_ context.Context, cfg container.RunConfig) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Runs = append(e.Runs, cfg)
	if e.RunErr != nil {
		return "", e.RunErr
	}

	e.nextID++
	id := fmt.Sprintf("ctr%04d", e.nextID)

	ports := make(map[int]int)
	for _, pm := range cfg.PortMappings {
		if pm.Ephemeral() {
			ports[pm.Container] = e.nextPort
			e.nextPort++
		} else {
			ports[pm.Container] = pm.Host
		}
	}

	e.containers[id] = &container.Status{
		ID:      id,
		Name:    cfg.Name,
		Running: true,
		Labels:  cfg.Labels,
		Ports:   ports,
	}
	return id, nil
}

func (e *Engine) WaitForLog(_ context.Context, id, _ string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.WaitErr != nil {
		if c, ok := e.containers[id]; ok && e.WaitErr == container.ErrLogStreamClosed {
			c.Running = false
			c.OOMKilled = e.OOMKilled
			c.ExitCode = e.ExitCode
		}
		return e.WaitErr
	}
	return nil
}

func (e *Engine) Inspect(_ context.Context, id string) (*container.Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.InspectErr != nil {
		return nil, e.InspectErr
	}
	c := e.lookup(id)
	if c == nil {
		return nil, fmt.Errorf("no such container: %s", id)
	}
	copied := *c
	return &copied, nil
}

func (e *Engine) Stop(_ context.Context, id string, _ time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Stopped = append(e.Stopped, id)
	if e.StopErr != nil {
		return e.StopErr
	}
	if c := e.lookup(id); c != nil {
		c.Running = false
	}
	return nil
}

func (e *Engine) Remove(_ context.Context, id string, _ bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.Removed = append(e.Removed, id)
	if c := e.lookup(id); c != nil {
		delete(e.containers, c.ID)
	}
	return nil
}

// FindByNamePrefix lists the names of known containers starting with prefix.
func (e *Engine) FindByNamePrefix(_ context.Context, prefix string) ([]string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var names []string
	for _, c := range e.containers {
		if c.Name != "" && strings.HasPrefix(c.Name, prefix) {
			names = append(names, c.Name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Uptime reports a fixed uptime for running containers.
func (e *Engine) Uptime(_ context.Context, nameOrID string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.lookup(nameOrID)
	if c == nil || !c.Running {
		return "", fmt.Errorf("container is not running")
	}
	return "5m", nil
}

// Close marks the engine closed.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Closed = true
	return nil
}

func (e *Engine) lookup(nameOrID string) *container.Status {
	if c, ok := e.containers[nameOrID]; ok {
		return c
	}
	for _, c := range e.containers {
		if c.Name == nameOrID {
			return c
		}
	}
	return nil
}

// LastRun returns the most recent RunConfig passed to Run.
func (e *Engine) LastRun() container.RunConfig {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.Runs) == 0 {
		return container.RunConfig{}
	}
	return e.Runs[len(e.Runs)-1]
}
