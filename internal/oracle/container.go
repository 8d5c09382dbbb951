package oracle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rickgorman/devservices/internal/container"
	"github.com/rickgorman/devservices/internal/devservice"
	"github.com/rickgorman/devservices/internal/logging"
	"github.com/rickgorman/devservices/pkg/hash"
)

// ErrNotStarted is returned when the URL is requested before the container runs.
var ErrNotStarted = errors.New("oracle container not started")

// Container is the launch configuration of one Oracle dev service. Configure
// turns it into a container.RunConfig; after Start the network decision and
// the published port are fixed.
type Container struct {
	image          devservice.Image
	username       string
	password       string
	databaseName   string
	env            map[string]string
	urlParams      map[string]string
	volumes        []container.VolumeMount
	labels         map[string]string
	fixedPort      int
	sharedNetwork  bool
	network        string
	reuse          bool
	startupTimeout time.Duration

	// hostName is the network alias in shared-network mode.
	hostName string
	runCfg   *container.RunConfig

	id   string
	host string
	port int
}

// NewContainer creates a container for image. In shared-network mode the
// container joins network and fixedPort is ignored.
func NewContainer(image devservice.Image, fixedPort int, sharedNetwork bool, network string) *Container {
	return &Container{
		image:          image,
		username:       DefaultUsername,
		password:       DefaultPassword,
		databaseName:   DefaultDatabaseName,
		env:            make(map[string]string),
		urlParams:      make(map[string]string),
		labels:         make(map[string]string),
		fixedPort:      fixedPort,
		sharedNetwork:  sharedNetwork,
		network:        network,
		startupTimeout: DefaultStartupTimeout,
	}
}

// WithCredentials sets the application user, its password and the pluggable database name.
func (c *Container) WithCredentials(username, password, databaseName string) *Container {
	c.username = username
	c.password = password
	c.databaseName = databaseName
	return c
}

// WithEnv adds container environment variables.
func (c *Container) WithEnv(env map[string]string) *Container {
	for k, v := range env {
		c.env[k] = v
	}
	return c
}

// WithURLParam adds a query parameter to the connection URL.
func (c *Container) WithURLParam(key, value string) *Container {
	c.urlParams[key] = value
	return c
}

// WithVolumes mounts volumes into the container.
func (c *Container) WithVolumes(mounts []container.VolumeMount) *Container {
	c.volumes = append(c.volumes, mounts...)
	return c
}

// WithLabel sets a container label.
func (c *Container) WithLabel(key, value string) *Container {
	c.labels[key] = value
	return c
}

// WithStartupTimeout bounds how long Start waits for the database.
func (c *Container) WithStartupTimeout(d time.Duration) *Container {
	if d > 0 {
		c.startupTimeout = d
	}
	return c
}

// WithReuse lets Start adopt a running container with an identical configuration.
func (c *Container) WithReuse(reuse bool) *Container {
	c.reuse = reuse
	return c
}

// Configure validates the settings and builds the launch configuration.
// It picks exactly one network mode: shared network with an alias, or a
// published port (fixed when one was given, engine-chosen otherwise).
func (c *Container) Configure() (container.RunConfig, error) {
	if err := c.validate(); err != nil {
		return container.RunConfig{}, err
	}

	labels := map[string]string{
		container.ManagedLabel: "true",
		KindLabel:              Kind,
	}
	for k, v := range c.labels {
		labels[k] = v
	}

	runCfg := container.RunConfig{
		Image:    c.image.Ref,
		Env:      c.envList(),
		Labels:   labels,
		Mounts:   c.volumes,
		NanoCPUs: NanoCPUs,
	}

	switch {
	case c.sharedNetwork:
		if c.fixedPort > 0 {
			logging.Warn("Shared network takes precedence over the fixed port; the port is not published",
				"port", c.fixedPort, "network", c.network)
		}
		c.hostName = devservice.SharedNetworkAlias(Kind)
		runCfg.Network = c.network
		runCfg.Aliases = []string{c.hostName}
		labels[AliasLabel] = c.hostName
	case c.fixedPort > 0:
		runCfg.PortMappings = []container.PortMapping{container.FixedPort(c.fixedPort, Port)}
	default:
		runCfg.PortMappings = []container.PortMapping{container.EphemeralPort(Port)}
	}

	configHash := container.ConfigHash(runCfg)
	labels[HashLabel] = configHash
	runCfg.Name = fmt.Sprintf("%s%s-%s-%s", devservice.ContainerNamePrefix, Kind, hash.Short(configHash), nameSuffix())

	c.runCfg = &runCfg
	return runCfg, nil
}

// Start runs the container and blocks until the database is ready or the
// startup timeout elapses. It reports whether a running container was reused.
func (c *Container) Start(ctx context.Context, engine devservice.Engine) (bool, error) {
	if c.runCfg == nil {
		if _, err := c.Configure(); err != nil {
			return false, err
		}
	}
	runCfg := *c.runCfg

	var id string
	if c.reuse {
		found, err := engine.FindRunningByLabel(ctx, HashLabel, runCfg.Labels[HashLabel])
		if err != nil {
			return false, fmt.Errorf("failed to look up reusable container: %w", err)
		}
		if found != "" {
			logging.Debug("Reusing running container", "container", found)
			id = found
		}
	}
	reused := id != ""

	if !reused {
		var err error
		if id, err = c.launch(ctx, engine, runCfg); err != nil {
			return false, err
		}
	}

	// A reused container may still be booting; the followed log replays the ready line
	waitCtx, cancel := context.WithTimeout(ctx, c.startupTimeout)
	defer cancel()

	if err := engine.WaitForLog(waitCtx, id, ReadyMessage); err != nil {
		failure := c.classify(ctx, engine, id, err)
		if !reused {
			_ = engine.Remove(context.WithoutCancel(ctx), id, true)
		}
		return reused, failure
	}

	if err := c.attach(ctx, engine, id); err != nil {
		if !reused {
			_ = engine.Remove(context.WithoutCancel(ctx), id, true)
		}
		return reused, err
	}

	return reused, nil
}

// launch pulls the image, prepares the network and mounts, and runs a new container.
func (c *Container) launch(ctx context.Context, engine devservice.Engine, runCfg container.RunConfig) (string, error) {
	if err := engine.EnsureImage(ctx, runCfg.Image); err != nil {
		return "", fmt.Errorf("%w: %w", devservice.ErrImageResolution, err)
	}

	if runCfg.Network != "" {
		if err := engine.EnsureNetwork(ctx, runCfg.Network); err != nil {
			return "", err
		}
	}

	if err := container.PrepareVolumeMounts(runCfg.Mounts); err != nil {
		return "", err
	}

	return engine.Run(ctx, runCfg)
}

// EffectiveURL returns the URL clients should use. In shared-network mode
// that is the alias and the container port, since peers on the network see
// no port translation; otherwise the engine host and the published port.
func (c *Container) EffectiveURL() (string, error) {
	if c.id == "" {
		return "", ErrNotStarted
	}
	if c.sharedNetwork {
		return JDBCURL(c.hostName, Port, c.databaseName, c.urlParams), nil
	}
	return JDBCURL(c.host, c.port, c.databaseName, c.urlParams), nil
}

// ID returns the container ID once started.
func (c *Container) ID() string {
	return c.id
}

// HostName returns the shared-network alias, empty in port-mapped mode.
func (c *Container) HostName() string {
	return c.hostName
}

// Username returns the application user.
func (c *Container) Username() string {
	return c.username
}

// Password returns the application user's password.
func (c *Container) Password() string {
	return c.password
}

// DatabaseName returns the pluggable database name.
func (c *Container) DatabaseName() string {
	return c.databaseName
}

func (c *Container) attach(ctx context.Context, engine devservice.Engine, id string) error {
	status, err := engine.Inspect(ctx, id)
	if err != nil {
		return err
	}

	if c.sharedNetwork {
		if alias := status.Labels[AliasLabel]; alias != "" {
			c.hostName = alias
		}
	} else {
		port, ok := status.Ports[Port]
		if !ok {
			return fmt.Errorf("container %s does not publish port %d", id, Port)
		}
		c.port = port
	}

	c.id = id
	c.host = engine.Host()
	return nil
}

// classify maps a failed readiness wait onto the dev service error kinds.
func (c *Container) classify(ctx context.Context, engine devservice.Engine, id string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: database not ready after %s", devservice.ErrStartupTimeout, c.startupTimeout)
	}

	status, inspectErr := engine.Inspect(context.WithoutCancel(ctx), id)
	if inspectErr == nil && !status.Running {
		if status.OOMKilled {
			return fmt.Errorf("%w: container was OOM-killed", devservice.ErrResourceLimit)
		}
		return fmt.Errorf("%w: exit code %d", devservice.ErrStartupFailed, status.ExitCode)
	}

	return fmt.Errorf("failed waiting for database: %w", err)
}

func (c *Container) validate() error {
	if c.username == "" {
		return fmt.Errorf("%w: username cannot be empty", devservice.ErrInvalidConfig)
	}
	for _, u := range systemUsers {
		if strings.EqualFold(c.username, u) {
			return fmt.Errorf("%w: username cannot be one of %v", devservice.ErrInvalidConfig, systemUsers)
		}
	}
	if c.password == "" {
		return fmt.Errorf("%w: password cannot be empty", devservice.ErrInvalidConfig)
	}
	if c.databaseName == "" {
		return fmt.Errorf("%w: database name cannot be empty", devservice.ErrInvalidConfig)
	}
	if strings.EqualFold(c.databaseName, builtinDatabase) {
		return fmt.Errorf("%w: database name cannot be set to %s", devservice.ErrInvalidConfig, builtinDatabase)
	}
	if c.image.Ref == "" {
		return fmt.Errorf("%w: no image", devservice.ErrImageResolution)
	}
	return nil
}

// envList merges user variables with the image's own, which always win.
func (c *Container) envList() []string {
	env := make(map[string]string, len(c.env)+4)
	for k, v := range c.env {
		env[k] = v
	}
	env["ORACLE_PASSWORD"] = c.password
	env["APP_USER"] = c.username
	env["APP_USER_PASSWORD"] = c.password
	env["ORACLE_DATABASE"] = c.databaseName

	list := make([]string, 0, len(env))
	for k, v := range env {
		list = append(list, k+"="+v)
	}
	sort.Strings(list)
	return list
}

func nameSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
