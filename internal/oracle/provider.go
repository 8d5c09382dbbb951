package oracle

import (
	"context"
	"fmt"

	"github.com/rickgorman/devservices/internal/container"
	"github.com/rickgorman/devservices/internal/devservice"
	"github.com/rickgorman/devservices/internal/logging"
)

// Provider is the Oracle dev-service provider.
type Provider struct {
	env devservice.Environment
}

// NewProvider creates a provider for one launch.
func NewProvider(env devservice.Environment) *Provider {
	return &Provider{env: env}
}

// Register adds the Oracle provider to reg under Kind.
func Register(reg *devservice.Registry) error {
	return reg.Register(Kind, func(env devservice.Environment) devservice.Provider {
		return NewProvider(env)
	})
}

// StartDatabase starts (or reuses) an Oracle container and returns its
// coordinates. Failures are reported as *devservice.StartupError.
func (p *Provider) StartDatabase(ctx context.Context, req devservice.StartRequest) (*devservice.RunningDatasource, error) {
	ds, err := p.start(ctx, req)
	if err != nil {
		return nil, &devservice.StartupError{Service: ServiceName, Err: err}
	}
	return ds, nil
}

func (p *Provider) start(ctx context.Context, req devservice.StartRequest) (*devservice.RunningDatasource, error) {
	engine := p.env.Engine
	if engine == nil {
		return nil, fmt.Errorf("%w: no container engine", devservice.ErrInvalidConfig)
	}

	imageName := req.ImageName
	if imageName == "" {
		defaultImage, err := devservice.DefaultImage(Kind)
		if err != nil {
			return nil, err
		}
		imageName = defaultImage
	}

	image, err := devservice.ResolveImage(imageName)
	if err != nil {
		return nil, err
	}
	if image.Family != Image {
		logging.Debug("Using image as a compatible substitute", "image", image.Ref, "for", Image)
	}

	// The provider always opts in; the environment decides whether reuse applies
	reuse := p.env.ReuseEnabled

	c := NewContainer(image, req.FixedPort, p.env.SharedNetwork, p.env.Network()).
		WithCredentials(
			orDefault(req.Username, DefaultUsername),
			orDefault(req.Password, DefaultPassword),
			orDefault(req.DatabaseName, DefaultDatabaseName),
		).
		WithEnv(req.ContainerEnv).
		WithVolumes(container.ParseVolumes(req.Volumes)).
		WithLabel(LaunchModeLabel, req.LaunchMode.String()).
		WithStartupTimeout(req.StartupTimeout).
		WithReuse(reuse)

	for k, v := range req.URLParams {
		c.WithURLParam(k, v)
	}

	if _, err := c.Configure(); err != nil {
		return nil, err
	}

	reused, err := c.Start(ctx, engine)
	if err != nil {
		return nil, err
	}

	url, err := c.EffectiveURL()
	if err != nil {
		return nil, err
	}

	logging.Info(fmt.Sprintf("Dev Services for %s started.", ServiceName),
		"container", c.ID(), "reused", reused, "mode", req.LaunchMode)

	return &devservice.RunningDatasource{
		ContainerID: c.ID(),
		URL:         url,
		Username:    c.Username(),
		Password:    c.Password(),
		Closer:      devservice.NewContainerCloser(engine, c.ID(), ServiceName, reuse),
	}, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
