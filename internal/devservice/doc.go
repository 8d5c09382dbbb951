// Package devservice defines the contract between the host application and
// dev-service providers.
//
// A dev service is an ephemeral backing service (here, a database) that is
// provisioned automatically while developing or testing, so nobody has to
// run one by hand. Providers register a factory under a database kind:
//
//	reg := devservice.NewRegistry()
//	_ = oracle.Register(reg)
//
//	provider, err := reg.Provider("oracle", devservice.Environment{Engine: client})
//	ds, err := provider.StartDatabase(ctx, devservice.StartRequest{LaunchMode: devservice.LaunchDev})
//	defer ds.Closer.Close()
//
// The returned RunningDatasource carries the container id, the connection URL,
// the effective credentials and a shutdown handle the caller must close once.
package devservice
