package registry

import (
	"context"
	"fmt"
	"strconv"

	"sprint2/internal/config"

	"go.uber.org/zap"
)

// ServiceRegistry announces this service instance to a discovery server.
type ServiceRegistry interface {
	// Register makes the instance discoverable and keeps it so until Deregister.
	Register(ctx context.Context, inst Instance) error

	// Deregister removes the instance.
	Deregister(ctx context.Context, inst Instance) error
}

// Instance describes one running copy of the service.
type Instance struct {
	ID         string
	Name       string
	Host       string
	IP         string
	Port       int
	HealthPath string
}

// HealthURL is the address a registry polls to check the instance.
func (i Instance) HealthURL() string {
	return fmt.Sprintf("http://%s:%d%s", i.IP, i.Port, i.HealthPath)
}

// HomeURL is the root address of the instance.
func (i Instance) HomeURL() string {
	return fmt.Sprintf("http://%s:%d/", i.Host, i.Port)
}

// NewInstance describes the instance served with cfg.
func NewInstance(cfg *config.Config) (Instance, error) {
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port <= 0 {
		return Instance{}, fmt.Errorf("invalid server port %q", cfg.Server.Port)
	}

	r := cfg.Registry
	return Instance{
		ID:         fmt.Sprintf("%s:%s:%d", r.InstanceHost, r.ServiceName, port),
		Name:       r.ServiceName,
		Host:       r.InstanceHost,
		IP:         r.InstanceIP,
		Port:       port,
		HealthPath: "/health",
	}, nil
}

// New returns the registry selected by cfg.Registry.Provider.
func New(cfg *config.Config, logger *zap.Logger) (ServiceRegistry, error) {
	switch cfg.Registry.Provider {
	case config.ProviderEureka:
		return NewEurekaRegistry(cfg.Registry.EurekaURL(), cfg.Registry.HeartbeatInterval(), logger), nil
	case config.ProviderConsul:
		return NewConsulRegistry(cfg.Registry.ConsulAddress, logger)
	case config.ProviderNone, "":
		return NewNoopRegistry(logger), nil
	default:
		return nil, fmt.Errorf("unknown registry provider %q", cfg.Registry.Provider)
	}
}
