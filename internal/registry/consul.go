package registry

import (
	"context"
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

type consulRegistry struct {
	client *consulapi.Client
	logger *zap.Logger
}

var _ ServiceRegistry = (*consulRegistry)(nil)

// NewConsulRegistry creates a new registry backed by the Consul agent at address.
func NewConsulRegistry(address string, logger *zap.Logger) (ServiceRegistry, error) {
	consulConfig := consulapi.DefaultConfig()
	consulConfig.Address = address

	client, err := consulapi.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}
	return &consulRegistry{
		client: client,
		logger: logger.Named("ConsulRegistry"),
	}, nil
}

// Register registers the instance with an HTTP check against its health endpoint.
func (r *consulRegistry) Register(_ context.Context, inst Instance) error {
	reg := &consulapi.AgentServiceRegistration{
		ID:      inst.ID,
		Name:    inst.Name,
		Port:    inst.Port,
		Address: inst.IP,
		Check:   newHTTPCheck(inst),
		Meta:    map[string]string{"hostname": inst.Host},
	}

	if err := r.client.Agent().ServiceRegister(reg); err != nil {
		r.logger.Error("Failed to register service with Consul", zap.String("service_id", inst.ID), zap.Error(err))
		return fmt.Errorf("failed to register service '%s': %w", inst.Name, err)
	}
	r.logger.Info("Successfully registered service with Consul",
		zap.String("service_id", inst.ID),
		zap.String("address", inst.IP),
		zap.Int("port", inst.Port),
	)
	return nil
}

// Deregister removes the instance from Consul.
func (r *consulRegistry) Deregister(_ context.Context, inst Instance) error {
	if err := r.client.Agent().ServiceDeregister(inst.ID); err != nil {
		r.logger.Error("Failed to deregister service from Consul", zap.String("service_id", inst.ID), zap.Error(err))
		return fmt.Errorf("failed to deregister service '%s': %w", inst.ID, err)
	}
	r.logger.Info("Successfully deregistered service from Consul", zap.String("service_id", inst.ID))
	return nil
}

func newHTTPCheck(inst Instance) *consulapi.AgentServiceCheck {
	return &consulapi.AgentServiceCheck{
		CheckID:                        fmt.Sprintf("check_%s_http", inst.ID),
		Name:                           fmt.Sprintf("HTTP Check for %s", inst.ID),
		HTTP:                           inst.HealthURL(),
		Method:                         "GET",
		Interval:                       "10s",
		Timeout:                        "1s",
		DeregisterCriticalServiceAfter: "1m",
	}
}
