package registry

import (
	"context"

	"go.uber.org/zap"
)

type noopRegistry struct {
	logger *zap.Logger
}

// NewNoopRegistry returns a registry that only logs, for runs without a discovery server.
func NewNoopRegistry(logger *zap.Logger) ServiceRegistry {
	return &noopRegistry{logger: logger.Named("NoopRegistry")}
}

func (r *noopRegistry) Register(_ context.Context, inst Instance) error {
	r.logger.Info("Service registration disabled", zap.String("service_id", inst.ID))
	return nil
}

func (r *noopRegistry) Deregister(context.Context, Instance) error {
	return nil
}
