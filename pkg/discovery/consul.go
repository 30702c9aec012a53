package discovery

import (
	"fmt"
	"log/slog"
	"strconv"

	"permd/internal/perm/config"

	"github.com/hashicorp/consul/api"
)

// ServiceRegistry registers the service with Consul so gateways and sibling
// services can locate it. Optional; nil when no Consul address is configured.
type ServiceRegistry struct {
	client *api.Client
	cfg    *config.Config
	logger *slog.Logger
}

func NewServiceRegistry(cfg *config.Config, logger *slog.Logger) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.ConsulAddr

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}

	return &ServiceRegistry{client: client, cfg: cfg, logger: logger}, nil
}

func (sr *ServiceRegistry) Register() error {
	port, err := strconv.Atoi(sr.cfg.Port)
	if err != nil {
		return fmt.Errorf("invalid port %q: %w", sr.cfg.Port, err)
	}

	registration := &api.AgentServiceRegistration{
		ID:      sr.cfg.ServiceID,
		Name:    sr.cfg.ServiceName,
		Port:    port,
		Address: sr.cfg.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.cfg.ServiceAddress, sr.cfg.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"permissions", "authz"},
	}

	if err := sr.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service with Consul: %w", err)
	}

	sr.logger.Info("registered service with Consul", "service_id", sr.cfg.ServiceID)
	return nil
}

// Deregister removes the service from Consul
func (sr *ServiceRegistry) Deregister() error {
	return sr.client.Agent().ServiceDeregister(sr.cfg.ServiceID)
}
