package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const eurekaRequestTimeout = 5 * time.Second

type eurekaRegistry struct {
	baseURL  string
	interval time.Duration
	client   *http.Client
	logger   *zap.Logger

	mu   sync.Mutex
	stop context.CancelFunc
	done chan struct{}
}

var _ ServiceRegistry = (*eurekaRegistry)(nil)

// NewEurekaRegistry talks to the Eureka REST API under baseURL, for example
// http://localhost:8761/eureka/apps/, and renews the lease every interval.
func NewEurekaRegistry(baseURL string, interval time.Duration, logger *zap.Logger) ServiceRegistry {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &eurekaRegistry{
		baseURL:  baseURL,
		interval: interval,
		client:   &http.Client{Timeout: eurekaRequestTimeout},
		logger:   logger.Named("EurekaRegistry"),
	}
}

type eurekaPort struct {
	Number  int    `json:"$"`
	Enabled string `json:"@enabled"`
}

type eurekaDataCenter struct {
	Class string `json:"@class"`
	Name  string `json:"name"`
}

type eurekaInstance struct {
	InstanceID     string           `json:"instanceId"`
	HostName       string           `json:"hostName"`
	App            string           `json:"app"`
	IPAddr         string           `json:"ipAddr"`
	VIPAddress     string           `json:"vipAddress"`
	Status         string           `json:"status"`
	Port           eurekaPort       `json:"port"`
	HomePageURL    string           `json:"homePageUrl"`
	HealthCheckURL string           `json:"healthCheckUrl"`
	DataCenterInfo eurekaDataCenter `json:"dataCenterInfo"`
}

func newEurekaInstance(inst Instance) eurekaInstance {
	return eurekaInstance{
		InstanceID:     inst.ID,
		HostName:       inst.Host,
		App:            strings.ToUpper(inst.Name),
		IPAddr:         inst.IP,
		VIPAddress:     inst.Name,
		Status:         "UP",
		Port:           eurekaPort{Number: inst.Port, Enabled: "true"},
		HomePageURL:    inst.HomeURL(),
		HealthCheckURL: inst.HealthURL(),
		DataCenterInfo: eurekaDataCenter{
			Class: "com.netflix.appinfo.InstanceInfo$DefaultDataCenterInfo",
			Name:  "MyOwn",
		},
	}
}

func (r *eurekaRegistry) appURL(inst Instance) string {
	return r.baseURL + strings.ToUpper(inst.Name)
}

func (r *eurekaRegistry) instanceURL(inst Instance) string {
	return r.appURL(inst) + "/" + inst.ID
}

// Register posts the instance and starts renewing its lease. The renewal loop
// starts even when the first post fails, and keeps re-registering on each tick
// until Eureka accepts the instance.
func (r *eurekaRegistry) Register(ctx context.Context, inst Instance) error {
	err := r.register(ctx, inst)
	if err != nil {
		r.logger.Error("Failed to register service with Eureka, will retry", zap.String("service_id", inst.ID), zap.Error(err))
	} else {
		r.logger.Info("Successfully registered service with Eureka",
			zap.String("service_id", inst.ID),
			zap.String("service_name", inst.Name),
			zap.Int("port", inst.Port),
		)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stop == nil {
		loopCtx, cancel := context.WithCancel(context.Background())
		r.stop = cancel
		r.done = make(chan struct{})
		go r.heartbeat(loopCtx, inst, err == nil, r.done)
	}
	return err
}

// Deregister stops the lease renewal and removes the instance.
func (r *eurekaRegistry) Deregister(ctx context.Context, inst Instance) error {
	r.mu.Lock()
	if r.stop != nil {
		r.stop()
		<-r.done
		r.stop, r.done = nil, nil
	}
	r.mu.Unlock()

	if err := r.do(ctx, http.MethodDelete, r.instanceURL(inst), nil); err != nil {
		r.logger.Error("Failed to deregister service from Eureka", zap.String("service_id", inst.ID), zap.Error(err))
		return fmt.Errorf("failed to deregister service '%s': %w", inst.ID, err)
	}
	r.logger.Info("Successfully deregistered service from Eureka", zap.String("service_id", inst.ID))
	return nil
}

func (r *eurekaRegistry) register(ctx context.Context, inst Instance) error {
	body, err := json.Marshal(map[string]eurekaInstance{"instance": newEurekaInstance(inst)})
	if err != nil {
		return fmt.Errorf("encode eureka instance: %w", err)
	}
	if err := r.do(ctx, http.MethodPost, r.appURL(inst), body); err != nil {
		return fmt.Errorf("failed to register service '%s': %w", inst.Name, err)
	}
	return nil
}

// heartbeat renews the lease until ctx ends. While the instance is not
// registered, including after Eureka answers a renewal with 404 because it
// evicted the instance, each tick registers it again.
func (r *eurekaRegistry) heartbeat(ctx context.Context, inst Instance, registered bool, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if registered {
			err := r.do(ctx, http.MethodPut, r.instanceURL(inst), nil)
			if err == nil || ctx.Err() != nil {
				continue
			}
			r.logger.Warn("Eureka heartbeat failed, re-registering", zap.String("service_id", inst.ID), zap.Error(err))
		}

		err := r.register(ctx, inst)
		registered = err == nil
		switch {
		case registered:
			r.logger.Info("Registered service with Eureka", zap.String("service_id", inst.ID))
		case ctx.Err() == nil:
			r.logger.Error("Eureka registration failed", zap.String("service_id", inst.ID), zap.Error(err))
		}
	}
}

func (r *eurekaRegistry) do(ctx context.Context, method, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("eureka %s %s: status %d", method, url, resp.StatusCode)
	}
	return nil
}
