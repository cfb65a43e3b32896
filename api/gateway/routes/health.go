package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

const healthCheckTimeout = 5 * time.Second

var startTime = time.Now()

// HealthDeps carries the dependency probes consulted by the readiness
// endpoint. Nil probes are treated as healthy so a gateway without Redis
// still reports ready.
type HealthDeps struct {
	ServiceName string
	Version     string

	Database func() error
	Cache    func(ctx context.Context) error
}

type componentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string                     `json:"status"`
	Service   string                     `json:"service"`
	Version   string                     `json:"version"`
	Uptime    string                     `json:"uptime"`
	Timestamp time.Time                  `json:"timestamp"`
	Details   map[string]componentHealth `json:"details,omitempty"`
}

// RegisterHealthRoutes mounts the greeting endpoint and the Kubernetes
// health probes.
func RegisterHealthRoutes(r chi.Router, deps HealthDeps) {
	r.Get("/", deps.handleGreeting)
	r.Get("/health", deps.handleHealth)
	r.Get("/health/live", deps.handleLiveness)
	r.Get("/health/ready", deps.handleReadiness)
}

// handleGreeting is the trivial service banner used by load balancers and
// humans poking the root path.
func (d HealthDeps) handleGreeting(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"service": d.ServiceName,
		"status":  "ok",
	})
}

func (d HealthDeps) handleHealth(w http.ResponseWriter, r *http.Request) {
	details, healthy := d.checkDependencies(r.Context())

	resp := healthResponse{
		Status:    "healthy",
		Service:   d.ServiceName,
		Version:   d.Version,
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
		Details:   details,
	}
	if !healthy {
		resp.Status = "degraded"
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, resp)
}

// handleLiveness reports only that the process is serving requests;
// dependency failures must not restart the pod.
func (d HealthDeps) handleLiveness(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "alive"})
}

func (d HealthDeps) handleReadiness(w http.ResponseWriter, r *http.Request) {
	details, healthy := d.checkDependencies(r.Context())
	if !healthy {
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]interface{}{"status": "not ready", "details": details})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ready"})
}

func (d HealthDeps) checkDependencies(ctx context.Context) (map[string]componentHealth, bool) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	details := map[string]componentHealth{}
	healthy := true

	if d.Database != nil {
		if err := d.Database(); err != nil {
			details["database"] = componentHealth{Status: "unhealthy", Message: err.Error()}
			healthy = false
		} else {
			details["database"] = componentHealth{Status: "healthy"}
		}
	}

	if d.Cache != nil {
		if err := d.Cache(ctx); err != nil {
			details["cache"] = componentHealth{Status: "unhealthy", Message: err.Error()}
			healthy = false
		} else {
			details["cache"] = componentHealth{Status: "healthy"}
		}
	}

	return details, healthy
}
