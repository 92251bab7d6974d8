// Package health exposes grpc.health.v1.Health reporting whether the API can
// reach its database.
package health

import (
	"context"
	"net"
	"time"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Service is the name the API status is reported under, in addition to "".
const Service = "recipe.api"

// Pinger checks a dependency.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Server is a gRPC server carrying only the health service.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
}

// New creates a server reporting NOT_SERVING until SetServing(true).
func New() *Server {
	s := &Server{
		grpc:   grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	s.SetServing(false)
	return s
}

// SetServing updates the reported status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(Service, status)
}

// Watch pings p every interval and mirrors the result into the status
// until ctx is done.
func (s *Server) Watch(ctx context.Context, p Pinger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	serving := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := p.PingContext(ctx)
			if ok := err == nil; ok != serving {
				serving = ok
				logger.Log.Infow("health status changed", "serving", serving, "error", err)
				s.SetServing(serving)
			}
		}
	}
}

// Serve accepts connections on lis until Stop is called.
func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

// Stop reports NOT_SERVING to all watchers and stops the server gracefully.
func (s *Server) Stop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
