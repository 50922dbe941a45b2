// Package grpc exposes the standard gRPC health checking protocol
// (grpc.health.v1) for orchestration probes.
package grpc

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-auth-keeper/internal/logger"
)

// ServiceName is the name under which the credential service reports its
// health. The empty name reports the status of the whole server.
const ServiceName = "goauthkeeper.CredentialService"

// Handler is the root gRPC transport handler.
//
// It owns a [health.Server] whose status follows the lifecycle of the
// application: NOT_SERVING until the server is started, SERVING while it
// accepts requests and NOT_SERVING again once shutdown begins.
type Handler struct {
	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] with both the overall and the credential
// service status set to NOT_SERVING.
func NewHandler(logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		health: health.NewServer(),
		logger: logger,
	}
	h.SetServing(false)

	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(s, h.health)
}

// SetServing switches the reported status of the server and of [ServiceName].
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	h.logger.Debug().Str("status", status.String()).Msg("gRPC health status changed")
}

// Shutdown marks every service NOT_SERVING and ignores later updates.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
