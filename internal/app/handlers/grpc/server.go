package grpc

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ilya-burinskiy/webapis/internal/app/logger"
	"github.com/ilya-burinskiy/webapis/internal/app/services"
)

// Services reported by the health server. The empty name is the overall status
const (
	TimestampService = "timestamp"
	WhoamiService    = "whoami"
	ShortURLService  = "shorturl"
	ExerciseService  = "exercise"
)

const defaultProbeInterval = 10 * time.Second

// Services that need storage to work
var storageServices = []string{"", ShortURLService, ExerciseService}

// Pinger checks storage availability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthServer
type HealthServer struct {
	*health.Server
	pinger   Pinger
	interval time.Duration
}

// NewHealthServer. Storage backed services stay NOT_SERVING until the first probe
func NewHealthServer(pinger Pinger, interval time.Duration) *HealthServer {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	s := &HealthServer{
		Server:   health.NewServer(),
		pinger:   pinger,
		interval: interval,
	}
	s.SetServingStatus(TimestampService, healthpb.HealthCheckResponse_SERVING)
	s.SetServingStatus(WhoamiService, healthpb.HealthCheckResponse_SERVING)
	for _, service := range storageServices {
		s.SetServingStatus(service, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	return s
}

// Probe pings storage once and updates statuses
func (s *HealthServer) Probe(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, s.interval)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.pinger.Ping(ctx); err != nil {
		logger.Log.Warn("storage probe failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	for _, service := range storageServices {
		s.SetServingStatus(service, status)
	}
}

// Run probes storage every interval until ctx is done, then marks everything NOT_SERVING
func (s *HealthServer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Probe(ctx)
	for {
		select {
		case <-ticker.C:
			s.Probe(ctx)
		case <-ctx.Done():
			s.Shutdown()
			return
		}
	}
}

// NewServer creates gRPC server with health service registered.
// Nil ipChecker lets every client in.
func NewServer(healthServer *HealthServer, ipChecker services.IPChecker) *grpc.Server {
	unary := []grpc.UnaryServerInterceptor{LoggingUnaryInterceptor}
	stream := []grpc.StreamServerInterceptor{LoggingStreamInterceptor}
	if ipChecker != nil {
		unary = append(unary, TrustedIPUnaryInterceptor(ipChecker))
		stream = append(stream, TrustedIPStreamInterceptor(ipChecker))
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	)
	healthpb.RegisterHealthServer(srv, healthServer)

	return srv
}
