package grpc

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/ilya-burinskiy/webapis/internal/app/logger"
	"github.com/ilya-burinskiy/webapis/internal/app/services"
)

// LoggingUnaryInterceptor
func LoggingUnaryInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (interface{}, error) {

	start := time.Now()
	resp, err := handler(ctx, req)
	logger.Log.Info("got incoming gRPC request",
		zap.String("method", info.FullMethod),
		zap.String("duration", time.Since(start).String()),
		zap.String("code", status.Code(err).String()),
	)

	return resp, err
}

// LoggingStreamInterceptor
func LoggingStreamInterceptor(
	srv interface{},
	ss grpc.ServerStream,
	info *grpc.StreamServerInfo,
	handler grpc.StreamHandler) error {

	start := time.Now()
	err := handler(srv, ss)
	logger.Log.Info("gRPC stream closed",
		zap.String("method", info.FullMethod),
		zap.String("duration", time.Since(start).String()),
		zap.String("code", status.Code(err).String()),
	)

	return err
}

// TrustedIPUnaryInterceptor
func TrustedIPUnaryInterceptor(ipChecker services.IPChecker) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		if err := checkIP(ctx, ipChecker); err != nil {
			return nil, err
		}

		return handler(ctx, req)
	}
}

// TrustedIPStreamInterceptor
func TrustedIPStreamInterceptor(ipChecker services.IPChecker) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if err := checkIP(ss.Context(), ipChecker); err != nil {
			return err
		}

		return handler(srv, ss)
	}
}

// checkIP takes client ip from "x-real-ip" metadata or from the peer address.
// The metadata is expected to be set by a proxy in front of the server.
func checkIP(ctx context.Context, ipChecker services.IPChecker) error {
	var ip net.IP
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("x-real-ip"); len(values) > 0 {
			ip = net.ParseIP(values[0])
		}
	}
	if ip == nil {
		if p, ok := peer.FromContext(ctx); ok {
			if addr, ok := p.Addr.(*net.TCPAddr); ok {
				ip = addr.IP
			}
		}
	}

	if !ipChecker.InTrustedSubnet(ip) {
		return status.Error(codes.PermissionDenied, "forbidden")
	}

	return nil
}
