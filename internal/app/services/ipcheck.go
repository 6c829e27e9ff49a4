package services

import (
	"net"

	"go.uber.org/zap"

	"github.com/ilya-burinskiy/webapis/internal/app/logger"
)

type IPChecker interface {
	InTrustedSubnet(ip net.IP) bool
}

// NewIPChecker. Empty or malformed subnet trusts nobody
func NewIPChecker(trustedSubnet string) IPChecker {
	if trustedSubnet == "" {
		return ipChecker{}
	}

	_, subnet, err := net.ParseCIDR(trustedSubnet)
	if err != nil {
		logger.Log.Warn("invalid trusted subnet", zap.String("subnet", trustedSubnet), zap.Error(err))
		return ipChecker{}
	}

	return ipChecker{subnet: subnet}
}

type ipChecker struct {
	subnet *net.IPNet
}

func (c ipChecker) InTrustedSubnet(ip net.IP) bool {
	if c.subnet == nil || ip == nil {
		return false
	}

	return c.subnet.Contains(ip)
}
