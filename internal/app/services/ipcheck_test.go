package services_test

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ilya-burinskiy/webapis/internal/app/services"
)

func TestIPCheckerInTrustedSubnet(t *testing.T) {
	testCases := []struct {
		name   string
		subnet string
		ip     string
		want   bool
	}{
		{name: "inside subnet", subnet: "192.168.1.0/24", ip: "192.168.1.15", want: true},
		{name: "outside subnet", subnet: "192.168.1.0/24", ip: "192.168.2.15", want: false},
		{name: "empty subnet trusts nobody", subnet: "", ip: "127.0.0.1", want: false},
		{name: "malformed subnet trusts nobody", subnet: "192.168.1.0", ip: "192.168.1.0", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			checker := services.NewIPChecker(tc.subnet)
			assert.Equal(t, tc.want, checker.InTrustedSubnet(net.ParseIP(tc.ip)))
		})
	}
}
