package dns

import (
	"github.com/inboundhq/domainstack/interfaces"
)

type dnsService struct {
	resolver interfaces.DNSResolver
}

func NewDNSService(resolver interfaces.DNSResolver) interfaces.DNSService {
	return &dnsService{
		resolver: resolver,
	}
}
