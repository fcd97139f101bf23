package services

import (
	"github.com/inboundhq/domainstack/interfaces"
	"github.com/inboundhq/domainstack/internal/logger"
	"github.com/inboundhq/domainstack/internal/repository"
	"github.com/inboundhq/domainstack/services/dns"
	"github.com/inboundhq/domainstack/services/domain"
	"github.com/inboundhq/domainstack/services/ses"
)

type Services struct {
	DNSService    interfaces.DNSService
	SESService    interfaces.SESService
	DomainService interfaces.DomainService
}

func InitServices(sesConfig *ses.Config, log logger.Logger, repos *repository.Repositories) *Services {
	dnsService := dns.NewDNSService(dns.NewResolver())
	sesService := ses.NewSESService(sesConfig)

	return &Services{
		DNSService:    dnsService,
		SESService:    sesService,
		DomainService: domain.NewDomainService(repos, dnsService, sesService, sesConfig.Region, log),
	}
}
