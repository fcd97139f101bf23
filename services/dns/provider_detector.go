package dns

import (
	"context"
	"strings"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/internal/enum"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/internal/utils"
)

type providerSignature struct {
	displayName string
	icon        string
	substrings  []string
}

// providerSignatures maps nameserver hostname fragments to DNS hosts.
// Matching is a case-insensitive substring scan, first hit wins.
var providerSignatures = []providerSignature{
	{"Cloudflare", "cloudflare", []string{"cloudflare.com"}},
	{"Amazon Route 53", "route53", []string{"awsdns"}},
	{"GoDaddy", "godaddy", []string{"domaincontrol.com", "godaddy"}},
	{"Namecheap", "namecheap", []string{"registrar-servers.com", "namecheaphosting"}},
	{"Vercel", "vercel", []string{"vercel-dns.com"}},
	{"DigitalOcean", "digitalocean", []string{"digitalocean.com"}},
	{"Netlify", "netlify", []string{"nsone.net", "netlify"}},
	{"DNSimple", "dnsimple", []string{"dnsimple.com"}},
	{"Hover", "hover", []string{"hover.com"}},
	{"Porkbun", "porkbun", []string{"porkbun.com"}},
	{"Squarespace", "squarespace", []string{"squarespacedns.com"}},
	{"Google Domains", "google", []string{"googledomains.com", "google.com"}},
}

// DetectProvider identifies the DNS host serving a domain from its NS
// records. When the domain itself yields no NS answer the lookup walks up
// the parent labels, downgrading confidence one step per level, and stops
// before reaching a bare TLD. It always returns a renderable value.
func (s *dnsService) DetectProvider(ctx context.Context, domain string) *dto.ProviderDetection {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSService.DetectProvider")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain)

	confidence := enum.ProviderConfidenceHigh
	current := utils.NormalizeDomain(domain)

	for current != "" && strings.Count(current, ".") >= 1 {
		nameservers, err := s.resolver.Resolve(ctx, enum.DnsRecordTypeNS, current)
		if err == nil && len(nameservers) > 0 {
			detection := matchProviderSignature(nameservers, confidence)
			span.LogFields(
				tracingLog.String("result.provider", detection.Provider),
				tracingLog.String("result.confidence", detection.Confidence.String()),
			)
			return detection
		}

		// no NS answer at this level, retry one label up with less certainty
		current = utils.ParentDomain(current)
		confidence = confidence.Downgrade()
	}

	span.LogFields(tracingLog.Bool("result.detected", false))
	return &dto.ProviderDetection{
		Provider:   "DNS Provider",
		Icon:       "dns",
		Detected:   false,
		Confidence: enum.ProviderConfidenceLow,
	}
}

func matchProviderSignature(nameservers []string, confidence enum.ProviderConfidence) *dto.ProviderDetection {
	for _, ns := range nameservers {
		host := strings.ToLower(ns)
		for _, sig := range providerSignatures {
			for _, fragment := range sig.substrings {
				if strings.Contains(host, fragment) {
					return &dto.ProviderDetection{
						Provider:   sig.displayName,
						Icon:       sig.icon,
						Detected:   true,
						Confidence: confidence,
					}
				}
			}
		}
	}

	// NS records exist but match no known host
	return &dto.ProviderDetection{
		Provider:   "Custom DNS Provider",
		Icon:       "dns",
		Detected:   false,
		Confidence: confidence.Downgrade(),
	}
}
