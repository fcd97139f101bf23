package dns

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboundhq/domainstack/internal/enum"
	er "github.com/inboundhq/domainstack/internal/errors"
)

func TestDetectProvider_KnownSignature(t *testing.T) {
	resolver := newFakeResolver()
	resolver.records[key(enum.DnsRecordTypeNS, "example.com")] = []string{
		"dara.ns.cloudflare.com",
		"west.ns.cloudflare.com",
	}
	service := NewDNSService(resolver)

	detection := service.DetectProvider(context.Background(), "example.com")

	require.NotNil(t, detection)
	assert.Equal(t, "Cloudflare", detection.Provider)
	assert.Equal(t, "cloudflare", detection.Icon)
	assert.True(t, detection.Detected)
	assert.Equal(t, enum.ProviderConfidenceHigh, detection.Confidence)
}

func TestDetectProvider_MatchIsCaseInsensitive(t *testing.T) {
	resolver := newFakeResolver()
	resolver.records[key(enum.DnsRecordTypeNS, "example.com")] = []string{
		"NS-1234.AWSDNS-12.ORG",
	}
	service := NewDNSService(resolver)

	detection := service.DetectProvider(context.Background(), "example.com")

	assert.Equal(t, "Amazon Route 53", detection.Provider)
	assert.True(t, detection.Detected)
}

func TestDetectProvider_UnknownNameserversDowngradeOnce(t *testing.T) {
	resolver := newFakeResolver()
	resolver.records[key(enum.DnsRecordTypeNS, "example.com")] = []string{
		"ns1.some-private-host.net",
		"ns2.some-private-host.net",
	}
	service := NewDNSService(resolver)

	detection := service.DetectProvider(context.Background(), "example.com")

	assert.Equal(t, "Custom DNS Provider", detection.Provider)
	assert.False(t, detection.Detected)
	assert.Equal(t, enum.ProviderConfidenceMedium, detection.Confidence)
}

func TestDetectProvider_ParentWalkDowngradesPerLevel(t *testing.T) {
	resolver := newFakeResolver()
	// nothing at the subdomain, NS records live on the registered domain
	resolver.records[key(enum.DnsRecordTypeNS, "example.com")] = []string{
		"ns1.domaincontrol.com",
	}
	service := NewDNSService(resolver)

	detection := service.DetectProvider(context.Background(), "mail.sub.example.com")

	assert.Equal(t, "GoDaddy", detection.Provider)
	assert.True(t, detection.Detected)
	// two failed levels before the hit: high -> medium -> low
	assert.Equal(t, enum.ProviderConfidenceLow, detection.Confidence)
}

func TestDetectProvider_WalkStopsBeforeBareTLD(t *testing.T) {
	resolver := newFakeResolver()
	// make the TLD itself answer; the walk must never ask for it
	resolver.records[key(enum.DnsRecordTypeNS, "com")] = []string{
		"a.gtld-servers.net",
	}
	service := NewDNSService(resolver)

	detection := service.DetectProvider(context.Background(), "sub.example.com")

	assert.Equal(t, "DNS Provider", detection.Provider)
	assert.False(t, detection.Detected)
	assert.Equal(t, enum.ProviderConfidenceLow, detection.Confidence)
}

func TestDetectProvider_TransientErrorsFallThroughToGeneric(t *testing.T) {
	resolver := newFakeResolver()
	resolver.errs[key(enum.DnsRecordTypeNS, "example.com")] = er.ErrDnsTransientFailure
	service := NewDNSService(resolver)

	detection := service.DetectProvider(context.Background(), "example.com")

	require.NotNil(t, detection)
	assert.Equal(t, "DNS Provider", detection.Provider)
	assert.Equal(t, "dns", detection.Icon)
	assert.False(t, detection.Detected)
	assert.Equal(t, enum.ProviderConfidenceLow, detection.Confidence)
}

func TestProviderConfidence_DowngradeFloorsAtLow(t *testing.T) {
	assert.Equal(t, enum.ProviderConfidenceMedium, enum.ProviderConfidenceHigh.Downgrade())
	assert.Equal(t, enum.ProviderConfidenceLow, enum.ProviderConfidenceMedium.Downgrade())
	assert.Equal(t, enum.ProviderConfidenceLow, enum.ProviderConfidenceLow.Downgrade())
}
