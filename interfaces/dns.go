package interfaces

import (
	"context"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/internal/enum"
)

// DNSResolver issues DNS queries. Resolve uses the environment's default
// resolver; ResolveWithServers queries an explicit nameserver set instead.
// MX answers come back formatted as "<priority> <exchange>".
// A missing record is reported as errors.ErrDnsNotFound, which callers must
// treat as a valid "record absent" signal rather than a lookup failure.
type DNSResolver interface {
	Resolve(ctx context.Context, recordType enum.DnsRecordType, name string) ([]string, error)
	ResolveWithServers(ctx context.Context, servers []string, recordType enum.DnsRecordType, name string) ([]string, error)
	LookupMX(ctx context.Context, name string) ([]dto.MXRecord, error)
}

type DNSService interface {
	CheckCanReceiveEmail(ctx context.Context, domain string) *dto.EmailSafetyCheck
	DetectProvider(ctx context.Context, domain string) *dto.ProviderDetection
	VerifyRecord(ctx context.Context, record dto.ExpectedDNSRecord) dto.DNSRecordVerificationResult
	VerifyRecords(ctx context.Context, records []dto.ExpectedDNSRecord) []dto.DNSRecordVerificationResult
}
