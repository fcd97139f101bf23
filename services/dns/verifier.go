package dns

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/internal/enum"
	er "github.com/inboundhq/domainstack/internal/errors"
	"github.com/inboundhq/domainstack/internal/tracing"
)

// VerifyRecords checks each expected record against live DNS. The lookups
// run concurrently; the output slice preserves input order regardless of
// completion order.
func (s *dnsService) VerifyRecords(ctx context.Context, records []dto.ExpectedDNSRecord) []dto.DNSRecordVerificationResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSService.VerifyRecords")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogFields(tracingLog.Int("records.count", len(records)))

	results := make([]dto.DNSRecordVerificationResult, len(records))

	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		go func(i int, record dto.ExpectedDNSRecord) {
			defer wg.Done()
			results[i] = s.VerifyRecord(ctx, record)
		}(i, record)
	}
	wg.Wait()

	return results
}

// VerifyRecord resolves one expected record and compares what DNS actually
// serves. The result distinguishes three unverified reasons because each
// needs different user guidance: the record is absent, the record exists
// with the wrong value, or the record type is not supported at all.
func (s *dnsService) VerifyRecord(ctx context.Context, record dto.ExpectedDNSRecord) dto.DNSRecordVerificationResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSService.VerifyRecord")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("record.type", record.Type.String(), "record.name", record.Name)

	result := dto.DNSRecordVerificationResult{
		Type:     record.Type,
		Name:     record.Name,
		Expected: record.Value,
	}

	switch record.Type {
	case enum.DnsRecordTypeTXT, enum.DnsRecordTypeMX, enum.DnsRecordTypeCNAME:
	default:
		result.Error = fmt.Sprintf("Unsupported record type: %s", record.Type)
		return result
	}

	observed := s.resolveWithFallback(ctx, record.Type, record.Name)
	result.ActualValues = observed

	if len(observed) == 0 {
		result.Error = fmt.Sprintf("No %s records found for %s. Please add the record to your DNS configuration.", record.Type, record.Name)
		return result
	}

	for _, value := range observed {
		if recordValueMatches(record.Type, record.Value, value) {
			result.IsVerified = true
			return result
		}
	}

	result.Error = fmt.Sprintf("%s record mismatch for %s: expected %q, found %s", record.Type, record.Name, record.Value, strings.Join(observed, ", "))
	return result
}

// resolveWithFallback queries the default resolver first and walks the
// public fallback sets sequentially when it errors or answers empty. The
// first set producing at least one record wins.
func (s *dnsService) resolveWithFallback(ctx context.Context, recordType enum.DnsRecordType, name string) []string {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSService.resolveWithFallback")
	defer span.Finish()

	values, err := s.resolver.Resolve(ctx, recordType, name)
	if err == nil && len(values) > 0 {
		return values
	}
	if err != nil && !errors.Is(err, er.ErrDnsNotFound) {
		tracing.TraceErr(span, err, tracingLog.String("resolver", "default"))
	}

	for _, servers := range FallbackResolverSets {
		values, err = s.resolver.ResolveWithServers(ctx, servers, recordType, name)
		if err == nil && len(values) > 0 {
			span.LogFields(tracingLog.String("resolver.fallback", servers[0]))
			return values
		}
	}

	return nil
}

// recordValueMatches applies the per-type comparison rules. TXT and MX are
// exact string comparisons; MX values are pre-formatted "<priority>
// <exchange>" by the resolver. CNAME ignores case and a single trailing dot
// on either side, per DNS absolute-name normalization.
func recordValueMatches(recordType enum.DnsRecordType, expected, actual string) bool {
	switch recordType {
	case enum.DnsRecordTypeCNAME:
		return strings.EqualFold(
			strings.TrimSuffix(expected, "."),
			strings.TrimSuffix(actual, "."),
		)
	default:
		return expected == actual
	}
}
