package dns

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/internal/enum"
	er "github.com/inboundhq/domainstack/internal/errors"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/internal/utils"
)

// CheckCanReceiveEmail decides whether a domain is safe to provision for
// inbound email. A pre-existing MX record means mail is already routed
// elsewhere; a CNAME at the apex blocks adding MX records at the same name.
// Either one makes the domain unsafe. A missing record is the expected
// success condition, so the MX and CNAME lookups run independently and a
// NOT_FOUND on one never aborts the other.
func (s *dnsService) CheckCanReceiveEmail(ctx context.Context, domain string) *dto.EmailSafetyCheck {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DNSService.CheckCanReceiveEmail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain)

	if !utils.IsValidDomainFormat(domain) {
		tracing.TraceErr(span, er.ErrInvalidDomainFormat)
		return &dto.EmailSafetyCheck{
			CanReceiveEmails: false,
			Error:            fmt.Sprintf("invalid domain format: %s", domain),
		}
	}
	domain = utils.NormalizeDomain(domain)

	result := &dto.EmailSafetyCheck{}
	var warnings []string

	mxRecords, err := s.resolver.LookupMX(ctx, domain)
	switch {
	case err == nil:
		result.HasMXRecords = true
		result.MXRecords = mxRecords
	case errors.Is(err, er.ErrDnsNotFound):
		// no MX is exactly what we want
	default:
		warnings = append(warnings, fmt.Sprintf("MX lookup failed: %v", err))
	}

	hasCname := false
	_, err = s.resolver.Resolve(ctx, enum.DnsRecordTypeCNAME, domain)
	switch {
	case err == nil:
		hasCname = true
	case errors.Is(err, er.ErrDnsNotFound):
		// fine as well
	default:
		warnings = append(warnings, fmt.Sprintf("CNAME lookup failed: %v", err))
	}

	result.CanReceiveEmails = !(result.HasMXRecords || hasCname)
	if len(warnings) > 0 {
		result.Error = joinWarnings(warnings)
	}

	// best effort, never fails the precheck
	result.Provider = s.DetectProvider(ctx, domain)

	span.LogFields(
		tracingLog.Bool("result.canReceiveEmails", result.CanReceiveEmails),
		tracingLog.Bool("result.hasMxRecords", result.HasMXRecords),
	)
	return result
}

func joinWarnings(warnings []string) string {
	out := warnings[0]
	for _, w := range warnings[1:] {
		out += "; " + w
	}
	return out
}
