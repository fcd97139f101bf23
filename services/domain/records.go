package domain

import (
	"fmt"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/internal/enum"
	"github.com/inboundhq/domainstack/internal/models"
)

const (
	inboundMXPriority  = 10
	mailFromMXPriority = 10
	spfRecordValue     = "v=spf1 include:amazonses.com ~all"
	dmarcRecordValue   = "v=DMARC1; p=none;"
)

// computeRequiredRecords builds the full set of DNS records a domain must
// publish. The output is deterministic for a given (domain, token, region,
// mailFromRequested) input: same inputs, same list, same order.
func computeRequiredRecords(domainName, verificationToken, region string, mailFromRequested bool) []models.DomainDNSRecord {
	inboundMXPrio := inboundMXPriority
	mailFromMXPrio := mailFromMXPriority

	records := []models.DomainDNSRecord{
		{
			RecordType:  enum.DnsRecordTypeTXT,
			Name:        fmt.Sprintf("_amazonses.%s", domainName),
			Value:       verificationToken,
			IsRequired:  true,
			Description: "Proves ownership of the domain to the email provider",
		},
		{
			RecordType:  enum.DnsRecordTypeMX,
			Name:        domainName,
			Value:       fmt.Sprintf("inbound-smtp.%s.amazonaws.com", region),
			Priority:    &inboundMXPrio,
			IsRequired:  true,
			Description: "Routes inbound email for the domain to the receiving endpoint",
		},
		{
			RecordType:  enum.DnsRecordTypeTXT,
			Name:        domainName,
			Value:       spfRecordValue,
			IsRequired:  true,
			Description: "Authorizes the email provider to send on behalf of the domain (SPF)",
		},
		{
			RecordType:  enum.DnsRecordTypeTXT,
			Name:        fmt.Sprintf("_dmarc.%s", domainName),
			Value:       dmarcRecordValue,
			IsRequired:  false,
			Description: "Publishes a DMARC policy for the domain (recommended)",
		},
	}

	if mailFromRequested {
		mailFromDomain := mailFromDomainFor(domainName)
		records = append(records,
			models.DomainDNSRecord{
				RecordType:  enum.DnsRecordTypeMX,
				Name:        mailFromDomain,
				Value:       fmt.Sprintf("feedback-smtp.%s.amazonses.com", region),
				Priority:    &mailFromMXPrio,
				IsRequired:  false,
				Description: "Routes bounce and complaint feedback for the custom MAIL FROM domain",
			},
			models.DomainDNSRecord{
				RecordType:  enum.DnsRecordTypeTXT,
				Name:        mailFromDomain,
				Value:       spfRecordValue,
				IsRequired:  false,
				Description: "Authorizes the email provider to send from the custom MAIL FROM domain (SPF)",
			},
		)
	}

	return records
}

func mailFromDomainFor(domainName string) string {
	return "mail." + domainName
}

// expectedRecord converts a stored requirement row into the verifier's
// input. MX expectations carry the priority inline so the comparison is a
// single exact string match.
func expectedRecord(row models.DomainDNSRecord) dto.ExpectedDNSRecord {
	value := row.Value
	if row.RecordType == enum.DnsRecordTypeMX && row.Priority != nil {
		value = fmt.Sprintf("%d %s", *row.Priority, row.Value)
	}
	return dto.ExpectedDNSRecord{
		Type:  row.RecordType,
		Name:  row.Name,
		Value: value,
	}
}

func allRequiredVerified(rows []models.DomainDNSRecord) bool {
	for _, row := range rows {
		if row.IsRequired && !row.IsVerified {
			return false
		}
	}
	return true
}
