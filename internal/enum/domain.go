package enum

type DomainStatus string

const (
	DomainStatusPending  DomainStatus = "pending"
	DomainStatusVerified DomainStatus = "verified"
	DomainStatusFailed   DomainStatus = "failed"
)

func (t DomainStatus) String() string {
	return string(t)
}

type MailFromStatus string

const (
	MailFromStatusNotSet   MailFromStatus = "not_set"
	MailFromStatusPending  MailFromStatus = "pending"
	MailFromStatusVerified MailFromStatus = "verified"
	MailFromStatusFailed   MailFromStatus = "failed"
)

func (t MailFromStatus) String() string {
	return string(t)
}

type DnsRecordType string

const (
	DnsRecordTypeTXT   DnsRecordType = "TXT"
	DnsRecordTypeMX    DnsRecordType = "MX"
	DnsRecordTypeCNAME DnsRecordType = "CNAME"
	DnsRecordTypeNS    DnsRecordType = "NS"
	DnsRecordTypeA     DnsRecordType = "A"
)

func (t DnsRecordType) String() string {
	return string(t)
}

type ProviderConfidence string

const (
	ProviderConfidenceHigh   ProviderConfidence = "high"
	ProviderConfidenceMedium ProviderConfidence = "medium"
	ProviderConfidenceLow    ProviderConfidence = "low"
)

func (t ProviderConfidence) String() string {
	return string(t)
}

// Downgrade returns the confidence one step lower, used when provider
// detection falls back to a parent domain.
func (t ProviderConfidence) Downgrade() ProviderConfidence {
	if t == ProviderConfidenceHigh {
		return ProviderConfidenceMedium
	}
	return ProviderConfidenceLow
}
