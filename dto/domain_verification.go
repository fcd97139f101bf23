package dto

import (
	"github.com/inboundhq/domainstack/internal/enum"
)

// DomainVerificationOutcome is the JSON contract consumed by the dashboard
// after every verification pass. It is always fully populated, even on
// failure, so the UI can render current status plus the records that still
// need attention.
type DomainVerificationOutcome struct {
	Domain               string              `json:"domain"`
	DomainID             string              `json:"domainId"`
	VerificationToken    string              `json:"verificationToken"`
	Status               enum.DomainStatus   `json:"status"`
	SesStatus            string              `json:"sesStatus"`
	MailFromDomain       string              `json:"mailFromDomain"`
	MailFromDomainStatus enum.MailFromStatus `json:"mailFromDomainStatus"`
	DNSRecords           []DNSRecordStatus   `json:"dnsRecords"`
	CanProceed           bool                `json:"canProceed"`
	Error                string              `json:"error,omitempty"`
}

// DNSRecordStatus is one requirement row annotated with its latest
// verification state.
type DNSRecordStatus struct {
	Type        enum.DnsRecordType `json:"type"`
	Name        string             `json:"name"`
	Value       string             `json:"value"`
	Priority    *int               `json:"priority,omitempty"`
	IsRequired  bool               `json:"isRequired"`
	IsVerified  bool               `json:"isVerified"`
	Description string             `json:"description"`
}

// MXRecord is a priority/exchange pair observed in DNS.
type MXRecord struct {
	Priority uint16 `json:"priority"`
	Exchange string `json:"exchange"`
}

// EmailSafetyCheck reports whether a domain can be provisioned for inbound
// email without disturbing existing mail routing.
type EmailSafetyCheck struct {
	CanReceiveEmails bool               `json:"canReceiveEmails"`
	HasMXRecords     bool               `json:"hasMxRecords"`
	MXRecords        []MXRecord         `json:"mxRecords,omitempty"`
	Provider         *ProviderDetection `json:"provider,omitempty"`
	Error            string             `json:"error,omitempty"`
}

// ProviderDetection names the DNS host a domain appears to be served by.
type ProviderDetection struct {
	Provider   string                  `json:"provider"`
	Icon       string                  `json:"icon"`
	Detected   bool                    `json:"detected"`
	Confidence enum.ProviderConfidence `json:"confidence"`
}

// ExpectedDNSRecord is one (type, name, value) triple handed to the
// record verifier.
type ExpectedDNSRecord struct {
	Type  enum.DnsRecordType `json:"type"`
	Name  string             `json:"name"`
	Value string             `json:"value"`
}

// DNSRecordVerificationResult is the outcome of checking one expected
// record against live DNS. Recomputed in full on every pass.
type DNSRecordVerificationResult struct {
	Type         enum.DnsRecordType `json:"type"`
	Name         string             `json:"name"`
	Expected     string             `json:"expected"`
	ActualValues []string           `json:"actualValues"`
	IsVerified   bool               `json:"isVerified"`
	Error        string             `json:"error,omitempty"`
}
