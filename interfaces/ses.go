package interfaces

import "context"

// SESService wraps the AWS SES identity API. Raw SES errors never cross
// this boundary; implementations translate them to the sentinel errors in
// internal/errors.
type SESService interface {
	IsConfigured() bool
	VerifyDomainIdentity(ctx context.Context, domain string) (string, error)
	GetIdentityVerificationStatus(ctx context.Context, domain string) (string, error)
	SetMailFromDomain(ctx context.Context, domain, mailFromDomain string) error
	GetMailFromDomainStatus(ctx context.Context, domain string) (string, error)
	DeleteIdentity(ctx context.Context, domain string) error
}
