package interfaces

import (
	"context"

	"github.com/inboundhq/domainstack/dto"
)

type DomainService interface {
	RegisterDomain(ctx context.Context, domain, userID string) (*dto.EmailSafetyCheck, error)
	InitiateVerification(ctx context.Context, domain, userID string) (*dto.DomainVerificationOutcome, error)
	VerifyDomainDNSRecords(ctx context.Context, domain, userID string) (*dto.DomainVerificationOutcome, error)
	DeleteIdentity(ctx context.Context, domain, userID string) error
}
