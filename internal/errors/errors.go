package errors

import "github.com/pkg/errors"

var (
	// domain errors
	ErrInvalidDomainFormat = errors.New("invalid domain format")
	ErrDomainNotFound      = errors.New("domain not found")

	// dns errors
	ErrDnsNotFound         = errors.New("dns record not found")
	ErrDnsTransientFailure = errors.New("dns lookup failed")
	ErrUnsupportedDnsType  = errors.New("unsupported record type")

	// sending identity provider errors
	ErrProviderNotConfigured = errors.New("email identity provider is not configured")
	ErrProviderRateLimited   = errors.New("email identity provider rate limit exceeded")
	ErrVerificationFailed    = errors.New("domain verification failed")
)
