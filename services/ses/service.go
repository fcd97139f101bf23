package ses

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	awsses "github.com/aws/aws-sdk-go/service/ses"
	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/inboundhq/domainstack/interfaces"
	er "github.com/inboundhq/domainstack/internal/errors"
	"github.com/inboundhq/domainstack/internal/tracing"
)

type Config struct {
	Region          string `env:"AWS_SES_REGION" envDefault:"us-east-2"`
	AccessKeyID     string `env:"AWS_SES_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SES_SECRET_ACCESS_KEY"`
}

type sesService struct {
	cfg    *Config
	client *awsses.SES
}

// NewSESService builds the SES wrapper. With incomplete credentials the
// service stays in an unconfigured state instead of failing, so callers can
// report a configuration problem to the operator rather than crash.
func NewSESService(cfg *Config) interfaces.SESService {
	s := &sesService{cfg: cfg}
	if !s.IsConfigured() {
		return s
	}

	awsSession := session.Must(session.NewSession(&aws.Config{
		Region:      aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
	}))
	s.client = awsses.New(awsSession)
	return s
}

func (s *sesService) IsConfigured() bool {
	return s.cfg != nil && s.cfg.Region != "" && s.cfg.AccessKeyID != "" && s.cfg.SecretAccessKey != ""
}

func (s *sesService) VerifyDomainIdentity(ctx context.Context, domain string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SESService.VerifyDomainIdentity")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain)

	if s.client == nil {
		return "", er.ErrProviderNotConfigured
	}

	output, err := s.client.VerifyDomainIdentityWithContext(ctx, &awsses.VerifyDomainIdentityInput{
		Domain: aws.String(domain),
	})
	if err != nil {
		wrapped := translateAwsError(err)
		tracing.TraceErr(span, wrapped)
		return "", wrapped
	}

	return aws.StringValue(output.VerificationToken), nil
}

func (s *sesService) GetIdentityVerificationStatus(ctx context.Context, domain string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SESService.GetIdentityVerificationStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain)

	if s.client == nil {
		return "", er.ErrProviderNotConfigured
	}

	output, err := s.client.GetIdentityVerificationAttributesWithContext(ctx, &awsses.GetIdentityVerificationAttributesInput{
		Identities: []*string{aws.String(domain)},
	})
	if err != nil {
		wrapped := translateAwsError(err)
		tracing.TraceErr(span, wrapped)
		return "", wrapped
	}

	attributes, ok := output.VerificationAttributes[domain]
	if !ok || attributes == nil {
		span.LogFields(tracingLog.Bool("result.found", false))
		return "", nil
	}

	return aws.StringValue(attributes.VerificationStatus), nil
}

func (s *sesService) SetMailFromDomain(ctx context.Context, domain, mailFromDomain string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SESService.SetMailFromDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain, "request.mailFromDomain", mailFromDomain)

	if s.client == nil {
		return er.ErrProviderNotConfigured
	}

	_, err := s.client.SetIdentityMailFromDomainWithContext(ctx, &awsses.SetIdentityMailFromDomainInput{
		Identity:            aws.String(domain),
		MailFromDomain:      aws.String(mailFromDomain),
		BehaviorOnMXFailure: aws.String(awsses.BehaviorOnMXFailureUseDefaultValue),
	})
	if err != nil {
		wrapped := translateAwsError(err)
		tracing.TraceErr(span, wrapped)
		return wrapped
	}
	return nil
}

func (s *sesService) GetMailFromDomainStatus(ctx context.Context, domain string) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SESService.GetMailFromDomainStatus")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain)

	if s.client == nil {
		return "", er.ErrProviderNotConfigured
	}

	output, err := s.client.GetIdentityMailFromDomainAttributesWithContext(ctx, &awsses.GetIdentityMailFromDomainAttributesInput{
		Identities: []*string{aws.String(domain)},
	})
	if err != nil {
		wrapped := translateAwsError(err)
		tracing.TraceErr(span, wrapped)
		return "", wrapped
	}

	attributes, ok := output.MailFromDomainAttributes[domain]
	if !ok || attributes == nil {
		return "", nil
	}

	return aws.StringValue(attributes.MailFromDomainStatus), nil
}

// DeleteIdentity removes the sending identity. An identity that is already
// gone upstream counts as success, making the delete idempotent.
func (s *sesService) DeleteIdentity(ctx context.Context, domain string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SESService.DeleteIdentity")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domain)

	if s.client == nil {
		return er.ErrProviderNotConfigured
	}

	_, err := s.client.DeleteIdentityWithContext(ctx, &awsses.DeleteIdentityInput{
		Identity: aws.String(domain),
	})
	if err != nil {
		if isAwsNotFound(err) {
			span.LogFields(tracingLog.String("result", "identity already removed"))
			return nil
		}
		wrapped := translateAwsError(err)
		tracing.TraceErr(span, wrapped)
		return wrapped
	}
	return nil
}

// translateAwsError maps SES errors onto the service error taxonomy so raw
// provider exceptions never reach callers.
func translateAwsError(err error) error {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case "Throttling", "ThrottlingException", "LimitExceededException", "TooManyRequestsException":
			return er.ErrProviderRateLimited
		}
		return errors.Wrapf(er.ErrVerificationFailed, "provider error %s", awsErr.Code())
	}
	return errors.Wrap(er.ErrVerificationFailed, err.Error())
}

func isAwsNotFound(err error) bool {
	var awsErr awserr.Error
	if errors.As(err, &awsErr) {
		switch awsErr.Code() {
		case "NotFoundException", "NotFound":
			return true
		}
	}
	return false
}
