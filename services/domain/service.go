package domain

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/interfaces"
	"github.com/inboundhq/domainstack/internal/enum"
	er "github.com/inboundhq/domainstack/internal/errors"
	"github.com/inboundhq/domainstack/internal/logger"
	"github.com/inboundhq/domainstack/internal/models"
	"github.com/inboundhq/domainstack/internal/repository"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/internal/utils"
)

// SES verification status strings, per GetIdentityVerificationAttributes.
const (
	sesStatusSuccess = "Success"
	sesStatusFailed  = "Failed"
)

type domainService struct {
	postgres  *repository.Repositories
	dns       interfaces.DNSService
	ses       interfaces.SESService
	sesRegion string
	log       logger.Logger
}

func NewDomainService(postgres *repository.Repositories, dnsService interfaces.DNSService, sesService interfaces.SESService, sesRegion string, log logger.Logger) interfaces.DomainService {
	return &domainService{
		postgres:  postgres,
		dns:       dnsService,
		ses:       sesService,
		sesRegion: sesRegion,
		log:       log,
	}
}

// RegisterDomain runs the mail-safety precheck and creates the domain row
// with its initial DNS-safety fields. Registering an already known domain
// re-runs the precheck and refreshes the detection fields.
func (s *domainService) RegisterDomain(ctx context.Context, domainName, userID string) (*dto.EmailSafetyCheck, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.RegisterDomain")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domainName)

	if !utils.IsValidDomainFormat(domainName) {
		tracing.TraceErr(span, er.ErrInvalidDomainFormat)
		return &dto.EmailSafetyCheck{
			CanReceiveEmails: false,
			Error:            er.ErrInvalidDomainFormat.Error(),
		}, er.ErrInvalidDomainFormat
	}
	domainName = utils.NormalizeDomain(domainName)

	safety := s.dns.CheckCanReceiveEmail(ctx, domainName)

	existing, err := s.postgres.DomainRepository.GetDomain(ctx, userID, domainName)
	if err != nil {
		tracing.TraceErr(span, err)
		return safety, errors.Wrap(er.ErrVerificationFailed, err.Error())
	}

	provider := ""
	confidence := ""
	if safety.Provider != nil {
		provider = safety.Provider.Provider
		confidence = safety.Provider.Confidence.String()
	}

	if existing == nil {
		domainModel := &models.Domain{
			UserID:                userID,
			Domain:                domainName,
			Status:                enum.DomainStatusPending,
			HasMXRecords:          safety.HasMXRecords,
			DnsProvider:           provider,
			DnsProviderConfidence: confidence,
			MailFromDomainStatus:  enum.MailFromStatusNotSet,
		}
		if err := s.postgres.DomainRepository.CreateDomain(ctx, domainModel); err != nil {
			tracing.TraceErr(span, err)
			return safety, errors.Wrap(er.ErrVerificationFailed, err.Error())
		}
		return safety, nil
	}

	if err := s.postgres.DomainRepository.UpdateDnsDetection(ctx, existing.ID, provider, confidence, safety.HasMXRecords); err != nil {
		tracing.TraceErr(span, err)
	}
	return safety, nil
}

// InitiateVerification registers the domain as a sending identity, computes
// the DNS records the user must publish and reports current progress. The
// operation is idempotent: an already-registered identity keeps its stored
// token and previously verified requirement rows are never reset.
func (s *domainService) InitiateVerification(ctx context.Context, domainName, userID string) (*dto.DomainVerificationOutcome, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.InitiateVerification")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domainName)

	outcome := &dto.DomainVerificationOutcome{Domain: domainName}

	if !utils.IsValidDomainFormat(domainName) {
		tracing.TraceErr(span, er.ErrInvalidDomainFormat)
		outcome.Error = er.ErrInvalidDomainFormat.Error()
		return outcome, er.ErrInvalidDomainFormat
	}
	domainName = utils.NormalizeDomain(domainName)
	outcome.Domain = domainName

	domainModel, err := s.postgres.DomainRepository.GetDomain(ctx, userID, domainName)
	if err != nil {
		tracing.TraceErr(span, err)
		outcome.Error = er.ErrVerificationFailed.Error()
		return outcome, errors.Wrap(er.ErrVerificationFailed, err.Error())
	}
	if domainModel == nil {
		tracing.TraceErr(span, er.ErrDomainNotFound)
		outcome.Error = er.ErrDomainNotFound.Error()
		return outcome, er.ErrDomainNotFound
	}
	outcome.DomainID = domainModel.ID

	if !s.ses.IsConfigured() {
		// distinct from a verification in progress: nothing will move until
		// an operator supplies provider credentials
		tracing.TraceErr(span, er.ErrProviderNotConfigured)
		outcome.Status = domainModel.Status
		outcome.Error = er.ErrProviderNotConfigured.Error()
		return outcome, er.ErrProviderNotConfigured
	}

	token, err := s.ensureIdentityRegistered(ctx, domainModel)
	if err != nil {
		tracing.TraceErr(span, err)
		outcome.Error = err.Error()
		return outcome, err
	}
	outcome.VerificationToken = token

	// best effort: the primary identity is usable without a custom MAIL FROM
	mailFromRequested, mailFromStatus := s.provisionMailFrom(ctx, domainModel)
	outcome.MailFromDomain = mailFromDomainFor(domainName)
	outcome.MailFromDomainStatus = mailFromStatus

	sesStatus, err := s.ses.GetIdentityVerificationStatus(ctx, domainName)
	if err != nil {
		tracing.TraceErr(span, err)
		outcome.Error = err.Error()
		return outcome, err
	}
	outcome.SesStatus = sesStatus

	required := computeRequiredRecords(domainName, token, s.sesRegion, mailFromRequested)
	for i := range required {
		required[i].DomainID = domainModel.ID
	}
	if err := s.postgres.DomainDNSRecordRepository.InsertMissing(ctx, required); err != nil {
		tracing.TraceErr(span, err)
		outcome.Error = er.ErrVerificationFailed.Error()
		return outcome, errors.Wrap(er.ErrVerificationFailed, err.Error())
	}

	rows, err := s.postgres.DomainDNSRecordRepository.ListForDomain(ctx, domainModel.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		outcome.Error = er.ErrVerificationFailed.Error()
		return outcome, errors.Wrap(er.ErrVerificationFailed, err.Error())
	}

	status := effectiveStatus(mapSesStatus(sesStatus), rows)
	if err := s.postgres.DomainRepository.UpdateVerificationStatus(ctx, domainModel.ID, status); err != nil {
		tracing.TraceErr(span, err)
	}

	outcome.Status = status
	outcome.DNSRecords = toRecordStatuses(rows)
	outcome.CanProceed = status == enum.DomainStatusVerified

	span.LogFields(
		tracingLog.String("result.status", status.String()),
		tracingLog.Bool("result.canProceed", outcome.CanProceed),
	)
	return outcome, nil
}

// ensureIdentityRegistered registers a sending identity once and reuses the
// stored token on every later pass.
func (s *domainService) ensureIdentityRegistered(ctx context.Context, domainModel *models.Domain) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.ensureIdentityRegistered")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	if token := utils.GetOrDefault(domainModel.VerificationToken, ""); token != "" {
		span.LogFields(tracingLog.Bool("identity.reused", true))
		return token, nil
	}

	token, err := s.ses.VerifyDomainIdentity(ctx, domainModel.Domain)
	if err != nil {
		return "", err
	}

	if err := s.postgres.DomainRepository.SetVerificationToken(ctx, domainModel.ID, token); err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(er.ErrVerificationFailed, err.Error())
	}
	domainModel.VerificationToken = &token
	return token, nil
}

// provisionMailFrom asks the provider for a mail.<domain> MAIL FROM
// sub-domain. Failures are logged and swallowed; the returned bool reports
// whether the sub-domain was accepted and its records belong in the
// requirement set.
func (s *domainService) provisionMailFrom(ctx context.Context, domainModel *models.Domain) (bool, enum.MailFromStatus) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.provisionMailFrom")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	mailFromDomain := mailFromDomainFor(domainModel.Domain)

	if err := s.ses.SetMailFromDomain(ctx, domainModel.Domain, mailFromDomain); err != nil {
		tracing.TraceErr(span, err)
		s.log.Warnf("MAIL FROM provisioning failed for %s: %v", domainModel.Domain, err)
		return false, domainModel.MailFromDomainStatus
	}

	rawStatus, err := s.ses.GetMailFromDomainStatus(ctx, domainModel.Domain)
	if err != nil {
		tracing.TraceErr(span, err)
		rawStatus = ""
	}

	status := mapMailFromStatus(rawStatus)
	// the MAIL FROM sub-domain cannot outrun the domain itself
	if domainModel.Status != enum.DomainStatusVerified && status == enum.MailFromStatusVerified {
		status = enum.MailFromStatusPending
	}

	if err := s.postgres.DomainRepository.UpdateMailFromDomain(ctx, domainModel.ID, mailFromDomain, status); err != nil {
		tracing.TraceErr(span, err)
	}
	return true, status
}

// VerifyDomainDNSRecords re-checks every stored requirement against live
// DNS and refreshes the domain's overall status. Provider status alone
// never marks a domain verified while a required record is still failing,
// since the provider's view can lag real DNS propagation.
func (s *domainService) VerifyDomainDNSRecords(ctx context.Context, domainName, userID string) (*dto.DomainVerificationOutcome, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.VerifyDomainDNSRecords")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domainName)

	outcome := &dto.DomainVerificationOutcome{Domain: domainName}

	if !utils.IsValidDomainFormat(domainName) {
		tracing.TraceErr(span, er.ErrInvalidDomainFormat)
		outcome.Error = er.ErrInvalidDomainFormat.Error()
		return outcome, er.ErrInvalidDomainFormat
	}
	domainName = utils.NormalizeDomain(domainName)
	outcome.Domain = domainName

	domainModel, err := s.postgres.DomainRepository.GetDomain(ctx, userID, domainName)
	if err != nil {
		tracing.TraceErr(span, err)
		outcome.Error = er.ErrVerificationFailed.Error()
		return outcome, errors.Wrap(er.ErrVerificationFailed, err.Error())
	}
	if domainModel == nil {
		tracing.TraceErr(span, er.ErrDomainNotFound)
		outcome.Error = er.ErrDomainNotFound.Error()
		return outcome, er.ErrDomainNotFound
	}
	outcome.DomainID = domainModel.ID
	outcome.VerificationToken = utils.GetOrDefault(domainModel.VerificationToken, "")
	outcome.MailFromDomain = domainModel.MailFromDomain
	outcome.MailFromDomainStatus = domainModel.MailFromDomainStatus

	rows, err := s.postgres.DomainDNSRecordRepository.ListForDomain(ctx, domainModel.ID)
	if err != nil {
		tracing.TraceErr(span, err)
		outcome.Error = er.ErrVerificationFailed.Error()
		return outcome, errors.Wrap(er.ErrVerificationFailed, err.Error())
	}

	expected := make([]dto.ExpectedDNSRecord, len(rows))
	for i, row := range rows {
		expected[i] = expectedRecord(row)
	}

	results := s.dns.VerifyRecords(ctx, expected)
	for i, result := range results {
		rows[i].IsVerified = result.IsVerified
		if err := s.postgres.DomainDNSRecordRepository.UpdateVerification(ctx, rows[i].ID, result.IsVerified); err != nil {
			tracing.TraceErr(span, err)
		}
	}
	if err := s.postgres.DomainRepository.MarkDnsChecked(ctx, domainModel.ID); err != nil {
		tracing.TraceErr(span, err)
	}

	// provider status is refreshed best-effort; the stored status stands in
	// when the provider is unreachable or unconfigured
	providerStatus := domainModel.Status
	if s.ses.IsConfigured() {
		rawStatus, err := s.ses.GetIdentityVerificationStatus(ctx, domainName)
		if err != nil {
			tracing.TraceErr(span, err)
		} else {
			outcome.SesStatus = rawStatus
			providerStatus = mapSesStatus(rawStatus)
		}
	}

	status := effectiveStatus(providerStatus, rows)
	if status != domainModel.Status {
		if err := s.postgres.DomainRepository.UpdateVerificationStatus(ctx, domainModel.ID, status); err != nil {
			tracing.TraceErr(span, err)
		}
	}

	outcome.Status = status
	outcome.DNSRecords = toRecordStatuses(rows)
	outcome.CanProceed = status == enum.DomainStatusVerified

	span.LogFields(tracingLog.Bool("result.canProceed", outcome.CanProceed))
	return outcome, nil
}

// DeleteIdentity tears down the sending identity and removes the domain
// with its requirement rows. A domain already removed upstream is not an
// error for the caller.
func (s *domainService) DeleteIdentity(ctx context.Context, domainName, userID string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "DomainService.DeleteIdentity")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.LogKV("request.domain", domainName)

	domainName = utils.NormalizeDomain(domainName)

	domainModel, err := s.postgres.DomainRepository.GetDomain(ctx, userID, domainName)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(er.ErrVerificationFailed, err.Error())
	}
	if domainModel == nil {
		tracing.TraceErr(span, er.ErrDomainNotFound)
		return er.ErrDomainNotFound
	}

	if s.ses.IsConfigured() {
		if err := s.ses.DeleteIdentity(ctx, domainName); err != nil {
			tracing.TraceErr(span, err)
			return err
		}
	}

	if err := s.postgres.DomainRepository.DeleteDomain(ctx, domainModel.ID); err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(er.ErrVerificationFailed, err.Error())
	}
	return nil
}

// mapSesStatus translates the provider's verification attribute into the
// three-state domain lifecycle.
func mapSesStatus(sesStatus string) enum.DomainStatus {
	switch sesStatus {
	case sesStatusSuccess:
		return enum.DomainStatusVerified
	case sesStatusFailed:
		return enum.DomainStatusFailed
	default:
		return enum.DomainStatusPending
	}
}

func mapMailFromStatus(rawStatus string) enum.MailFromStatus {
	switch rawStatus {
	case sesStatusSuccess:
		return enum.MailFromStatusVerified
	case sesStatusFailed:
		return enum.MailFromStatusFailed
	default:
		return enum.MailFromStatusPending
	}
}

// effectiveStatus folds DNS reality into the provider's verdict: a domain
// is only verified when the provider says so and every required record
// checks out.
func effectiveStatus(providerStatus enum.DomainStatus, rows []models.DomainDNSRecord) enum.DomainStatus {
	if providerStatus == enum.DomainStatusVerified && !allRequiredVerified(rows) {
		return enum.DomainStatusPending
	}
	return providerStatus
}

func toRecordStatuses(rows []models.DomainDNSRecord) []dto.DNSRecordStatus {
	statuses := make([]dto.DNSRecordStatus, len(rows))
	for i, row := range rows {
		statuses[i] = dto.DNSRecordStatus{
			Type:        row.RecordType,
			Name:        row.Name,
			Value:       row.Value,
			Priority:    row.Priority,
			IsRequired:  row.IsRequired,
			IsVerified:  row.IsVerified,
			Description: row.Description,
		}
	}
	return statuses
}
