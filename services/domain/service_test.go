package domain

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inboundhq/domainstack/dto"
	"github.com/inboundhq/domainstack/interfaces"
	"github.com/inboundhq/domainstack/internal/enum"
	er "github.com/inboundhq/domainstack/internal/errors"
	"github.com/inboundhq/domainstack/internal/logger"
	"github.com/inboundhq/domainstack/internal/models"
	"github.com/inboundhq/domainstack/internal/repository"
	"github.com/inboundhq/domainstack/internal/utils"
)

type fakeDomainRepo struct {
	mu            sync.Mutex
	domains       map[string]*models.Domain
	createCalls   int
	detectionSets int
	dnsChecked    map[string]bool
}

func newFakeDomainRepo() *fakeDomainRepo {
	return &fakeDomainRepo{
		domains:    map[string]*models.Domain{},
		dnsChecked: map[string]bool{},
	}
}

func (r *fakeDomainRepo) CreateDomain(ctx context.Context, domain *models.Domain) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if domain.ID == "" {
		domain.ID = utils.GenerateNanoIDWithPrefix("dom", 16)
	}
	r.domains[domain.ID] = domain
	return nil
}

func (r *fakeDomainRepo) GetDomain(ctx context.Context, userID, domain string) (*models.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.domains {
		if d.UserID == userID && d.Domain == domain {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDomainRepo) GetPendingDomains(ctx context.Context) ([]models.Domain, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Domain
	for _, d := range r.domains {
		if d.Status == enum.DomainStatusPending {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (r *fakeDomainRepo) SetVerificationToken(ctx context.Context, domainID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.domains[domainID]; ok {
		d.VerificationToken = &token
	}
	return nil
}

func (r *fakeDomainRepo) UpdateVerificationStatus(ctx context.Context, domainID string, status enum.DomainStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.domains[domainID]; ok {
		d.Status = status
		d.LastProviderCheckAt = utils.NowPtr()
	}
	return nil
}

func (r *fakeDomainRepo) UpdateMailFromDomain(ctx context.Context, domainID, mailFromDomain string, status enum.MailFromStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d, ok := r.domains[domainID]; ok {
		d.MailFromDomain = mailFromDomain
		d.MailFromDomainStatus = status
	}
	return nil
}

func (r *fakeDomainRepo) UpdateDnsDetection(ctx context.Context, domainID, provider, confidence string, hasMxRecords bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectionSets++
	if d, ok := r.domains[domainID]; ok {
		d.DnsProvider = provider
		d.DnsProviderConfidence = confidence
		d.HasMXRecords = hasMxRecords
	}
	return nil
}

func (r *fakeDomainRepo) MarkDnsChecked(ctx context.Context, domainID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dnsChecked[domainID] = true
	if d, ok := r.domains[domainID]; ok {
		d.LastDnsCheckAt = utils.NowPtr()
	}
	return nil
}

func (r *fakeDomainRepo) DeleteDomain(ctx context.Context, domainID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.domains, domainID)
	return nil
}

type fakeDNSRecordRepo struct {
	mu   sync.Mutex
	rows []models.DomainDNSRecord
}

func (r *fakeDNSRecordRepo) InsertMissing(ctx context.Context, records []models.DomainDNSRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		if r.exists(record.DomainID, record.RecordType, record.Name) {
			continue
		}
		if record.ID == "" {
			record.ID = utils.GenerateNanoIDWithPrefix("dnsr", 16)
		}
		r.rows = append(r.rows, record)
	}
	return nil
}

func (r *fakeDNSRecordRepo) exists(domainID string, recordType enum.DnsRecordType, name string) bool {
	for _, row := range r.rows {
		if row.DomainID == domainID && row.RecordType == recordType && row.Name == name {
			return true
		}
	}
	return false
}

func (r *fakeDNSRecordRepo) ListForDomain(ctx context.Context, domainID string) ([]models.DomainDNSRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DomainDNSRecord
	for _, row := range r.rows {
		if row.DomainID == domainID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeDNSRecordRepo) UpdateVerification(ctx context.Context, recordID string, verified bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == recordID {
			r.rows[i].IsVerified = verified
			r.rows[i].LastCheckedAt = utils.NowPtr()
		}
	}
	return nil
}

type fakeSESService struct {
	configured         bool
	token              string
	verificationStatus string
	mailFromStatus     string
	mailFromErr        error
	verifyCalls        int
	deletedIdentities  []string
	deleteErr          error
}

func (s *fakeSESService) IsConfigured() bool {
	return s.configured
}

func (s *fakeSESService) VerifyDomainIdentity(ctx context.Context, domain string) (string, error) {
	s.verifyCalls++
	return s.token, nil
}

func (s *fakeSESService) GetIdentityVerificationStatus(ctx context.Context, domain string) (string, error) {
	return s.verificationStatus, nil
}

func (s *fakeSESService) SetMailFromDomain(ctx context.Context, domain, mailFromDomain string) error {
	return s.mailFromErr
}

func (s *fakeSESService) GetMailFromDomainStatus(ctx context.Context, domain string) (string, error) {
	return s.mailFromStatus, nil
}

func (s *fakeSESService) DeleteIdentity(ctx context.Context, domain string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedIdentities = append(s.deletedIdentities, domain)
	return nil
}

// fakeDNSChecker answers the safety precheck with a canned result and
// verifies records against a (type, name) allow-set.
type fakeDNSChecker struct {
	safety         *dto.EmailSafetyCheck
	verifiedByName map[string]bool
}

func (s *fakeDNSChecker) CheckCanReceiveEmail(ctx context.Context, domain string) *dto.EmailSafetyCheck {
	if s.safety != nil {
		return s.safety
	}
	return &dto.EmailSafetyCheck{CanReceiveEmails: true}
}

func (s *fakeDNSChecker) DetectProvider(ctx context.Context, domain string) *dto.ProviderDetection {
	return &dto.ProviderDetection{Provider: "DNS Provider", Icon: "dns", Confidence: enum.ProviderConfidenceLow}
}

func (s *fakeDNSChecker) VerifyRecord(ctx context.Context, record dto.ExpectedDNSRecord) dto.DNSRecordVerificationResult {
	verified := s.verifiedByName[fmt.Sprintf("%s %s", record.Type, record.Name)]
	result := dto.DNSRecordVerificationResult{
		Type:       record.Type,
		Name:       record.Name,
		Expected:   record.Value,
		IsVerified: verified,
	}
	if !verified {
		result.Error = fmt.Sprintf("No %s records found for %s. Please add the record to your DNS configuration.", record.Type, record.Name)
	}
	return result
}

func (s *fakeDNSChecker) VerifyRecords(ctx context.Context, records []dto.ExpectedDNSRecord) []dto.DNSRecordVerificationResult {
	results := make([]dto.DNSRecordVerificationResult, len(records))
	for i, record := range records {
		results[i] = s.VerifyRecord(ctx, record)
	}
	return results
}

type serviceFixture struct {
	service    interfaces.DomainService
	domainRepo *fakeDomainRepo
	recordRepo *fakeDNSRecordRepo
	ses        *fakeSESService
	dns        *fakeDNSChecker
}

func newServiceFixture(t *testing.T, ses *fakeSESService, dns *fakeDNSChecker) *serviceFixture {
	t.Helper()

	appLogger := logger.NewAppLogger(&logger.Config{DevMode: true})
	appLogger.InitLogger()

	domainRepo := newFakeDomainRepo()
	recordRepo := &fakeDNSRecordRepo{}
	repos := &repository.Repositories{
		DomainRepository:          domainRepo,
		DomainDNSRecordRepository: recordRepo,
	}

	return &serviceFixture{
		service:    NewDomainService(repos, dns, ses, "us-east-2", appLogger),
		domainRepo: domainRepo,
		recordRepo: recordRepo,
		ses:        ses,
		dns:        dns,
	}
}

func (f *serviceFixture) seedDomain(t *testing.T, domainName, userID string) *models.Domain {
	t.Helper()
	domainModel := &models.Domain{
		UserID:               userID,
		Domain:               domainName,
		Status:               enum.DomainStatusPending,
		MailFromDomainStatus: enum.MailFromStatusNotSet,
	}
	require.NoError(t, f.domainRepo.CreateDomain(context.Background(), domainModel))
	return domainModel
}

func TestRegisterDomain_CreatesPendingRow(t *testing.T) {
	fixture := newServiceFixture(t, &fakeSESService{}, &fakeDNSChecker{
		safety: &dto.EmailSafetyCheck{
			CanReceiveEmails: true,
			Provider: &dto.ProviderDetection{
				Provider:   "Cloudflare",
				Detected:   true,
				Confidence: enum.ProviderConfidenceHigh,
			},
		},
	})

	safety, err := fixture.service.RegisterDomain(context.Background(), "Example.COM", "user_1")

	require.NoError(t, err)
	assert.True(t, safety.CanReceiveEmails)
	assert.Equal(t, 1, fixture.domainRepo.createCalls)

	stored, err := fixture.domainRepo.GetDomain(context.Background(), "user_1", "example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, enum.DomainStatusPending, stored.Status)
	assert.Equal(t, "Cloudflare", stored.DnsProvider)
	assert.Equal(t, "high", stored.DnsProviderConfidence)
	assert.Equal(t, enum.MailFromStatusNotSet, stored.MailFromDomainStatus)
}

func TestRegisterDomain_InvalidFormat(t *testing.T) {
	fixture := newServiceFixture(t, &fakeSESService{}, &fakeDNSChecker{})

	safety, err := fixture.service.RegisterDomain(context.Background(), "not a domain", "user_1")

	assert.ErrorIs(t, err, er.ErrInvalidDomainFormat)
	assert.False(t, safety.CanReceiveEmails)
	assert.Zero(t, fixture.domainRepo.createCalls)
}

func TestRegisterDomain_ExistingDomainRefreshesDetection(t *testing.T) {
	fixture := newServiceFixture(t, &fakeSESService{}, &fakeDNSChecker{
		safety: &dto.EmailSafetyCheck{
			CanReceiveEmails: false,
			HasMXRecords:     true,
			Provider: &dto.ProviderDetection{
				Provider:   "GoDaddy",
				Detected:   true,
				Confidence: enum.ProviderConfidenceMedium,
			},
		},
	})
	fixture.seedDomain(t, "example.com", "user_1")

	_, err := fixture.service.RegisterDomain(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	assert.Equal(t, 1, fixture.domainRepo.createCalls)
	assert.Equal(t, 1, fixture.domainRepo.detectionSets)

	stored, _ := fixture.domainRepo.GetDomain(context.Background(), "user_1", "example.com")
	assert.Equal(t, "GoDaddy", stored.DnsProvider)
	assert.True(t, stored.HasMXRecords)
}

func TestInitiateVerification_ProviderNotConfigured(t *testing.T) {
	fixture := newServiceFixture(t, &fakeSESService{configured: false}, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	outcome, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")

	assert.ErrorIs(t, err, er.ErrProviderNotConfigured)
	require.NotNil(t, outcome)
	assert.Equal(t, enum.DomainStatusPending, outcome.Status)
	assert.False(t, outcome.CanProceed)
	assert.Zero(t, fixture.ses.verifyCalls)
}

func TestInitiateVerification_UnknownDomain(t *testing.T) {
	fixture := newServiceFixture(t, &fakeSESService{configured: true}, &fakeDNSChecker{})

	_, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")

	assert.ErrorIs(t, err, er.ErrDomainNotFound)
}

func TestInitiateVerification_ComputesRequirementSet(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Pending",
		mailFromStatus:     "Pending",
	}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	outcome, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	assert.Equal(t, "tok-abc123", outcome.VerificationToken)
	assert.Equal(t, enum.DomainStatusPending, outcome.Status)
	assert.Equal(t, "mail.example.com", outcome.MailFromDomain)
	assert.False(t, outcome.CanProceed)

	require.Len(t, outcome.DNSRecords, 6)
	byName := map[string]dto.DNSRecordStatus{}
	for _, record := range outcome.DNSRecords {
		byName[fmt.Sprintf("%s %s", record.Type, record.Name)] = record
	}

	ownership := byName["TXT _amazonses.example.com"]
	assert.Equal(t, "tok-abc123", ownership.Value)
	assert.True(t, ownership.IsRequired)

	inbound := byName["MX example.com"]
	assert.Equal(t, "inbound-smtp.us-east-2.amazonaws.com", inbound.Value)
	require.NotNil(t, inbound.Priority)
	assert.Equal(t, 10, *inbound.Priority)
	assert.True(t, inbound.IsRequired)

	spf := byName["TXT example.com"]
	assert.Equal(t, "v=spf1 include:amazonses.com ~all", spf.Value)
	assert.True(t, spf.IsRequired)

	dmarc := byName["TXT _dmarc.example.com"]
	assert.Equal(t, "v=DMARC1; p=none;", dmarc.Value)
	assert.False(t, dmarc.IsRequired)

	feedback := byName["MX mail.example.com"]
	assert.Equal(t, "feedback-smtp.us-east-2.amazonses.com", feedback.Value)
	assert.False(t, feedback.IsRequired)

	mailFromSpf := byName["TXT mail.example.com"]
	assert.Equal(t, "v=spf1 include:amazonses.com ~all", mailFromSpf.Value)
	assert.False(t, mailFromSpf.IsRequired)
}

func TestInitiateVerification_IdempotentReentry(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Pending",
		mailFromStatus:     "Pending",
	}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	first, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")
	require.NoError(t, err)
	second, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")
	require.NoError(t, err)

	// identity registered exactly once, token reused from storage
	assert.Equal(t, 1, ses.verifyCalls)
	assert.Equal(t, first.VerificationToken, second.VerificationToken)
	assert.Len(t, second.DNSRecords, len(first.DNSRecords))
}

func TestInitiateVerification_ReentryKeepsVerifiedRows(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Pending",
		mailFromStatus:     "Pending",
	}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	_, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")
	require.NoError(t, err)

	// mark one requirement verified out of band
	fixture.recordRepo.mu.Lock()
	require.NotEmpty(t, fixture.recordRepo.rows)
	fixture.recordRepo.rows[0].IsVerified = true
	verifiedID := fixture.recordRepo.rows[0].ID
	fixture.recordRepo.mu.Unlock()

	outcome, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")
	require.NoError(t, err)

	fixture.recordRepo.mu.Lock()
	defer fixture.recordRepo.mu.Unlock()
	for _, row := range fixture.recordRepo.rows {
		if row.ID == verifiedID {
			assert.True(t, row.IsVerified)
		}
	}
	assert.Len(t, outcome.DNSRecords, 6)
}

func TestInitiateVerification_MailFromFailureIsBestEffort(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Pending",
		mailFromErr:        er.ErrProviderRateLimited,
	}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	outcome, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	// no MAIL FROM records in the requirement set when provisioning failed
	assert.Len(t, outcome.DNSRecords, 4)
	assert.Equal(t, enum.MailFromStatusNotSet, outcome.MailFromDomainStatus)
	assert.Equal(t, "mail.example.com", outcome.MailFromDomain)
}

func TestInitiateVerification_MailFromCappedWhileDomainPending(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Pending",
		mailFromStatus:     "Success",
	}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	outcome, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	assert.Equal(t, enum.MailFromStatusPending, outcome.MailFromDomainStatus)
}

func TestInitiateVerification_ProviderSuccessAloneIsNotVerified(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Success",
		mailFromStatus:     "Pending",
	}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	outcome, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	assert.Equal(t, "Success", outcome.SesStatus)
	// required DNS records are still unverified, so the domain stays pending
	assert.Equal(t, enum.DomainStatusPending, outcome.Status)
	assert.False(t, outcome.CanProceed)
}

func TestVerifyDomainDNSRecords_AllRequiredVerified(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Success",
		mailFromStatus:     "Pending",
	}
	dns := &fakeDNSChecker{
		verifiedByName: map[string]bool{
			"TXT _amazonses.example.com": true,
			"MX example.com":             true,
			"TXT example.com":            true,
		},
	}
	fixture := newServiceFixture(t, ses, dns)
	fixture.seedDomain(t, "example.com", "user_1")

	_, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")
	require.NoError(t, err)

	outcome, err := fixture.service.VerifyDomainDNSRecords(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	// optional rows (_dmarc, mail-from) failing never blocks verification
	assert.Equal(t, enum.DomainStatusVerified, outcome.Status)
	assert.True(t, outcome.CanProceed)

	stored, _ := fixture.domainRepo.GetDomain(context.Background(), "user_1", "example.com")
	assert.Equal(t, enum.DomainStatusVerified, stored.Status)
	assert.NotNil(t, stored.LastDnsCheckAt)
}

func TestVerifyDomainDNSRecords_RequiredRecordMissing(t *testing.T) {
	ses := &fakeSESService{
		configured:         true,
		token:              "tok-abc123",
		verificationStatus: "Success",
		mailFromStatus:     "Pending",
	}
	dns := &fakeDNSChecker{
		verifiedByName: map[string]bool{
			"TXT _amazonses.example.com": true,
			"TXT example.com":            true,
			// the inbound MX is still missing
		},
	}
	fixture := newServiceFixture(t, ses, dns)
	fixture.seedDomain(t, "example.com", "user_1")

	_, err := fixture.service.InitiateVerification(context.Background(), "example.com", "user_1")
	require.NoError(t, err)

	outcome, err := fixture.service.VerifyDomainDNSRecords(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	assert.Equal(t, enum.DomainStatusPending, outcome.Status)
	assert.False(t, outcome.CanProceed)

	var inbound *dto.DNSRecordStatus
	for i := range outcome.DNSRecords {
		if outcome.DNSRecords[i].Type == enum.DnsRecordTypeMX && outcome.DNSRecords[i].Name == "example.com" {
			inbound = &outcome.DNSRecords[i]
		}
	}
	require.NotNil(t, inbound)
	assert.False(t, inbound.IsVerified)
}

func TestVerifyDomainDNSRecords_UnknownDomain(t *testing.T) {
	fixture := newServiceFixture(t, &fakeSESService{configured: true}, &fakeDNSChecker{})

	_, err := fixture.service.VerifyDomainDNSRecords(context.Background(), "example.com", "user_1")

	assert.ErrorIs(t, err, er.ErrDomainNotFound)
}

func TestDeleteIdentity_RemovesDomain(t *testing.T) {
	ses := &fakeSESService{configured: true}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	err := fixture.service.DeleteIdentity(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	assert.Equal(t, []string{"example.com"}, ses.deletedIdentities)

	stored, _ := fixture.domainRepo.GetDomain(context.Background(), "user_1", "example.com")
	assert.Nil(t, stored)
}

func TestDeleteIdentity_UnknownDomain(t *testing.T) {
	fixture := newServiceFixture(t, &fakeSESService{configured: true}, &fakeDNSChecker{})

	err := fixture.service.DeleteIdentity(context.Background(), "example.com", "user_1")

	assert.ErrorIs(t, err, er.ErrDomainNotFound)
}

func TestDeleteIdentity_UnconfiguredProviderSkipsProviderCall(t *testing.T) {
	ses := &fakeSESService{configured: false}
	fixture := newServiceFixture(t, ses, &fakeDNSChecker{})
	fixture.seedDomain(t, "example.com", "user_1")

	err := fixture.service.DeleteIdentity(context.Background(), "example.com", "user_1")

	require.NoError(t, err)
	assert.Empty(t, ses.deletedIdentities)
}

func TestMapSesStatus(t *testing.T) {
	assert.Equal(t, enum.DomainStatusVerified, mapSesStatus("Success"))
	assert.Equal(t, enum.DomainStatusFailed, mapSesStatus("Failed"))
	assert.Equal(t, enum.DomainStatusPending, mapSesStatus("Pending"))
	assert.Equal(t, enum.DomainStatusPending, mapSesStatus("TemporaryFailure"))
	assert.Equal(t, enum.DomainStatusPending, mapSesStatus(""))
}

func TestComputeRequiredRecords_Deterministic(t *testing.T) {
	first := computeRequiredRecords("example.com", "tok", "us-east-2", true)
	second := computeRequiredRecords("example.com", "tok", "us-east-2", true)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].RecordType, second[i].RecordType)
		assert.Equal(t, first[i].Name, second[i].Name)
		assert.Equal(t, first[i].Value, second[i].Value)
		assert.Equal(t, first[i].IsRequired, second[i].IsRequired)
	}
}

func TestExpectedRecord_MXCarriesPriorityInline(t *testing.T) {
	priority := 10
	row := models.DomainDNSRecord{
		RecordType: enum.DnsRecordTypeMX,
		Name:       "example.com",
		Value:      "inbound-smtp.us-east-2.amazonaws.com",
		Priority:   &priority,
	}

	expected := expectedRecord(row)

	assert.Equal(t, "10 inbound-smtp.us-east-2.amazonaws.com", expected.Value)
}

func TestEffectiveStatus(t *testing.T) {
	unverifiedRequired := []models.DomainDNSRecord{{IsRequired: true, IsVerified: false}}
	verifiedRequired := []models.DomainDNSRecord{
		{IsRequired: true, IsVerified: true},
		{IsRequired: false, IsVerified: false},
	}

	assert.Equal(t, enum.DomainStatusPending, effectiveStatus(enum.DomainStatusVerified, unverifiedRequired))
	assert.Equal(t, enum.DomainStatusVerified, effectiveStatus(enum.DomainStatusVerified, verifiedRequired))
	assert.Equal(t, enum.DomainStatusFailed, effectiveStatus(enum.DomainStatusFailed, unverifiedRequired))
	assert.Equal(t, enum.DomainStatusPending, effectiveStatus(enum.DomainStatusPending, verifiedRequired))
}
