package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/inboundhq/domainstack/internal/enum"
	"github.com/inboundhq/domainstack/internal/models"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/internal/utils"
)

type DomainRepository interface {
	CreateDomain(ctx context.Context, domain *models.Domain) error
	GetDomain(ctx context.Context, userID, domain string) (*models.Domain, error)
	GetPendingDomains(ctx context.Context) ([]models.Domain, error)
	SetVerificationToken(ctx context.Context, domainID, token string) error
	UpdateVerificationStatus(ctx context.Context, domainID string, status enum.DomainStatus) error
	UpdateMailFromDomain(ctx context.Context, domainID, mailFromDomain string, status enum.MailFromStatus) error
	UpdateDnsDetection(ctx context.Context, domainID, provider, confidence string, hasMxRecords bool) error
	MarkDnsChecked(ctx context.Context, domainID string) error
	DeleteDomain(ctx context.Context, domainID string) error
}

type domainRepository struct {
	db *gorm.DB
}

func NewDomainRepository(db *gorm.DB) DomainRepository {
	return &domainRepository{
		db: db,
	}
}

func (r *domainRepository) CreateDomain(ctx context.Context, domain *models.Domain) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.CreateDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("domain", domain.Domain)

	now := utils.Now()
	domain.CreatedAt = now
	domain.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(domain).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) GetDomain(ctx context.Context, userID, domain string) (*models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogKV("domain", domain)

	var domainModel models.Domain
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND domain = ?", userID, domain).
		First(&domainModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.LogFields(tracingLog.Bool("result.found", false))
			return nil, nil
		}
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return &domainModel, nil
}

func (r *domainRepository) GetPendingDomains(ctx context.Context) ([]models.Domain, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.GetPendingDomains")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var domainModels []models.Domain
	err := r.db.WithContext(ctx).
		Where("status = ?", enum.DomainStatusPending).
		Find(&domainModels).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return domainModels, nil
}

func (r *domainRepository) SetVerificationToken(ctx context.Context, domainID, token string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.SetVerificationToken")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)

	err := r.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("id = ?", domainID).
		Updates(map[string]interface{}{
			"verification_token": token,
			"updated_at":         utils.Now(),
		}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) UpdateVerificationStatus(ctx context.Context, domainID string, status enum.DomainStatus) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.UpdateVerificationStatus")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)
	span.LogKV("status", status.String())

	err := r.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("id = ?", domainID).
		Updates(map[string]interface{}{
			"status":                 status,
			"last_provider_check_at": utils.Now(),
			"updated_at":             utils.Now(),
		}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) UpdateMailFromDomain(ctx context.Context, domainID, mailFromDomain string, status enum.MailFromStatus) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.UpdateMailFromDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)

	err := r.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("id = ?", domainID).
		Updates(map[string]interface{}{
			"mail_from_domain":        mailFromDomain,
			"mail_from_domain_status": status,
			"updated_at":              utils.Now(),
		}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) UpdateDnsDetection(ctx context.Context, domainID, provider, confidence string, hasMxRecords bool) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.UpdateDnsDetection")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)

	err := r.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("id = ?", domainID).
		Updates(map[string]interface{}{
			"dns_provider":            provider,
			"dns_provider_confidence": confidence,
			"has_mx_records":          hasMxRecords,
			"updated_at":              utils.Now(),
		}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) MarkDnsChecked(ctx context.Context, domainID string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.MarkDnsChecked")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)

	err := r.db.WithContext(ctx).
		Model(&models.Domain{}).
		Where("id = ?", domainID).
		UpdateColumn("last_dns_check_at", utils.Now()).
		Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainRepository) DeleteDomain(ctx context.Context, domainID string) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainRepository.DeleteDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)

	// dns record rows go first, the FK cascade only exists on fresh schemas
	err := r.db.WithContext(ctx).
		Where("domain_id = ?", domainID).
		Delete(&models.DomainDNSRecord{}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}

	err = r.db.WithContext(ctx).
		Where("id = ?", domainID).
		Delete(&models.Domain{}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}
