package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/inboundhq/domainstack/internal/models"
	"github.com/inboundhq/domainstack/internal/tracing"
	"github.com/inboundhq/domainstack/internal/utils"
)

type DomainDNSRecordRepository interface {
	InsertMissing(ctx context.Context, records []models.DomainDNSRecord) error
	ListForDomain(ctx context.Context, domainID string) ([]models.DomainDNSRecord, error)
	UpdateVerification(ctx context.Context, recordID string, verified bool) error
}

type domainDNSRecordRepository struct {
	db *gorm.DB
}

func NewDomainDNSRecordRepository(db *gorm.DB) DomainDNSRecordRepository {
	return &domainDNSRecordRepository{
		db: db,
	}
}

// InsertMissing inserts requirement rows, silently skipping rows that
// already exist for (domain_id, record_type, name). Existing rows keep
// their verified state so a re-registration pass never resets progress.
func (r *domainDNSRecordRepository) InsertMissing(ctx context.Context, records []models.DomainDNSRecord) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainDNSRecordRepository.InsertMissing")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.LogFields(tracingLog.Int("records.count", len(records)))

	if len(records) == 0 {
		return nil
	}

	now := utils.Now()
	for i := range records {
		records[i].CreatedAt = now
		records[i].UpdatedAt = now
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "domain_id"}, {Name: "record_type"}, {Name: "name"}},
			DoNothing: true,
		}).
		Create(&records).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}

func (r *domainDNSRecordRepository) ListForDomain(ctx context.Context, domainID string) ([]models.DomainDNSRecord, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainDNSRecordRepository.ListForDomain")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, domainID)

	var records []models.DomainDNSRecord
	err := r.db.WithContext(ctx).
		Where("domain_id = ?", domainID).
		Order("created_at asc, name asc").
		Find(&records).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return nil, err
	}

	return records, nil
}

func (r *domainDNSRecordRepository) UpdateVerification(ctx context.Context, recordID string, verified bool) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "DomainDNSRecordRepository.UpdateVerification")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	tracing.TagEntity(span, recordID)
	span.LogFields(tracingLog.Bool("verified", verified))

	err := r.db.WithContext(ctx).
		Model(&models.DomainDNSRecord{}).
		Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"is_verified":     verified,
			"last_checked_at": utils.Now(),
			"updated_at":      utils.Now(),
		}).Error
	if err != nil {
		tracing.TraceErr(span, errors.Wrap(err, "db error"))
		return err
	}
	return nil
}
