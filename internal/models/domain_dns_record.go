package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/inboundhq/domainstack/internal/enum"
	"github.com/inboundhq/domainstack/internal/utils"
)

// DomainDNSRecord is one record the user must publish before the domain
// completes verification. Uniqueness on (domain_id, record_type, name)
// keeps concurrent verification passes from inserting duplicates.
type DomainDNSRecord struct {
	ID            string             `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	DomainID      string             `gorm:"column:domain_id;type:varchar(50);index;uniqueIndex:idx_dns_records_domain_type_name" json:"domainId"`
	RecordType    enum.DnsRecordType `gorm:"column:record_type;type:varchar(10);uniqueIndex:idx_dns_records_domain_type_name" json:"recordType"`
	Name          string             `gorm:"column:name;type:varchar(255);uniqueIndex:idx_dns_records_domain_type_name" json:"name"`
	Value         string             `gorm:"column:value;type:text" json:"value"`
	Priority      *int               `gorm:"column:priority" json:"priority"`
	IsRequired    bool               `gorm:"column:is_required;type:boolean;default:true" json:"isRequired"`
	Description   string             `gorm:"column:description;type:varchar(500)" json:"description"`
	IsVerified    bool               `gorm:"column:is_verified;type:boolean;default:false" json:"isVerified"`
	LastCheckedAt *time.Time         `gorm:"column:last_checked_at;type:timestamp" json:"lastCheckedAt"`
	CreatedAt     time.Time          `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`
}

func (DomainDNSRecord) TableName() string {
	return "domain_dns_records"
}

func (m *DomainDNSRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateNanoIDWithPrefix("dnsr", 16)
	}
	return nil
}
