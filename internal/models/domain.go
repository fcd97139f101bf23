package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/inboundhq/domainstack/internal/enum"
	"github.com/inboundhq/domainstack/internal/utils"
)

type Domain struct {
	ID                    string              `gorm:"column:id;type:varchar(50);primaryKey" json:"id"`
	UserID                string              `gorm:"column:user_id;type:varchar(255);index;uniqueIndex:idx_domains_user_domain" json:"userId"`
	Domain                string              `gorm:"column:domain;type:varchar(255);NOT NULL;uniqueIndex:idx_domains_user_domain" json:"domain"`
	Status                enum.DomainStatus   `gorm:"column:status;type:varchar(20);default:'pending'" json:"status"`
	VerificationToken     *string             `gorm:"column:verification_token;type:varchar(255)" json:"verificationToken"`
	HasMXRecords          bool                `gorm:"column:has_mx_records;type:boolean;default:false" json:"hasMxRecords"`
	DnsProvider           string              `gorm:"column:dns_provider;type:varchar(100)" json:"dnsProvider"`
	DnsProviderConfidence string              `gorm:"column:dns_provider_confidence;type:varchar(10)" json:"dnsProviderConfidence"`
	MailFromDomain        string              `gorm:"column:mail_from_domain;type:varchar(255)" json:"mailFromDomain"`
	MailFromDomainStatus  enum.MailFromStatus `gorm:"column:mail_from_domain_status;type:varchar(20);default:'not_set'" json:"mailFromDomainStatus"`
	CatchAll              bool                `gorm:"column:catch_all;type:boolean;default:false" json:"catchAll"`
	LastDnsCheckAt        *time.Time          `gorm:"column:last_dns_check_at;type:timestamp" json:"lastDnsCheckAt"`
	LastProviderCheckAt   *time.Time          `gorm:"column:last_provider_check_at;type:timestamp" json:"lastProviderCheckAt"`
	CreatedAt             time.Time           `gorm:"column:created_at;type:timestamp;default:current_timestamp" json:"createdAt"`
	UpdatedAt             time.Time           `gorm:"column:updated_at;type:timestamp;default:current_timestamp" json:"updatedAt"`

	DNSRecords []DomainDNSRecord `gorm:"foreignKey:DomainID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Domain) TableName() string {
	return "domains"
}

func (m *Domain) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = utils.GenerateNanoIDWithPrefix("dom", 16)
	}
	return nil
}
