package repository

import (
	"gorm.io/gorm"

	"github.com/inboundhq/domainstack/internal/models"
)

type Repositories struct {
	DomainRepository          DomainRepository
	DomainDNSRecordRepository DomainDNSRecordRepository
}

func InitRepositories(domainstackDB *gorm.DB) *Repositories {
	return &Repositories{
		DomainRepository:          NewDomainRepository(domainstackDB),
		DomainDNSRecordRepository: NewDomainDNSRecordRepository(domainstackDB),
	}
}

func MigrateDB(domainstackDB *gorm.DB) error {
	return domainstackDB.AutoMigrate(
		&models.Domain{},
		&models.DomainDNSRecord{},
	)
}
