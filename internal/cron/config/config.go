package cron_config

type Config struct {
	// Heartbeat check, every minute
	CronScheduleHeartbeat string `env:"CRON_SCHEDULE_HEARTBEAT" envDefault:"0 * * * * *"`
	// Re-verification sweep over pending domains, every 5 minutes
	CronScheduleDomainVerification string `env:"CRON_SCHEDULE_DOMAIN_VERIFICATION" envDefault:"0 */5 * * * *"`
}
