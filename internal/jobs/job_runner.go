package jobs

import (
	"bizdesk-backend/internal/config"
	"bizdesk-backend/internal/repository"
	"bizdesk-backend/internal/service"
)

// JobRunner holds the dependencies shared by all scheduled jobs.
type JobRunner struct {
	cfg        *config.Config
	tenantRepo repository.TenantRepository
	lifecycle  service.TenantLifecycleService
}

func NewJobRunner(cfg *config.Config, tenantRepo repository.TenantRepository, lifecycle service.TenantLifecycleService) *JobRunner {
	return &JobRunner{
		cfg:        cfg,
		tenantRepo: tenantRepo,
		lifecycle:  lifecycle,
	}
}

// Config returns the loaded application configuration.
func (j *JobRunner) Config() *config.Config {
	return j.cfg
}
