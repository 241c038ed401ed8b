package services

import (
	"audition_backend/internal/auth"
	"audition_backend/internal/config"
	"audition_backend/internal/email"
	"audition_backend/internal/metrics"
	"audition_backend/internal/repositories"
	"audition_backend/internal/social"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        AuthService
	AuditionService    AuditionService
	ApplicationService ApplicationService
	OfferService       OfferService
	VideoService       VideoService
}

// Dependencies - внешние зависимости сервисов
type Dependencies struct {
	Tokens   *auth.TokenManager
	Social   social.Fetcher
	Notifier *email.Notifier
	Metrics  *metrics.Metrics
}

// NewServiceContainer собирает репозитории и сервисы
func NewServiceContainer(cfg *config.Config, deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	auditionRepo := repositories.NewAuditionRepository()
	applicationRepo := repositories.NewApplicationRepository()
	offerRepo := repositories.NewOfferRepository()
	videoRepo := repositories.NewVideoRepository()

	return &ServiceContainer{
		AuthService:     NewAuthService(userRepo, deps.Tokens, deps.Social, deps.Metrics),
		AuditionService: NewAuditionService(auditionRepo),
		ApplicationService: NewApplicationService(
			applicationRepo,
			auditionRepo,
			cfg.Application,
			cfg.Screening,
			deps.Metrics,
		),
		OfferService: NewOfferService(offerRepo, auditionRepo, videoRepo, deps.Notifier, deps.Metrics),
		VideoService: NewVideoService(videoRepo, deps.Metrics),
	}
}
