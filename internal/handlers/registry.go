package handlers

import (
	"audition_backend/internal/services"
	"audition_backend/internal/validator"
)

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	AuditionHandler    *AuditionHandler
	ApplicationHandler *ApplicationHandler
	OfferHandler       *OfferHandler
	VideoHandler       *VideoHandler
	HealthHandler      *HealthHandler
}

func NewAppHandlers(svc *services.ServiceContainer, v *validator.Validator, modules []string) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:        NewAuthHandler(base, svc.AuthService),
		AuditionHandler:    NewAuditionHandler(base, svc.AuditionService),
		ApplicationHandler: NewApplicationHandler(base, svc.ApplicationService),
		OfferHandler:       NewOfferHandler(base, svc.OfferService),
		VideoHandler:       NewVideoHandler(base, svc.VideoService),
		HealthHandler:      NewHealthHandler(base, modules),
	}
}
