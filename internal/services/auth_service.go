package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"audition_backend/internal/auth"
	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services/dto"
	"audition_backend/internal/social"
	"audition_backend/internal/validator"
	"audition_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	SocialLogin(ctx context.Context, db *gorm.DB, req *dto.SocialLoginRequest) (*dto.AuthResponse, error)
	Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	social   social.Fetcher
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *auth.TokenManager,
	fetcher social.Fetcher,
	m *metrics.Metrics,
) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		social:   fetcher,
		metrics:  m,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if err := auth.ValidatePassword(req.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, apperrors.ErrPasswordTooLong
		}
		return nil, apperrors.ErrWeakPassword
	}
	if !req.UserType.Valid() {
		return nil, apperrors.ValidationError(map[string]string{"userType": "Must be one of: APPLICANT, BUSINESS"})
	}

	user := &models.User{
		Email:           email,
		Name:            strings.TrimSpace(req.Name),
		UserType:        req.UserType,
		ProfileImageURL: req.ProfileImageURL,
		Provider:        models.ProviderLocal,
	}

	var (
		applicant *models.ApplicantProfile
		business  *models.BusinessProfile
		err       error
	)
	switch req.UserType {
	case models.UserTypeApplicant:
		applicant, err = s.buildApplicantProfile(req)
	case models.UserTypeBusiness:
		business, err = buildBusinessProfile(req)
	}
	if err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	user.PasswordHash = &hash

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// Быстрая проверка; окончательно решает уникальный индекс
	if _, err := s.userRepo.FindByEmail(tx, email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, handleUserError(err)
	}

	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleUserError(err)
	}

	if applicant != nil {
		applicant.UserID = user.ID
		if err := s.userRepo.CreateApplicantProfile(tx, applicant); err != nil {
			return nil, handleUserError(err)
		}
		user.ApplicantProfile = applicant
	}
	if business != nil {
		business.UserID = user.ID
		if err := s.userRepo.CreateBusinessProfile(tx, business); err != nil {
			return nil, handleUserError(err)
		}
		user.BusinessProfile = business
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleUserError(err)
	}

	s.metrics.UserRegistered(string(user.UserType))
	logger.CtxInfo(ctx, "User registered", "user_id", user.ID, "user_type", user.UserType)

	return s.authResponse(user)
}

func (s *authService) buildApplicantProfile(req *dto.RegisterRequest) (*models.ApplicantProfile, error) {
	country := models.NormalizeCountry(req.Country)
	if !validator.IsCountryCode(country) {
		return nil, apperrors.ValidationError(map[string]string{"country": "Must be a 2-letter ISO country code (e.g. KR)"})
	}
	if strings.TrimSpace(req.City) == "" {
		return nil, apperrors.ValidationError(map[string]string{"city": "This field is required"})
	}

	birthday, err := dto.ParseDate(&req.Birthday)
	if err != nil || birthday == nil {
		return nil, apperrors.ValidationError(map[string]string{"birthday": "Must be a date in yyyy-MM-dd format"})
	}
	if time.Time(*birthday).After(s.now()) {
		return nil, apperrors.ValidationError(map[string]string{"birthday": "Must not be in the future"})
	}

	languages := req.Languages
	if languages == nil {
		languages = []string{}
	}
	languagesJSON, err := json.Marshal(languages)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &models.ApplicantProfile{
		Country:     country,
		City:        strings.TrimSpace(req.City),
		Birthday:    birthday,
		Phone:       req.Phone,
		Address:     req.Address,
		Timezone:    req.Timezone,
		Languages:   datatypes.JSON(languagesJSON),
		Gender:      req.Gender,
		Nationality: req.Nationality,
		StageName:   req.StageName,
		Bio:         req.Bio,
	}, nil
}

func buildBusinessProfile(req *dto.RegisterRequest) (*models.BusinessProfile, error) {
	country := models.NormalizeCountry(req.BusinessCountry)
	if !validator.IsCountryCode(country) {
		return nil, apperrors.ValidationError(map[string]string{"businessCountry": "Must be a 2-letter ISO country code (e.g. KR)"})
	}

	missing := map[string]string{}
	if strings.TrimSpace(req.CompanyName) == "" {
		missing["companyName"] = "This field is required"
	}
	if strings.TrimSpace(req.BusinessCity) == "" {
		missing["businessCity"] = "This field is required"
	}
	if strings.TrimSpace(req.BusinessRegistrationNumber) == "" {
		missing["businessRegistrationNumber"] = "This field is required"
	}
	if len(missing) > 0 {
		return nil, apperrors.ValidationError(missing)
	}

	return &models.BusinessProfile{
		CompanyName:                strings.TrimSpace(req.CompanyName),
		Country:                    country,
		City:                       strings.TrimSpace(req.BusinessCity),
		Address:                    req.BusinessAddress,
		BusinessRegistrationNumber: strings.TrimSpace(req.BusinessRegistrationNumber),
		BusinessLicenseDocumentURL: req.BusinessLicenseDocumentURL,
		TaxID:                      req.TaxID,
		Website:                    req.Website,
		ContactEmail:               req.ContactEmail,
		ContactPhone:               req.ContactPhone,
		VerificationStatus:         models.VerificationPending,
	}, nil
}

// Login возвращает одну и ту же ошибку для всех неудачных случаев
func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if user.PasswordHash == nil || !auth.CheckPasswordHash(req.Password, *user.PasswordHash) {
		logger.CtxWarn(ctx, "Failed login attempt", "user_id", user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

func (s *authService) SocialLogin(ctx context.Context, db *gorm.DB, req *dto.SocialLoginRequest) (*dto.AuthResponse, error) {
	provider := models.AuthProvider(strings.ToUpper(strings.TrimSpace(req.Provider)))
	if !provider.Valid() || provider == models.ProviderLocal {
		return nil, apperrors.ErrUnsupportedProvider
	}

	profile, err := s.social.FetchProfile(ctx, provider, req.AccessToken)
	if err != nil {
		s.metrics.SocialLogin(string(provider), false)
		if errors.Is(err, social.ErrUnsupportedProvider) {
			return nil, apperrors.ErrUnsupportedProvider
		}
		logger.CtxWarn(ctx, "Social profile fetch failed", "provider", provider, "error", err)
		return nil, apperrors.ErrSocialLoginFailed.WithError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	user, err := s.resolveSocialUser(tx, profile, req.UserType)
	if err != nil {
		s.metrics.SocialLogin(string(provider), false)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, handleUserError(err)
	}

	s.metrics.SocialLogin(string(provider), true)
	return s.authResponse(user)
}

// resolveSocialUser: сначала по (provider, providerId), затем по email
// (провайдер привязывается к существующему аккаунту), иначе новый пользователь.
func (s *authService) resolveSocialUser(tx *gorm.DB, profile *social.Profile, userType models.UserType) (*models.User, error) {
	user, err := s.userRepo.FindByProvider(tx, profile.Provider, profile.ProviderID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, handleUserError(err)
	}

	if profile.Email == "" {
		return nil, apperrors.ErrSocialEmailMissing
	}

	user, err = s.userRepo.FindByEmail(tx, profile.Email)
	switch {
	case err == nil:
		if err := s.userRepo.LinkProvider(tx, user.ID, profile.Provider, profile.ProviderID); err != nil {
			return nil, handleUserError(err)
		}
		providerID := profile.ProviderID
		user.Provider = profile.Provider
		user.ProviderID = &providerID
		return user, nil
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, handleUserError(err)
	}

	if userType == "" {
		userType = models.UserTypeApplicant
	}

	hash, err := auth.UnusablePasswordHash()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	name := profile.Name
	if name == "" {
		name = strings.SplitN(profile.Email, "@", 2)[0]
	}
	providerID := profile.ProviderID
	user = &models.User{
		Email:           profile.Email,
		PasswordHash:    &hash,
		Name:            name,
		UserType:        userType,
		ProfileImageURL: profile.ProfileImageURL,
		Provider:        profile.Provider,
		ProviderID:      &providerID,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		return nil, handleUserError(err)
	}

	// Пустой профиль роли, пользователь заполнит его позже
	switch userType {
	case models.UserTypeBusiness:
		bp := &models.BusinessProfile{UserID: user.ID, VerificationStatus: models.VerificationPending}
		if err := s.userRepo.CreateBusinessProfile(tx, bp); err != nil {
			return nil, handleUserError(err)
		}
		user.BusinessProfile = bp
	default:
		ap := &models.ApplicantProfile{UserID: user.ID, Languages: datatypes.JSON("[]")}
		if err := s.userRepo.CreateApplicantProfile(tx, ap); err != nil {
			return nil, handleUserError(err)
		}
		user.ApplicantProfile = ap
	}

	return user, nil
}

func (s *authService) Me(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, handleUserError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *authService) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewAuthResponse(user, token), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func handleUserError(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	if errors.Is(err, repositories.ErrUserAlreadyExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrEmailAlreadyExists
	}
	return apperrors.InternalError(err)
}
