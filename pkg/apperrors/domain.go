package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные ошибки предметной области:
пользователи, прослушивания, заявки, офферы и видео.
*/

// ErrNotFound оборачивает ошибку репозитория (обычно gorm.ErrRecordNotFound) в 404
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - 409 для нарушений уникальности
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - невалидная операция (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - недопустимый переход статуса (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// ErrNotOwner - ресурс принадлежит другому пользователю
func ErrNotOwner(domain string) *AppError {
	return New(CodeForbidden, domain, "You are not the owner of this resource", http.StatusForbidden)
}

// ErrExternalService - сбой внешнего провайдера
func ErrExternalService(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusBadGateway)
}

// --- Auth ---

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrInvalidCredentials - одно сообщение для неизвестного email и неверного пароля
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrMissingToken = New(
	CodeUnauthorized,
	"auth",
	"Authorization header missing or invalid",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrPasswordTooLong = New(
	CodeValidationFailed,
	"validation",
	"Password must be at most 72 bytes long",
	http.StatusBadRequest,
).WithDetails(map[string]string{"password": "Must be at most 72 bytes (multibyte characters count as several)"})

var ErrSocialLoginFailed = New(
	CodeUnauthorized,
	"auth",
	"Social login failed",
	http.StatusUnauthorized,
)

var ErrUnsupportedProvider = New(
	CodeBadRequest,
	"auth",
	"Unsupported social login provider",
	http.StatusBadRequest,
)

var ErrSocialEmailMissing = New(
	CodeBadRequest,
	"auth",
	"Social account has no email address",
	http.StatusBadRequest,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// --- Audition ---

var ErrAuditionNotFound = New(
	CodeNotFound,
	"audition",
	"Audition not found",
	http.StatusNotFound,
)

var ErrInvalidDateRange = New(
	CodeValidationFailed,
	"audition",
	"End date must not be before start date",
	http.StatusBadRequest,
)

// --- Application ---

var ErrApplicationNotFound = New(
	CodeNotFound,
	"application",
	"Application not found",
	http.StatusNotFound,
)

var ErrAlreadyApplied = New(
	CodeConflict,
	"application",
	"Already applied to this audition",
	http.StatusConflict,
)

var ErrApplicationFilterRequired = New(
	CodeBadRequest,
	"application",
	"Either auditionId or userId is required",
	http.StatusBadRequest,
)

var ErrRoundOrder = New(
	CodeInvalidOperation,
	"application",
	"Previous screening round has not been passed",
	http.StatusBadRequest,
)

// --- Offer ---

var ErrOfferNotFound = New(
	CodeNotFound,
	"offer",
	"Offer not found",
	http.StatusNotFound,
)

var ErrOfferExists = New(
	CodeConflict,
	"offer",
	"An offer for this video already exists",
	http.StatusConflict,
)

var ErrOfferNotRecipient = New(
	CodeForbidden,
	"offer",
	"Only the offer recipient can perform this action",
	http.StatusForbidden,
)

var ErrOfferNotPending = New(
	CodeInvalidStatus,
	"offer",
	"Offer has already been responded to",
	http.StatusBadRequest,
)

// --- Video ---

var ErrVideoNotFound = New(
	CodeNotFound,
	"video",
	"Video not found",
	http.StatusNotFound,
)

var ErrInvalidVideoURL = New(
	CodeValidationFailed,
	"video",
	"Unsupported video URL: only YouTube links are accepted",
	http.StatusBadRequest,
)
