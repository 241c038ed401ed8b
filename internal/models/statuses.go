package models

type UserType string
type AuthProvider string
type VerificationStatus string
type AuditionStatus string
type AuditionCategory string
type ApplicationStatus string
type ScreeningResult string
type OfferStatus string
type VideoStatus string

const (
	UserTypeApplicant UserType = "APPLICANT"
	UserTypeBusiness  UserType = "BUSINESS"

	ProviderLocal    AuthProvider = "LOCAL"
	ProviderGoogle   AuthProvider = "GOOGLE"
	ProviderKakao    AuthProvider = "KAKAO"
	ProviderNaver    AuthProvider = "NAVER"
	ProviderFacebook AuthProvider = "FACEBOOK"

	VerificationPending  VerificationStatus = "PENDING"
	VerificationVerified VerificationStatus = "VERIFIED"
	VerificationRejected VerificationStatus = "REJECTED"

	AuditionStatusDraft          AuditionStatus = "DRAFT"
	AuditionStatusWriting        AuditionStatus = "WRITING"
	AuditionStatusWaitingOpening AuditionStatus = "WAITING_OPENING"
	AuditionStatusOngoing        AuditionStatus = "ONGOING"
	AuditionStatusUnderScreening AuditionStatus = "UNDER_SCREENING"
	AuditionStatusFinished       AuditionStatus = "FINISHED"

	CategorySinger     AuditionCategory = "SINGER"
	CategoryDancer     AuditionCategory = "DANCER"
	CategoryActor      AuditionCategory = "ACTOR"
	CategoryModel      AuditionCategory = "MODEL"
	CategoryInstrument AuditionCategory = "INSTRUMENT"

	ApplicationStatusWriting           ApplicationStatus = "WRITING"
	ApplicationStatusIncompletePayment ApplicationStatus = "INCOMPLETE_PAYMENT"
	ApplicationStatusCompleted         ApplicationStatus = "APPLICATION_COMPLETED"
	ApplicationStatusCancel            ApplicationStatus = "CANCEL"

	ResultPass    ScreeningResult = "PASS"
	ResultFail    ScreeningResult = "FAIL"
	ResultPending ScreeningResult = "PENDING"

	OfferStatusPending  OfferStatus = "PENDING"
	OfferStatusAccepted OfferStatus = "ACCEPTED"
	OfferStatusRejected OfferStatus = "REJECTED"
	OfferStatusExpired  OfferStatus = "EXPIRED"

	VideoStatusPublished VideoStatus = "PUBLISHED"
	VideoStatusPrivate   VideoStatus = "PRIVATE"
	VideoStatusDeleted   VideoStatus = "DELETED"
)

func (t UserType) Valid() bool {
	return t == UserTypeApplicant || t == UserTypeBusiness
}

func (p AuthProvider) Valid() bool {
	switch p {
	case ProviderLocal, ProviderGoogle, ProviderKakao, ProviderNaver, ProviderFacebook:
		return true
	}
	return false
}

func (s AuditionStatus) Valid() bool {
	switch s {
	case AuditionStatusDraft, AuditionStatusWriting, AuditionStatusWaitingOpening,
		AuditionStatusOngoing, AuditionStatusUnderScreening, AuditionStatusFinished:
		return true
	}
	return false
}

// PublicAuditionStatuses - статусы, видимые в публичных списках
var PublicAuditionStatuses = []AuditionStatus{
	AuditionStatusOngoing,
	AuditionStatusUnderScreening,
	AuditionStatusFinished,
}

func (c AuditionCategory) Valid() bool {
	switch c {
	case CategorySinger, CategoryDancer, CategoryActor, CategoryModel, CategoryInstrument:
		return true
	}
	return false
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusWriting, ApplicationStatusIncompletePayment,
		ApplicationStatusCompleted, ApplicationStatusCancel:
		return true
	}
	return false
}

// applicationTransitions - допустимые переходы статуса заявки
var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationStatusWriting:           {ApplicationStatusIncompletePayment, ApplicationStatusCompleted, ApplicationStatusCancel},
	ApplicationStatusIncompletePayment: {ApplicationStatusCompleted, ApplicationStatusCancel},
}

// CanTransitionTo сообщает, разрешен ли переход. Повтор того же статуса разрешен.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range applicationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (r ScreeningResult) Valid() bool {
	return r == ResultPass || r == ResultFail || r == ResultPending
}

func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusPending, OfferStatusAccepted, OfferStatusRejected, OfferStatusExpired:
		return true
	}
	return false
}

func (s VideoStatus) Valid() bool {
	return s == VideoStatusPublished || s == VideoStatusPrivate || s == VideoStatusDeleted
}
