package auth

import (
	"audition_backend/internal/models"
	"audition_backend/pkg/apperrors"
)

// Resource - защищаемая сущность
type Resource string

// Action - операция над сущностью
type Action string

const (
	ResourceProfile     Resource = "profile"
	ResourceAudition    Resource = "audition"
	ResourceApplication Resource = "application"
	ResourceScreening   Resource = "screening"
	ResourceOffer       Resource = "offer"
	ResourceVideo       Resource = "video"
)

const (
	ActionRead    Action = "read"
	ActionList    Action = "list"
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionRespond Action = "respond"
	ActionLike    Action = "like"
)

// Scope - ограничение на уровне строки, которое проверяет сервис
type Scope string

const (
	// ScopeAny - роль может выполнять действие над любой записью
	ScopeAny Scope = "any"
	// ScopeOwn - только над записями, где пользователь владелец или участник
	ScopeOwn Scope = "own"
)

type rule struct {
	Resource Resource
	Action   Action
	Scope    Scope
}

// Policy - таблица роль × ресурс × действие. Публичные маршруты
// (списки прослушиваний и видео) в таблицу не входят и не требуют токена.
var Policy = map[models.UserType][]rule{
	models.UserTypeApplicant: {
		{ResourceProfile, ActionRead, ScopeOwn},

		{ResourceApplication, ActionCreate, ScopeOwn},
		{ResourceApplication, ActionRead, ScopeAny},
		{ResourceApplication, ActionList, ScopeAny},
		{ResourceApplication, ActionUpdate, ScopeOwn},
		{ResourceApplication, ActionDelete, ScopeOwn},
		{ResourceScreening, ActionList, ScopeAny},

		{ResourceOffer, ActionRead, ScopeOwn},
		{ResourceOffer, ActionList, ScopeOwn},
		{ResourceOffer, ActionRespond, ScopeOwn},

		{ResourceVideo, ActionCreate, ScopeOwn},
		{ResourceVideo, ActionList, ScopeOwn},
		{ResourceVideo, ActionUpdate, ScopeOwn},
		{ResourceVideo, ActionDelete, ScopeOwn},
		{ResourceVideo, ActionLike, ScopeAny},
	},
	models.UserTypeBusiness: {
		{ResourceProfile, ActionRead, ScopeOwn},

		{ResourceAudition, ActionCreate, ScopeOwn},
		{ResourceAudition, ActionList, ScopeOwn},
		{ResourceAudition, ActionUpdate, ScopeOwn},
		{ResourceAudition, ActionDelete, ScopeOwn},

		{ResourceApplication, ActionRead, ScopeAny},
		{ResourceApplication, ActionList, ScopeAny},
		{ResourceApplication, ActionUpdate, ScopeOwn},
		{ResourceScreening, ActionUpdate, ScopeOwn},
		{ResourceScreening, ActionList, ScopeAny},

		{ResourceOffer, ActionCreate, ScopeOwn},
		{ResourceOffer, ActionRead, ScopeOwn},
		{ResourceOffer, ActionList, ScopeOwn},

		{ResourceVideo, ActionList, ScopeOwn},
		{ResourceVideo, ActionLike, ScopeAny},
	},
}

// Allowed сообщает, может ли роль выполнить действие, и в каком объеме
func Allowed(role models.UserType, resource Resource, action Action) (Scope, bool) {
	for _, r := range Policy[role] {
		if r.Resource == resource && r.Action == action {
			return r.Scope, true
		}
	}
	return "", false
}

// Can - укороченная форма Allowed
func Can(role models.UserType, resource Resource, action Action) bool {
	_, ok := Allowed(role, resource, action)
	return ok
}

// IsOwner - проверка строки для ScopeOwn
func IsOwner(actorID, ownerID string) bool {
	return actorID != "" && actorID == ownerID
}

// RequireOwner возвращает 403 домена, если актор не владелец записи
func RequireOwner(actor Actor, ownerID, domain string) error {
	if !IsOwner(actor.ID, ownerID) {
		return apperrors.ErrNotOwner(domain)
	}
	return nil
}
