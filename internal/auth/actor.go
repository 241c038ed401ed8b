package auth

import "audition_backend/internal/models"

// Actor - аутентифицированный пользователь, от имени которого выполняется операция
type Actor struct {
	ID   string
	Type models.UserType
}

func (a Actor) IsApplicant() bool { return a.Type == models.UserTypeApplicant }

func (a Actor) IsBusiness() bool { return a.Type == models.UserTypeBusiness }

// ActorFromClaims собирает Actor из проверенного токена
func ActorFromClaims(c *Claims) Actor {
	return Actor{ID: c.UserID, Type: c.UserType}
}
