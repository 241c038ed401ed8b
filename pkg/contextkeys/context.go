package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ *gorm.DB в context запроса (например, транзакция из тестов)
const DBContextKey = contextKey("db")

// Ключи gin.Context
const (
	DBKey       = "db"
	UserIDKey   = "userID"
	UserTypeKey = "userType"
	ActorKey    = "actor"
)
