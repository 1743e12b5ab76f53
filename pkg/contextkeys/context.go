package contextkeys

// Key is the type for values stored in request contexts.
type Key string

const (
	// DBContextKey holds the *gorm.DB (pool or transaction) for the request.
	DBContextKey Key = "db"

	// UserIDKey holds the authenticated applicant id.
	UserIDKey Key = "userID"

	// AdminIDKey holds the authenticated admin id.
	AdminIDKey Key = "adminID"

	// RoleKey holds the authenticated role claim.
	RoleKey Key = "role"
)
