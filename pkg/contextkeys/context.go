package contextkeys

// contextKey is a private type so keys never collide with other packages.
type contextKey string

// DBContextKey stores the *gorm.DB (pool or transaction) for the request.
const DBContextKey = contextKey("db")

// IdentityContextKey stores the authenticated auth.Identity for the request.
const IdentityContextKey = contextKey("identity")
