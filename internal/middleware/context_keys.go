package middleware

import "context"

// usernameKey holds the authenticated user's username (the JWT subject).
const usernameKey = contextKey("username")

// rolesKey holds the authenticated user's roles.
const rolesKey = contextKey("roles")

// GetUsernameFromCtx retrieves the authenticated username from the context.
// It returns the username and a boolean indicating if it was found.
func GetUsernameFromCtx(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// GetRolesFromCtx retrieves the authenticated user's roles from the context.
func GetRolesFromCtx(ctx context.Context) []string {
	roles, _ := ctx.Value(rolesKey).([]string)
	return roles
}
