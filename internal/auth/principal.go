package auth

type Principal struct {
	UserID string
	Claims Claims
}
