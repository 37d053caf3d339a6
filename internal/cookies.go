package internal

const (
	COOKIE_ACCESS_TOKEN_NAME = "edureg_access_token"
)
