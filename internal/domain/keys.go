package domain

type CtxKey string

const (
	KeyAdminEmail CtxKey = "AdminEmail"
	KeyAdminRole  CtxKey = "AdminRole"
)
