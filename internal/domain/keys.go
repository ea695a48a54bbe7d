package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserPhone CtxKey = "Phone"
	KeyRequestID CtxKey = "RequestID"
)
