package service

import "github.com/google/uuid"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Identity is the resolved requester: who they are and what role their
// token carries. The auth middleware builds it; services never inspect
// credentials themselves.
type Identity struct {
	UserID uuid.UUID
	Role   string
}
