package models

import "github.com/golang-jwt/jwt/v5"

// UserRole identifies what a caller may do with the planner.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RolePlanner    UserRole = "PLANNER"
	RoleTeacher    UserRole = "TEACHER"
)

// PlannerRoles may generate and export timetables.
var PlannerRoles = []UserRole{RoleSuperAdmin, RoleAdmin, RolePlanner}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email,omitempty"`
	FullName string   `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}
