package domain

// Role values disimpan di kolom users.role.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Audience values untuk announcements.
const (
	AudienceAll     = "all"
	AudienceVehicle = "vehicle"
	AudienceUsers   = "users"
)

// Post moderation status.
const (
	PostPending  = "pending"
	PostApproved = "approved"
	PostRejected = "rejected"
)

// RequestContext carries authenticated user info when available.
type RequestContext struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// IsAdmin reports whether the request belongs to an admin account.
func (rc RequestContext) IsAdmin() bool {
	return rc.Role == RoleAdmin
}
