package models

// Permission constants
const (
	// Fee table and quotes
	PermissionFeesRead = "fees:read"

	// Business payment settings
	PermissionSettingsRead  = "settings:read"
	PermissionSettingsWrite = "settings:write"

	// Booking payments
	PermissionPaymentRead  = "payment:read"
	PermissionPaymentWrite = "payment:write"
)

// Roles within a business
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleOwner:
		return []string{
			PermissionFeesRead,
			PermissionSettingsRead,
			PermissionSettingsWrite,
			PermissionPaymentRead,
			PermissionPaymentWrite,
		}
	case RoleStaff:
		return []string{
			PermissionFeesRead,
			PermissionSettingsRead,
			PermissionPaymentRead,
			PermissionPaymentWrite,
		}
	default:
		return []string{PermissionFeesRead}
	}
}
