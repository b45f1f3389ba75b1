package models

// Permission constants
const (
	// Wallet permissions
	PermissionWalletRead  = "wallet:read"
	PermissionWalletWrite = "wallet:write"

	// Operation permissions (deposit/withdrawal requests)
	PermissionOperationCreate = "operation:create"
	PermissionOperationRead   = "operation:read"

	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// User permissions
	PermissionChangePassword = "user:change-password"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionWalletRead,
			PermissionWalletWrite,
			PermissionOperationCreate,
			PermissionOperationRead,
			PermissionChangePassword,
		}
	case "user":
		return []string{
			PermissionWalletRead,
			PermissionOperationCreate,
			PermissionOperationRead,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
