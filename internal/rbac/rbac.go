package rbac

// Role constants
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// Permission constants
const (
	PermManageInventory = "manage_inventory"
	PermRegisterDevice  = "register_device"
	PermViewDevices     = "view_devices"
	PermManageCampaigns = "manage_campaigns"
	PermViewCampaigns   = "view_campaigns"
	PermCheckConflicts  = "check_conflicts"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermManageInventory, PermRegisterDevice, PermViewDevices,
		PermManageCampaigns, PermViewCampaigns, PermCheckConflicts,
	},
	RoleStaff: {
		PermRegisterDevice, PermViewDevices, PermViewCampaigns, PermCheckConflicts,
		// Staff CANNOT: PermManageInventory, PermManageCampaigns
	},
}

func IsValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
