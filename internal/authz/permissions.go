package authz

// Role machine keys. RoleSuperAdmin is never exposed in user-facing role
// lists; RoleAdmin is assignable only by an admin actor.
const (
	RoleSuperAdmin = "super-admin"
	RoleAdmin      = "admin"
	RoleStaff      = "staff"
	RoleTechnician = "technician"
)

// Permission machine keys, dot-namespaced.
const (
	EquipmentView   = "equipment.view"
	EquipmentCreate = "equipment.create"
	EquipmentEdit   = "equipment.edit"
	EquipmentDelete = "equipment.delete"
	EquipmentExport = "equipment.export"

	HistoryView   = "history.view"
	HistoryCreate = "history.create"
	HistoryEdit   = "history.edit"

	QRView    = "qr.view"
	QRResolve = "qr.resolve"
	QRPrint   = "qr.print"

	UsersView   = "users.view"
	UsersCreate = "users.create"
	UsersEdit   = "users.edit"
	UsersDelete = "users.delete"

	RolesView   = "roles.view"
	RolesManage = "roles.manage"

	PermissionsView   = "permissions.view"
	PermissionsManage = "permissions.manage"

	OfficesView   = "offices.view"
	OfficesManage = "offices.manage"

	CampusesView   = "campuses.view"
	CampusesManage = "campuses.manage"

	ActivitiesView = "activities.view"
)

// All lists every permission with its UI group, used by the seeder.
var All = []struct {
	Name        string
	DisplayName string
	Group       string
}{
	{EquipmentView, "View equipment", "Equipment"},
	{EquipmentCreate, "Create equipment", "Equipment"},
	{EquipmentEdit, "Edit equipment", "Equipment"},
	{EquipmentDelete, "Delete equipment", "Equipment"},
	{EquipmentExport, "Export equipment", "Equipment"},
	{HistoryView, "View equipment history", "Equipment History"},
	{HistoryCreate, "Create equipment history", "Equipment History"},
	{HistoryEdit, "Edit equipment history", "Equipment History"},
	{QRView, "View QR codes", "QR Codes"},
	{QRResolve, "Resolve QR scans", "QR Codes"},
	{QRPrint, "Batch print QR codes", "QR Codes"},
	{UsersView, "View accounts", "Accounts"},
	{UsersCreate, "Create accounts", "Accounts"},
	{UsersEdit, "Edit accounts", "Accounts"},
	{UsersDelete, "Delete accounts", "Accounts"},
	{RolesView, "View roles", "Roles & Permissions"},
	{RolesManage, "Manage roles", "Roles & Permissions"},
	{PermissionsView, "View permissions", "Roles & Permissions"},
	{PermissionsManage, "Manage permissions", "Roles & Permissions"},
	{OfficesView, "View offices", "Organization"},
	{OfficesManage, "Manage offices", "Organization"},
	{CampusesView, "View campuses", "Organization"},
	{CampusesManage, "Manage campuses", "Organization"},
	{ActivitiesView, "View activity log", "Activity Log"},
}
