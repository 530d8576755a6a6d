package seeders

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"inventory-system/internal/authz"
)

type RolesSeeder struct{}

func (s *RolesSeeder) Name() string { return "roles" }

// rolePermissions maps each baseline role to its default grants. The
// super-admin role holds everything and is therefore derived from authz.All
// instead of being listed here.
var rolePermissions = map[string][]string{
	authz.RoleAdmin: {
		authz.EquipmentView, authz.EquipmentCreate, authz.EquipmentEdit,
		authz.EquipmentDelete, authz.EquipmentExport,
		authz.HistoryView, authz.HistoryCreate, authz.HistoryEdit,
		authz.QRView, authz.QRResolve, authz.QRPrint,
		authz.UsersView, authz.UsersCreate, authz.UsersEdit,
		authz.RolesView, authz.PermissionsView, authz.PermissionsManage,
		authz.OfficesView, authz.OfficesManage,
		authz.CampusesView, authz.CampusesManage,
		authz.ActivitiesView,
	},
	authz.RoleStaff: {
		authz.EquipmentView, authz.EquipmentCreate, authz.EquipmentEdit,
		authz.HistoryView, authz.HistoryCreate,
		authz.QRView, authz.QRResolve,
		authz.OfficesView,
	},
	authz.RoleTechnician: {
		authz.EquipmentView,
		authz.HistoryView, authz.HistoryCreate, authz.HistoryEdit,
		authz.QRView, authz.QRResolve, authz.QRPrint,
		authz.OfficesView,
	},
}

var roleDisplayNames = map[string]string{
	authz.RoleSuperAdmin: "Super Administrator",
	authz.RoleAdmin:      "Administrator",
	authz.RoleStaff:      "Office Staff",
	authz.RoleTechnician: "Technician",
}

func (s *RolesSeeder) Seed(ctx context.Context, pool *pgxpool.Pool) error {
	superAdminGrants := make([]string, 0, len(authz.All))
	for _, p := range authz.All {
		superAdminGrants = append(superAdminGrants, p.Name)
	}

	grants := map[string][]string{authz.RoleSuperAdmin: superAdminGrants}
	for role, perms := range rolePermissions {
		grants[role] = perms
	}

	for role, perms := range grants {
		var roleID uint64
		err := pool.QueryRow(ctx,
			`INSERT INTO roles (name, display_name)
			 VALUES ($1, $2)
			 ON CONFLICT (name) DO UPDATE SET display_name = EXCLUDED.display_name
			 RETURNING id`,
			role, roleDisplayNames[role]).Scan(&roleID)
		if err != nil {
			return err
		}

		for _, perm := range perms {
			_, err := pool.Exec(ctx,
				`INSERT INTO role_permissions (role_id, permission_id)
				 SELECT $1, id FROM permissions WHERE name = $2
				 ON CONFLICT DO NOTHING`,
				roleID, perm)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
