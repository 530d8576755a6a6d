package services

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type fakeHistoryRepo struct {
	latestJoNumber string
	existing       map[string]bool
	latestDate     *time.Time
	latestOther    *entities.EquipmentHistory
	history        entities.EquipmentHistory
	findErr        error

	created    []entities.EquipmentHistory
	createErrs []error
	updates    map[string]interface{}
	nextID     uint64
}

func (f *fakeHistoryRepo) GetHistories(ctx context.Context, equipmentID uint64, filter types.Filter) ([]dto.EquipmentHistoryDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeHistoryRepo) FindHistory(ctx context.Context, id uint64) (entities.EquipmentHistory, error) {
	if f.findErr != nil {
		return entities.EquipmentHistory{}, f.findErr
	}
	return f.history, nil
}

func (f *fakeHistoryRepo) LatestJoNumber(ctx context.Context, prefix string) (string, error) {
	return f.latestJoNumber, nil
}

func (f *fakeHistoryRepo) JoNumberExists(ctx context.Context, joNumber string) (bool, error) {
	return f.existing[joNumber], nil
}

func (f *fakeHistoryRepo) LatestHistoryDate(ctx context.Context, equipmentID uint64) (*time.Time, error) {
	return f.latestDate, nil
}

func (f *fakeHistoryRepo) LatestHistoryExcept(ctx context.Context, equipmentID, exceptID uint64) (*entities.EquipmentHistory, error) {
	return f.latestOther, nil
}

func (f *fakeHistoryRepo) CreateHistory(ctx context.Context, q repositories.Querier, h entities.EquipmentHistory) (uint64, error) {
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return 0, err
		}
	}
	f.nextID++
	h.ID = f.nextID
	f.created = append(f.created, h)
	return h.ID, nil
}

func (f *fakeHistoryRepo) UpdateHistory(ctx context.Context, q repositories.Querier, id uint64, updates map[string]interface{}) error {
	f.updates = updates
	return nil
}

type statusUpdate struct {
	equipmentID uint64
	status      string
	condition   string
}

type fakeEquipmentRepo struct {
	equipment entities.Equipment
	detail    dto.EquipmentDTO
	findErr   error
	byOffice  []entities.Equipment

	statusUpdates []statusUpdate
	qrToken       string
	imagePath     string
	updates       map[string]interface{}
}

func (f *fakeEquipmentRepo) GetEquipments(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.EquipmentDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64, scope authz.Scope) (entities.Equipment, error) {
	if f.findErr != nil {
		return entities.Equipment{}, f.findErr
	}
	if scope.OfficeID != nil && f.equipment.OfficeID != *scope.OfficeID {
		return entities.Equipment{}, apperrors.ErrNotFound
	}
	return f.equipment, nil
}

func (f *fakeEquipmentRepo) FindEquipmentDetail(ctx context.Context, id uint64, scope authz.Scope) (dto.EquipmentDTO, error) {
	if f.findErr != nil {
		return dto.EquipmentDTO{}, f.findErr
	}
	if scope.OfficeID != nil && f.equipment.OfficeID != *scope.OfficeID {
		return dto.EquipmentDTO{}, apperrors.ErrNotFound
	}
	return f.detail, nil
}

func (f *fakeEquipmentRepo) CreateEquipment(ctx context.Context, e entities.Equipment) (uint64, error) {
	return 1, nil
}

func (f *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, updates map[string]interface{}) error {
	f.updates = updates
	return nil
}

func (f *fakeEquipmentRepo) UpdateStatus(ctx context.Context, q repositories.Querier, id uint64, status, condition string) error {
	f.statusUpdates = append(f.statusUpdates, statusUpdate{id, status, condition})
	return nil
}

func (f *fakeEquipmentRepo) SetQRCode(ctx context.Context, id uint64, token string) error {
	f.qrToken = token
	f.equipment.QRCode = &token
	return nil
}

func (f *fakeEquipmentRepo) SetQRImagePath(ctx context.Context, id uint64, path string) error {
	f.imagePath = path
	f.equipment.QRCodeImagePath = &path
	return nil
}

func (f *fakeEquipmentRepo) DeleteEquipment(ctx context.Context, id uint64) error { return nil }

func (f *fakeEquipmentRepo) GetEquipmentsByIDs(ctx context.Context, ids []uint64, scope authz.Scope) ([]entities.Equipment, error) {
	var out []entities.Equipment
	for _, id := range ids {
		e := f.equipment
		e.ID = id
		if scope.OfficeID == nil || e.OfficeID == *scope.OfficeID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEquipmentRepo) GetEquipmentsByOffice(ctx context.Context, officeID uint64) ([]entities.Equipment, error) {
	return f.byOffice, nil
}

type fakeTxManager struct {
	runs int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(q repositories.Querier) error) error {
	f.runs++
	return fn(nil)
}

type fakeActivity struct {
	actions []string
}

func (f *fakeActivity) GetActivities(ctx context.Context, filter types.Filter) ([]dto.ActivityDTO, uint64, error) {
	return nil, 0, nil
}

func (f *fakeActivity) Log(ctx context.Context, userID *uint64, category, action, description string, metadata interface{}) {
	f.actions = append(f.actions, action)
}

type fakeFileStorage struct {
	files map[string][]byte
	saves int
}

func newFakeFileStorage() *fakeFileStorage {
	return &fakeFileStorage{files: map[string][]byte{}}
}

func (f *fakeFileStorage) SaveBytes(data []byte, originalFileName string, prefix string) (string, error) {
	f.saves++
	path := prefix + "/" + originalFileName
	f.files[path] = data
	return path, nil
}

func (f *fakeFileStorage) Exists(filePath string) bool {
	_, ok := f.files[filePath]
	return ok
}

func (f *fakeFileStorage) Delete(filePath string) error {
	delete(f.files, filePath)
	return nil
}

type fakeUserRepo struct {
	users     map[uint64]entities.User
	roleNames map[uint64][]string
	list      []dto.UserDTO
	holders   []uint64

	listScope     authz.Scope
	replacedRoles map[uint64]uint64
	updates       map[string]interface{}
	overrides     []entities.PermissionOverride
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:         map[uint64]entities.User{},
		roleNames:     map[uint64][]string{},
		replacedRoles: map[uint64]uint64{},
	}
}

func (f *fakeUserRepo) GetUsers(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.UserDTO, uint64, error) {
	f.listScope = scope
	return f.list, uint64(len(f.list)), nil
}

func (f *fakeUserRepo) FindUser(ctx context.Context, id uint64) (entities.User, error) {
	u, ok := f.users[id]
	if !ok {
		return entities.User{}, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (entities.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return entities.User{}, apperrors.ErrNotFound
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, u entities.User, roleID uint64) (uint64, error) {
	id := uint64(len(f.users) + 1)
	f.users[id] = u
	return id, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, id uint64, updates map[string]interface{}) error {
	f.updates = updates
	return nil
}

func (f *fakeUserRepo) GetUserRoleNames(ctx context.Context, userID uint64) ([]string, error) {
	return f.roleNames[userID], nil
}

func (f *fakeUserRepo) ReplaceUserRole(ctx context.Context, userID, roleID uint64) error {
	f.replacedRoles[userID] = roleID
	return nil
}

func (f *fakeUserRepo) GetUserIDsByRole(ctx context.Context, roleID uint64) ([]uint64, error) {
	return f.holders, nil
}

func (f *fakeUserRepo) GetOverridesForUser(ctx context.Context, userID uint64) ([]entities.PermissionOverride, error) {
	return f.overrides, nil
}

type fakeRoleRepo struct {
	roles        map[uint64]entities.Role
	replacedWith []uint64
}

func (f *fakeRoleRepo) GetRoles(ctx context.Context, includeSuperAdmin bool) ([]entities.Role, error) {
	var out []entities.Role
	for _, r := range f.roles {
		if r.Name == authz.RoleSuperAdmin && !includeSuperAdmin {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRoleRepo) FindRole(ctx context.Context, id uint64) (entities.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return entities.Role{}, apperrors.ErrNotFound
	}
	return r, nil
}

func (f *fakeRoleRepo) FindRoleByName(ctx context.Context, name string) (entities.Role, error) {
	for _, r := range f.roles {
		if r.Name == name {
			return r, nil
		}
	}
	return entities.Role{}, apperrors.ErrNotFound
}

func (f *fakeRoleRepo) CreateRole(ctx context.Context, role entities.Role) (uint64, error) {
	return 1, nil
}

func (f *fakeRoleRepo) UpdateRole(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return nil
}

func (f *fakeRoleRepo) GetRolePermissionNames(ctx context.Context, roleID uint64) ([]string, error) {
	return nil, nil
}

func (f *fakeRoleRepo) ReplaceRolePermissions(ctx context.Context, roleID uint64, permissionIDs []uint64) error {
	f.replacedWith = permissionIDs
	return nil
}

type overrideWrite struct {
	userID       uint64
	permissionID uint64
	isActive     bool
}

type fakePermissionRepo struct {
	upserts []overrideWrite
	deletes []overrideWrite
}

func (f *fakePermissionRepo) GetPermissions(ctx context.Context) ([]entities.Permission, error) {
	return nil, nil
}

func (f *fakePermissionRepo) GetEffectivePermissionNames(ctx context.Context, userID uint64) ([]string, error) {
	return nil, nil
}

func (f *fakePermissionRepo) UpsertOverride(ctx context.Context, userID, permissionID uint64, isActive bool) error {
	f.upserts = append(f.upserts, overrideWrite{userID, permissionID, isActive})
	return nil
}

func (f *fakePermissionRepo) DeleteOverride(ctx context.Context, userID, permissionID uint64) error {
	f.deletes = append(f.deletes, overrideWrite{userID: userID, permissionID: permissionID})
	return nil
}

type fakeOfficeRepo struct {
	offices   map[uint64]entities.Office
	listScope authz.Scope
}

func (f *fakeOfficeRepo) GetOffices(ctx context.Context, filter types.Filter, scope authz.Scope) ([]dto.OfficeDTO, uint64, error) {
	f.listScope = scope
	return nil, 0, nil
}

func (f *fakeOfficeRepo) FindOffice(ctx context.Context, id uint64) (entities.Office, error) {
	o, ok := f.offices[id]
	if !ok {
		return entities.Office{}, apperrors.ErrNotFound
	}
	return o, nil
}

func (f *fakeOfficeRepo) CreateOffice(ctx context.Context, office entities.Office) (uint64, error) {
	return 1, nil
}

func (f *fakeOfficeRepo) UpdateOffice(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return nil
}

func (f *fakeOfficeRepo) DeleteOffice(ctx context.Context, id uint64) error { return nil }

func (f *fakeOfficeRepo) CountReferences(ctx context.Context, id uint64) (uint64, error) {
	return 0, nil
}

func joConflict() error {
	return &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: joUniqueConstraint}
}

func staffActor(userID, officeID uint64) *authz.Actor {
	return &authz.Actor{
		User:  &entities.User{ID: userID, OfficeID: officeID},
		Roles: []string{authz.RoleStaff},
		Permissions: map[string]bool{
			authz.EquipmentView: true,
			authz.HistoryCreate: true,
		},
	}
}

func adminActor(userID uint64) *authz.Actor {
	return &authz.Actor{
		User:        &entities.User{ID: userID, OfficeID: 1, IsAdmin: true},
		Roles:       []string{authz.RoleAdmin},
		Permissions: map[string]bool{},
	}
}
