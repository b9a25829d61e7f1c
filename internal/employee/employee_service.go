package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	employeeerrors "go-worktrack/internal/employee/errors"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/dateutil"
	"go-worktrack/internal/shared/storage"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	optionsCacheTTL          = time.Hour
	DefaultPageSize          = 10
)

func GetEmployeeOptionsKey() string {
	return EmployeeOptionsKeyPrefix + StatusActive
}

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]OptionResponse, error)
	GetByID(ctx context.Context, id int64) (EmployeeResponse, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id int64) error
	BulkDeleteNonAdmin(ctx context.Context) (int64, error)
	EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error)
	GetProfile(ctx context.Context, employeeID int64) (ProfileResponse, error)
	UpsertProfile(ctx context.Context, employeeID int64, req UpsertProfileRequest) (ProfileResponse, error)
	UpdateOwnEmergencyContact(ctx context.Context, actor contextutil.Actor, req EmergencyContactRequest) (ProfileResponse, error)
	Celebrations(ctx context.Context, days int) ([]CelebrationResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	store  storage.Store
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, store storage.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		store:  store,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	dob, err := dateutil.ParseOptional(req.DOB)
	if err != nil {
		s.logger.Warn("create employee invalid dob", zap.String("dob", req.DOB))
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Gender:       defaultString(req.Gender, "other"),
		DOB:          dob,
		Address:      req.Address,
		PhoneNo:      strings.TrimSpace(req.PhoneNo),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Status:       defaultString(req.Status, StatusActive),
		EmpType:      defaultString(req.EmpType, TypeEmployee),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.Int64("employee_id", empl.ID),
	)
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("get all employees requested", zap.String("q", filter.Query), zap.Int("page", filter.Page))
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}

	empls, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}
	return mapToListResponse(empls), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]OptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey()

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []OptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		opts, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]OptionResponse, len(opts))
		for i, o := range opts {
			resp[i] = OptionResponse{ID: o.ID, FullName: strings.TrimSpace(o.FirstName + " " + o.LastName)}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.Error(err))
		return nil, err
	}

	return v.([]OptionResponse), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested", zap.Int64("employee_id", id))
	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get employee by id failed", zap.Error(err))
		}
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested", zap.Int64("employee_id", id))

	dob, err := dateutil.ParseOptional(req.DOB)
	if err != nil {
		s.logger.Warn("update employee invalid dob", zap.String("dob", req.DOB))
		return EmployeeResponse{}, employeeerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Gender = defaultString(req.Gender, empl.Gender)
	empl.DOB = dob
	empl.Address = req.Address
	empl.PhoneNo = strings.TrimSpace(req.PhoneNo)
	empl.Email = strings.ToLower(strings.TrimSpace(req.Email))
	empl.Status = req.Status
	empl.EmpType = req.EmpType
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.PasswordHash = string(hash)
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("update employee success", zap.Int64("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete employee requested", zap.Int64("employee_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	tasks, err := qtx.CountTasks(ctx, id)
	if err != nil {
		s.logger.Error("delete employee count tasks failed", zap.Error(err))
		return err
	}
	if tasks > 0 {
		s.logger.Warn("delete employee refused, tasks assigned",
			zap.Int64("employee_id", id),
			zap.Int64("tasks", tasks),
		)
		return employeeerrors.ErrEmployeeHasTasks
	}

	held, err := qtx.CountActiveAllocations(ctx, id)
	if err != nil {
		s.logger.Error("delete employee count allocations failed", zap.Error(err))
		return err
	}
	if held > 0 {
		s.logger.Warn("delete employee refused, assets allocated",
			zap.Int64("employee_id", id),
			zap.Int64("allocations", held),
		)
		return employeeerrors.ErrEmployeeHoldsAssets
	}

	// expenses cascade with the employee; their invoices are removed after commit.
	invoices, err := qtx.FindInvoicePaths(ctx, id)
	if err != nil {
		s.logger.Error("delete employee list invoices failed", zap.Error(err))
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Warn("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.removeInvoices(ctx, invoices)
	s.invalidateOptions(ctx)
	s.logger.Info("delete employee success", zap.Int64("employee_id", id))
	return nil
}

func (s *service) BulkDeleteNonAdmin(ctx context.Context) (int64, error) {
	s.logger.Debug("bulk delete employees requested")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("bulk delete employees begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	n, invoices, err := s.repo.WithTx(tx).DeleteNonAdminWithoutTasks(ctx)
	if err != nil {
		s.logger.Error("bulk delete employees failed", zap.Error(err))
		return 0, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("bulk delete employees commit failed", zap.Error(err))
		return 0, err
	}

	s.removeInvoices(ctx, invoices)
	s.invalidateOptions(ctx)
	s.logger.Info("bulk delete employees success", zap.Int64("deleted", n))
	return n, nil
}

func (s *service) removeInvoices(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := s.store.Remove(ctx, p); err != nil && !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("remove orphaned invoice failed", zap.String("path", p), zap.Error(err))
		}
	}
}

func (s *service) EnsureAdmin(ctx context.Context, seed AdminSeed) (bool, error) {
	admins, err := s.repo.CountAdmins(ctx)
	if err != nil {
		s.logger.Error("ensure admin count failed", zap.Error(err))
		return false, err
	}
	if admins > 0 {
		return false, nil
	}

	_, err = s.Create(ctx, CreateEmployeeRequest{
		FirstName: seed.FirstName,
		LastName:  seed.LastName,
		PhoneNo:   seed.Phone,
		Email:     seed.Email,
		Password:  seed.Password,
		Status:    StatusActive,
		EmpType:   TypeAdmin,
	})
	if err != nil {
		return false, err
	}

	s.logger.Info("default admin account created", zap.String("email", seed.Email))
	return true, nil
}

func (s *service) GetProfile(ctx context.Context, employeeID int64) (ProfileResponse, error) {
	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	profile, err := s.repo.FindProfile(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get profile failed", zap.Int64("employee_id", employeeID), zap.Error(err))
			return ProfileResponse{}, err
		}
		// no profile row yet: an empty profile is still a valid view
		profile = &Profile{EmployeeID: employeeID}
	}

	return mapProfileResponse(*empl, *profile), nil
}

func (s *service) UpsertProfile(ctx context.Context, employeeID int64, req UpsertProfileRequest) (ProfileResponse, error) {
	s.logger.Debug("upsert profile requested", zap.Int64("employee_id", employeeID))

	doj, err := dateutil.ParseOptional(req.DateOfJoining)
	if err != nil {
		return ProfileResponse{}, employeeerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("upsert profile begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, employeeID)
	if err != nil {
		return ProfileResponse{}, mapRepositoryError(err)
	}

	flag := false
	if existing, err := qtx.FindProfile(ctx, employeeID); err == nil {
		flag = existing.EmergencyUpdatedByEmployee
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ProfileResponse{}, err
	}

	profile := &Profile{
		EmployeeID:                 employeeID,
		UAN:                        req.UAN,
		PAN:                        strings.ToUpper(req.PAN),
		Aadhaar:                    req.Aadhaar,
		BankName:                   req.BankName,
		Branch:                     req.Branch,
		AccountNo:                  req.AccountNo,
		IFSC:                       strings.ToUpper(req.IFSC),
		Designation:                req.Designation,
		EmergencyContactName:       req.EmergencyContactName,
		EmergencyContactNo:         req.EmergencyContactNo,
		EmergencyRelation:          req.EmergencyRelation,
		EmergencyUpdatedByEmployee: flag,
		ReportingManagerID:         req.ReportingManagerID,
		DateOfJoining:              doj,
		ProgrammingLanguages:       req.ProgrammingLanguages,
		Frameworks:                 req.Frameworks,
		UpdatedAt:                  s.now(),
	}
	if err := qtx.UpsertProfile(ctx, profile); err != nil {
		s.logger.Error("upsert profile persist failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("upsert profile commit failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	s.logger.Info("upsert profile success", zap.Int64("employee_id", employeeID))
	return mapProfileResponse(*empl, *profile), nil
}

func (s *service) UpdateOwnEmergencyContact(ctx context.Context, actor contextutil.Actor, req EmergencyContactRequest) (ProfileResponse, error) {
	s.logger.Debug("update own emergency contact requested", zap.Int64("employee_id", actor.EmployeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update emergency contact begin tx failed", zap.Error(err))
		return ProfileResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	n, err := qtx.UpdateEmergencyOnce(ctx, actor.EmployeeID,
		strings.TrimSpace(req.Name), strings.TrimSpace(req.Number), strings.TrimSpace(req.Relation))
	if err != nil {
		s.logger.Error("update emergency contact failed", zap.Error(err))
		return ProfileResponse{}, mapRepositoryError(err)
	}
	if n == 0 {
		s.logger.Warn("emergency contact already self-updated", zap.Int64("employee_id", actor.EmployeeID))
		return ProfileResponse{}, employeeerrors.ErrEmergencyAlreadyUpdated
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update emergency contact commit failed", zap.Error(err))
		return ProfileResponse{}, err
	}

	s.logger.Info("update emergency contact success", zap.Int64("employee_id", actor.EmployeeID))
	return s.GetProfile(ctx, actor.EmployeeID)
}

func (s *service) Celebrations(ctx context.Context, days int) ([]CelebrationResponse, error) {
	sources, err := s.repo.FindCelebrationSources(ctx)
	if err != nil {
		s.logger.Error("celebrations lookup failed", zap.Error(err))
		return nil, err
	}
	return UpcomingCelebrations(sources, s.now(), days), nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey()
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:        empl.ID,
		FirstName: empl.FirstName,
		LastName:  empl.LastName,
		FullName:  empl.FullName(),
		Gender:    empl.Gender,
		DOB:       dateutil.FormatPtr(empl.DOB),
		Address:   empl.Address,
		PhoneNo:   empl.PhoneNo,
		Email:     empl.Email,
		Status:    empl.Status,
		EmpType:   empl.EmpType,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func mapProfileResponse(empl Employee, p Profile) ProfileResponse {
	return ProfileResponse{
		EmployeeID:                 empl.ID,
		FullName:                   empl.FullName(),
		UAN:                        p.UAN,
		PAN:                        p.PAN,
		Aadhaar:                    p.Aadhaar,
		BankName:                   p.BankName,
		Branch:                     p.Branch,
		AccountNo:                  p.AccountNo,
		IFSC:                       p.IFSC,
		Designation:                p.Designation,
		EmergencyContactName:       p.EmergencyContactName,
		EmergencyContactNo:         p.EmergencyContactNo,
		EmergencyRelation:          p.EmergencyRelation,
		EmergencyUpdatedByEmployee: p.EmergencyUpdatedByEmployee,
		ReportingManagerID:         p.ReportingManagerID,
		DateOfJoining:              dateutil.FormatPtr(p.DateOfJoining),
		ProgrammingLanguages:       p.ProgrammingLanguages,
		Frameworks:                 p.Frameworks,
	}
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
