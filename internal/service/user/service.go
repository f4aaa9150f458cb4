package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/oppstream/oppstream-backend-go/internal/domain/businessunit"
	"github.com/oppstream/oppstream-backend-go/internal/domain/employee"
	"github.com/oppstream/oppstream-backend-go/internal/domain/user"
	"github.com/oppstream/oppstream-backend-go/internal/pkg/database"
	"github.com/oppstream/oppstream-backend-go/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	employee.EmployeeRepository
	businessunit.BusinessUnitRepository
}

func NewUserService(
	db *database.DB,
	userRepository user.UserRepository,
	employeeRepository employee.EmployeeRepository,
	businessUnitRepository businessunit.BusinessUnitRepository,
) user.UserService {
	return &UserServiceImpl{
		db:                     db,
		UserRepository:         userRepository,
		EmployeeRepository:     employeeRepository,
		BusinessUnitRepository: businessUnitRepository,
	}
}

func toEmployeeInfo(emp employee.Employee) *user.EmployeeInfo {
	info := &user.EmployeeInfo{
		ID:           emp.ID,
		EmployeeCode: emp.EmployeeCode,
		Name:         emp.Name,
		Rank:         string(emp.Rank),
	}
	if emp.BusinessUnitID != "" {
		info.BusinessUnitID = &emp.BusinessUnitID
	}
	return info
}

// Create implements user.UserService. Non-admin users get an employee profile
// at the rank their auth role maps to.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserDetailResponse, error) {
	role, ok := user.ParseRole(req.Role)
	if !ok {
		return user.UserDetailResponse{}, user.ErrInvalidRole
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.UserDetailResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.UserDetailResponse{}, user.ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserDetailResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	var created user.User
	var profile *employee.Employee
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		created, err = s.UserRepository.Create(txCtx, user.User{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: &hashed,
			Role:         role,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if role == user.RoleAdmin {
			return nil
		}

		rank, err := employee.RankForRole(role)
		if err != nil {
			return err
		}

		if _, err := s.BusinessUnitRepository.GetByID(txCtx, *req.BusinessUnitID); err != nil {
			return err
		}

		taken, err := s.EmployeeRepository.ExistsOtherWithCodeOrEmail(txCtx, created.ID, *req.EmployeeCode, req.Email)
		if err != nil {
			return fmt.Errorf("failed to check employee identity: %w", err)
		}
		if taken {
			return employee.ErrEmployeeExists
		}

		emp, _, err := s.EmployeeRepository.Upsert(txCtx, employee.Employee{
			UserID:         created.ID,
			EmployeeCode:   *req.EmployeeCode,
			Name:           req.Username,
			Email:          req.Email,
			EmploymentType: employee.EmploymentTypeFullTime,
			Rank:           rank,
			Ancestors:      []string{},
			BusinessUnitID: *req.BusinessUnitID,
			IsAvailable:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee profile: %w", err)
		}
		profile = &emp
		return nil
	})
	if err != nil {
		return user.UserDetailResponse{}, err
	}

	resp := user.UserDetailResponse{UserResponse: user.ToUserResponse(created)}
	if profile != nil {
		resp.Employee = toEmployeeInfo(*profile)
	}
	return resp, nil
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, filter user.ListFilter) (user.UserListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.UserListResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	profiles := make(map[string]employee.Employee)
	if len(userIDs) > 0 {
		emps, err := s.EmployeeRepository.ListByUserIDs(ctx, userIDs)
		if err != nil {
			return user.UserListResponse{}, fmt.Errorf("failed to attach employee profiles: %w", err)
		}
		for _, emp := range emps {
			profiles[emp.UserID] = emp
		}
	}

	details := make([]user.UserDetailResponse, 0, len(users))
	for _, u := range users {
		detail := user.UserDetailResponse{UserResponse: user.ToUserResponse(u)}
		if emp, ok := profiles[u.ID]; ok {
			detail.Employee = toEmployeeInfo(emp)
		}
		details = append(details, detail)
	}

	return user.UserListResponse{
		Users: details,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// GetByID implements user.UserService.
func (s *UserServiceImpl) GetByID(ctx context.Context, id string) (user.UserDetailResponse, error) {
	u, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserDetailResponse{}, err
	}

	resp := user.UserDetailResponse{UserResponse: user.ToUserResponse(u)}

	emp, err := s.EmployeeRepository.GetByUserID(ctx, id)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			return user.UserDetailResponse{}, err
		}
		return resp, nil
	}
	resp.Employee = toEmployeeInfo(emp)
	return resp, nil
}

// Update implements user.UserService. Email and role changes propagate to the
// employee profile so the rank stays consistent with the auth role.
func (s *UserServiceImpl) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserDetailResponse, error) {
	if req.Username == nil && req.Email == nil && req.Role == nil {
		return user.UserDetailResponse{}, user.ErrNothingToUpdate
	}

	var updated user.User
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		var err error
		updated, err = s.UserRepository.Update(txCtx, id, req)
		if err != nil {
			return err
		}

		var rank *employee.Rank
		if req.Role != nil {
			role, ok := user.ParseRole(*req.Role)
			if !ok {
				return user.ErrInvalidRole
			}
			if role != user.RoleAdmin {
				r, err := employee.RankForRole(role)
				if err != nil {
					return err
				}
				rank = &r
			}
		}

		if req.Email != nil || rank != nil {
			if err := s.EmployeeRepository.UpdateIdentity(txCtx, id, req.Email, rank); err != nil {
				return fmt.Errorf("failed to propagate identity change: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return user.UserDetailResponse{}, err
	}

	return s.GetByID(ctx, updated.ID)
}

// Delete implements user.UserService. The employee profile, if any, goes with
// the user.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	return postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.EmployeeRepository.DeleteByUserID(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete employee profile: %w", err)
		}
		return s.UserRepository.Delete(txCtx, id)
	})
}
