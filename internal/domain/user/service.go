package user

import "context"

// UserService is the admin-facing user management surface. Role and email
// changes propagate to the employee profile where one exists.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserDetailResponse, error)
	List(ctx context.Context, filter ListFilter) (UserListResponse, error)
	GetByID(ctx context.Context, id string) (UserDetailResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserDetailResponse, error)
	Delete(ctx context.Context, id string) error
}
