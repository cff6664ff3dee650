package v1

import (
	"fmt"

	"github.com/culturabase/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// UserEditable represents all user configurable parameters
type UserEditable struct {
	Name     string          `json:"name" example:"Ana Souza" default:""`              // Full name of the user
	Email    string          `json:"email" example:"ana.souza@example.com" default:""` // Email address, used for login
	Password string          `json:"password" example:"correct horse battery staple"`  // Plain text password, only used on create and never returned
	Role     models.UserRole `json:"role" example:"manager" default:"viewer"`          // Role of the user
	Active   bool            `json:"active" example:"true" default:"true"`             // Whether the user can log in
}

// model transforms the API representation into the model representation.
// The password is hashed by the caller, not here.
func (u UserEditable) model() models.User {
	return models.User{
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Active: u.Active,
	}
}

type UserLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/users/d1292f60-7ab4-4a0d-b89e-f4c6b6d73a1d"`                    // The user itself
	Notifications string `json:"notifications" example:"https://example.com/api/v1/notifications?user=d1292f60-7ab4-4a0d-b89e-f4c6b6d73a1d"` // The user's notifications
}

type User struct {
	models.DefaultModel
	Name   string          `json:"name" example:"Ana Souza"`              // Full name of the user
	Email  string          `json:"email" example:"ana.souza@example.com"` // Email address, used for login
	Role   models.UserRole `json:"role" example:"manager"`                // Role of the user
	Active bool            `json:"active" example:"true"`                 // Whether the user can log in
	Links  UserLinks       `json:"links"`                                 // Links to related resources
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		Name:         model.Name,
		Email:        model.Email,
		Role:         model.Role,
		Active:       model.Active,
		Links: UserLinks{
			Self:          fmt.Sprintf("%s/v1/users/%s", url, model.ID),
			Notifications: fmt.Sprintf("%s/v1/notifications?user=%s", url, model.ID),
		},
	}
}

type UserListResponse struct {
	Data       []User      `json:"data"`                                                          // List of users
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type UserCreateResponse struct {
	Data  []UserResponse `json:"data"`                                                          // Data for the user
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (u *UserCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	u.Data = append(u.Data, UserResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type UserResponse struct {
	Data  *User   `json:"data"`                                                          // Data for the user
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type UserQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Email  string `form:"email"`                      // By the email address
	Role   string `form:"role"`                       // By the role
	Active bool   `form:"active"`                     // By the active flag
	Search string `form:"search" filterField:"false"` // By string in name or email
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first user returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of users to return. Defaults to 50.
}

func (f UserQueryFilter) model() (models.User, error) {
	return models.User{
		Email:  f.Email,
		Role:   models.UserRole(f.Role),
		Active: f.Active,
	}, nil
}
