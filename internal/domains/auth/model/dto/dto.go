package dto

import (
	"time"

	"github.com/google/uuid"

	"agenda/infras/jwt"
	businessModel "agenda/internal/domains/business/model"
	userModel "agenda/internal/domains/user/model"
	"agenda/shared/constant"
	gModel "agenda/shared/model"
	"agenda/shared/timezone"
)

// RegisterRequest opens a new tenant: the business and its owner account are
// created together.
type RegisterRequest struct {
	BusinessName string  `json:"business_name" validate:"required,max=255"`
	Email        string  `json:"email"         validate:"required,email"`
	Password     string  `json:"password"      validate:"required,min=8"`
	FullName     *string `json:"full_name,omitempty"`
}

func (r *RegisterRequest) ToBusinessModel(username string) businessModel.Business {
	return businessModel.Business{
		ID:            uuid.NewString(),
		Name:          r.BusinessName,
		SlotSizeValue: constant.DefaultSlotSizeMinutes,
		SlotSizeUnit:  constant.SlotUnitMinutes,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

func (r *RegisterRequest) ToUserModel(businessID, username, hashedPassword string) userModel.User {
	return userModel.User{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Email:      r.Email,
		Password:   hashedPassword,
		Role:       constant.RoleOwner,
		FullName:   r.FullName,
		Active:     true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	BusinessID   string `json:"business_id"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair, businessID string) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
	l.BusinessID = businessID
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
