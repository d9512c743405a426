package domain

import "errors"

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetMe          = "user profile retrieved successfully"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessSendVerify     = "verification email sent"
	MessageSuccessVerifyEmail    = "email verified successfully"
	MessageSuccessForgotPassword = "password reset email sent"
	MessageSuccessResetPassword  = "password reset successfully"
	MessageSuccessUploadAvatar   = "avatar uploaded successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to retrieve user profile"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedSendVerify     = "failed to send verification email"
	MessageFailedVerifyEmail    = "failed to verify email"
	MessageFailedForgotPassword = "failed to send password reset email"
	MessageFailedResetPassword  = "failed to reset password"
	MessageFailedUploadAvatar   = "failed to upload avatar"

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrWrongCredentials   = errors.New("wrong email or password")
	ErrAlreadyVerified    = errors.New("email already verified")
)

type (
	RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UserResponse struct {
		ID         string  `json:"id"`
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		Role       string  `json:"role"`
		Verified   bool    `json:"verified"`
		AvatarURL  string  `json:"avatar_url"`
		MoneySaved float64 `json:"money_saved"`
	}

	UpdateUserRequest struct {
		Name     string `json:"name" validate:"omitempty"`
		Password string `json:"password" validate:"omitempty,min=8"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	UploadAvatarResponse struct {
		AvatarURL string `json:"avatar_url"`
	}
)
