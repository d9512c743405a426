package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"expirygenie/domain"
	"expirygenie/entities"
	"expirygenie/internal/utils"
	"expirygenie/internal/utils/mailing"
	"expirygenie/internal/utils/storage"
	"expirygenie/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) error
		SendVerificationEmail(ctx context.Context, email string) error
		VerifyEmail(ctx context.Context, token string) error
		ForgotPassword(ctx context.Context, email string) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
		UploadAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (domain.UploadAvatarResponse, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		awsS3          storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, awsS3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		awsS3:          awsS3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.RegisterResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	if err := s.sendVerifyMail(user.Email); err != nil {
		// Registration stands even when the mail bounces, the user
		// can request another one.
		log.Printf("error sending verification email: %v", err)
	}

	return domain.RegisterResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrWrongCredentials
		}
		return domain.LoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return domain.LoginResponse{}, domain.ErrWrongCredentials
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return domain.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	return domain.UserResponse{
		ID:         user.ID.String(),
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		Verified:   user.Verified,
		AvatarURL:  user.AvatarURL,
		MoneySaved: user.MoneySaved,
	}, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID string, avatar *multipart.FileHeader) (domain.UploadAvatarResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UploadAvatarResponse{}, domain.ErrUserNotFound
		}
		return domain.UploadAvatarResponse{}, err
	}

	fileName := fmt.Sprintf("avatar-%s", user.ID.String())
	var objectKey string
	var uploadErr error

	// Overwrite the existing object when the user already has one.
	if existingKey := s.awsS3.GetObjectKeyFromLink(user.AvatarURL); existingKey != "" {
		objectKey, uploadErr = s.awsS3.UpdateFile(existingKey, avatar, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.awsS3.UploadFile(fileName, avatar, "avatars", storage.AllowImage...)
	}
	if uploadErr != nil {
		return domain.UploadAvatarResponse{}, uploadErr
	}

	user.AvatarURL = s.awsS3.GetPublicLinkKey(objectKey)
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return domain.UploadAvatarResponse{}, err
	}

	return domain.UploadAvatarResponse{AvatarURL: user.AvatarURL}, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req domain.UpdateUserRequest) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hashed)
	}

	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) SendVerificationEmail(ctx context.Context, email string) error {
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if user.Verified {
		return domain.ErrAlreadyVerified
	}
	return s.sendVerifyMail(user.Email)
}

func (s *userService) sendVerifyMail(email string) error {
	token, err := s.jwtService.GenerateTokenWithClaims(
		map[string]any{"email": email, "purpose": "verify"},
		24*time.Hour,
	)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Welcome to ExpiryGenie!</p><p>Click <a href=%q>here</a> to verify your email address.</p>",
		link,
	)
	return mailing.SendMail(email, "Verify your ExpiryGenie account", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenWithClaims(token)
	if err != nil {
		return err
	}

	email, _ := claims["email"].(string)
	if email == "" || claims["purpose"] != "verify" {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	user.Verified = true
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenWithClaims(
		map[string]any{"email": user.Email, "purpose": "reset"},
		30*time.Minute,
	)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf(
		"<p>Click <a href=%q>here</a> to reset your ExpiryGenie password. The link expires in 30 minutes.</p>",
		link,
	)
	return mailing.SendMail(user.Email, "Reset your ExpiryGenie password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenWithClaims(req.Token)
	if err != nil {
		return err
	}

	email, _ := claims["email"].(string)
	if email == "" || claims["purpose"] != "reset" {
		return domain.ErrTokenInvalid
	}

	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)

	return s.userRepository.UpdateUser(ctx, user)
}
