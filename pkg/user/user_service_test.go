package user

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"expirygenie/domain"
	"expirygenie/entities"
	"expirygenie/pkg/jwt"
)

type fakeUserRepository struct {
	byEmail map[string]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: make(map[string]*entities.User)}
}

func (r *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	for _, user := range r.byEmail {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) AddMoneySaved(_ context.Context, userID string, amount float64) error {
	for _, user := range r.byEmail {
		if user.ID.String() == userID {
			user.MoneySaved += amount
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeAwsS3 struct {
	uploadedKeys []string
	updatedKeys  []string
}

const fakeBaseURL = "https://expirygenie.s3.ap-southeast-1.amazonaws.com/"

func newFakeAwsS3() *fakeAwsS3 {
	return &fakeAwsS3{}
}

func (f *fakeAwsS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName + ".png"
	f.uploadedKeys = append(f.uploadedKeys, key)
	return key, nil
}

func (f *fakeAwsS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	f.updatedKeys = append(f.updatedKeys, objectKey)
	return objectKey, nil
}

func (f *fakeAwsS3) DeleteFile(string) error { return nil }

func (f *fakeAwsS3) GetPublicLinkKey(objectKey string) string {
	return fakeBaseURL + objectKey
}

func (f *fakeAwsS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, fakeBaseURL) {
		return ""
	}
	return strings.TrimPrefix(link, fakeBaseURL)
}

func seedUser(repo *fakeUserRepository, email, password string) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &entities.User{
		ID:       uuid.New(),
		Name:     "tester",
		Email:    email,
		Password: string(hashed),
		Role:     domain.RoleUser,
	}
	repo.byEmail[email] = user
	return user
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, "taken@example.com", "password123")
	svc := NewUserService(repo, jwt.NewJWTService(), newFakeAwsS3())

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "someone",
		Email:    "taken@example.com",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Errorf("got %v, want ErrEmailAlreadyExists", err)
	}
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepository()
	seedUser(repo, "user@example.com", "password123")
	svc := NewUserService(repo, jwt.NewJWTService(), newFakeAwsS3())

	res, err := svc.Login(context.Background(), domain.LoginRequest{
		Email:    "user@example.com",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.Token == "" || res.Role != domain.RoleUser {
		t.Errorf("response = %+v", res)
	}

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, domain.ErrWrongCredentials) {
		t.Errorf("wrong password: got %v, want ErrWrongCredentials", err)
	}

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	if !errors.Is(err, domain.ErrWrongCredentials) {
		t.Errorf("unknown email: got %v, want ErrWrongCredentials", err)
	}
}

func TestVerifyEmail(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(repo, "user@example.com", "password123")
	jwtService := jwt.NewJWTService()
	svc := NewUserService(repo, jwtService, newFakeAwsS3())

	token, err := jwtService.GenerateTokenWithClaims(
		map[string]any{"email": user.Email, "purpose": "verify"},
		time.Hour,
	)
	if err != nil {
		t.Fatalf("GenerateTokenWithClaims: %v", err)
	}

	if err := svc.VerifyEmail(context.Background(), token); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	if !repo.byEmail[user.Email].Verified {
		t.Error("user not marked verified")
	}
}

func TestVerifyEmailRejectsWrongPurpose(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(repo, "user@example.com", "password123")
	jwtService := jwt.NewJWTService()
	svc := NewUserService(repo, jwtService, newFakeAwsS3())

	token, err := jwtService.GenerateTokenWithClaims(
		map[string]any{"email": user.Email, "purpose": "reset"},
		time.Hour,
	)
	if err != nil {
		t.Fatalf("GenerateTokenWithClaims: %v", err)
	}

	if err := svc.VerifyEmail(context.Background(), token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("got %v, want ErrTokenInvalid", err)
	}
}

func TestResetPassword(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(repo, "user@example.com", "oldpassword")
	jwtService := jwt.NewJWTService()
	svc := NewUserService(repo, jwtService, newFakeAwsS3())

	token, err := jwtService.GenerateTokenWithClaims(
		map[string]any{"email": user.Email, "purpose": "reset"},
		time.Hour,
	)
	if err != nil {
		t.Fatalf("GenerateTokenWithClaims: %v", err)
	}

	err = svc.ResetPassword(context.Background(), domain.ResetPasswordRequest{
		Token:    token,
		Password: "newpassword",
	})
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	stored := repo.byEmail[user.Email]
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newpassword")) != nil {
		t.Error("password not updated")
	}
}

func TestUploadAvatar(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(repo, "user@example.com", "password123")
	s3 := newFakeAwsS3()
	svc := NewUserService(repo, jwt.NewJWTService(), s3)

	file := &multipart.FileHeader{Filename: "me.png"}
	res, err := svc.UploadAvatar(context.Background(), user.ID.String(), file)
	if err != nil {
		t.Fatalf("UploadAvatar: %v", err)
	}

	wantURL := fakeBaseURL + "avatars/avatar-" + user.ID.String() + ".png"
	if res.AvatarURL != wantURL {
		t.Errorf("avatar URL = %q, want %q", res.AvatarURL, wantURL)
	}
	if stored := repo.byEmail[user.Email]; stored.AvatarURL != wantURL {
		t.Errorf("stored avatar URL = %q, want %q", stored.AvatarURL, wantURL)
	}
	if len(s3.uploadedKeys) != 1 {
		t.Fatalf("uploads = %d, want 1", len(s3.uploadedKeys))
	}
}

func TestUploadAvatarReplacesExistingObject(t *testing.T) {
	repo := newFakeUserRepository()
	user := seedUser(repo, "user@example.com", "password123")
	s3 := newFakeAwsS3()
	svc := NewUserService(repo, jwt.NewJWTService(), s3)

	file := &multipart.FileHeader{Filename: "me.png"}
	first, err := svc.UploadAvatar(context.Background(), user.ID.String(), file)
	if err != nil {
		t.Fatalf("first UploadAvatar: %v", err)
	}
	second, err := svc.UploadAvatar(context.Background(), user.ID.String(), file)
	if err != nil {
		t.Fatalf("second UploadAvatar: %v", err)
	}

	if second.AvatarURL != first.AvatarURL {
		t.Errorf("avatar URL changed on re-upload: %q -> %q", first.AvatarURL, second.AvatarURL)
	}
	if len(s3.uploadedKeys) != 1 || len(s3.updatedKeys) != 1 {
		t.Errorf("uploads = %d, updates = %d, want 1 and 1", len(s3.uploadedKeys), len(s3.updatedKeys))
	}
	if s3.updatedKeys[0] != "avatars/avatar-"+user.ID.String()+".png" {
		t.Errorf("updated key = %q", s3.updatedKeys[0])
	}
}

func TestUploadAvatarUnknownUser(t *testing.T) {
	repo := newFakeUserRepository()
	svc := NewUserService(repo, jwt.NewJWTService(), newFakeAwsS3())

	_, err := svc.UploadAvatar(context.Background(), uuid.NewString(), &multipart.FileHeader{Filename: "me.png"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}
