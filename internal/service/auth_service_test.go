package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
	"github.com/oreumshop/commerce-api/pkg/database"
)

const testSecret = "test-secret"

type AuthServiceTestSuite struct {
	suite.Suite
	db  *gorm.DB
	svc AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(s.db.AutoMigrate(&entity.User{}))
	database.SetDB(s.db)

	s.svc = NewAuthService(repository.NewUserRepository(s.db), testSecret, time.Hour)
}

func (s *AuthServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *AuthServiceTestSuite) signup(email string) *dto.AuthResponse {
	resp, err := s.svc.Signup(context.Background(), dto.SignupInput{
		Email:    email,
		Nickname: "tester",
		Password: "password123",
	})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceTestSuite) TestSignupIssuesToken() {
	resp := s.signup("new@example.com")

	s.NotEmpty(resp.AccessToken)
	s.Equal("Bearer", resp.TokenType)
	s.Greater(resp.ExpiresAt, time.Now().Unix())
	s.Require().NotNil(resp.User)
	s.Empty(resp.User.PasswordHash)
	s.True(resp.User.IsActive)

	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	s.Require().NoError(err)
	s.True(token.Valid)
	s.Equal(resp.User.ID.String(), claims.Subject)
	s.False(claims.Staff)
}

func (s *AuthServiceTestSuite) TestSignupDuplicateEmail() {
	s.signup("dup@example.com")

	_, err := s.svc.Signup(context.Background(), dto.SignupInput{
		Email:    "dup@example.com",
		Nickname: "other",
		Password: "password123",
	})
	s.Require().Error(err)
	s.Equal(400, apperror.MapErrorToStatus(err))
}

func (s *AuthServiceTestSuite) TestLogin() {
	s.signup("login@example.com")

	resp, err := s.svc.Login(context.Background(), dto.LoginInput{
		Email:    "login@example.com",
		Password: "password123",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.AccessToken)
}

func (s *AuthServiceTestSuite) TestLoginWrongPassword() {
	s.signup("login@example.com")

	_, err := s.svc.Login(context.Background(), dto.LoginInput{
		Email:    "login@example.com",
		Password: "wrong-password",
	})
	s.Require().Error(err)
	s.Equal(401, apperror.MapErrorToStatus(err))
}

func (s *AuthServiceTestSuite) TestLoginDeactivatedAccount() {
	resp := s.signup("gone@example.com")

	s.Require().NoError(s.db.Model(&entity.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err := s.svc.Login(context.Background(), dto.LoginInput{
		Email:    "gone@example.com",
		Password: "password123",
	})
	s.Require().Error(err)
	s.Equal(401, apperror.MapErrorToStatus(err))
}

func (s *AuthServiceTestSuite) TestStaffFlagInClaims() {
	resp := s.signup("staff@example.com")
	s.Require().NoError(s.db.Model(&entity.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_staff", true).Error)

	login, err := s.svc.Login(context.Background(), dto.LoginInput{
		Email:    "staff@example.com",
		Password: "password123",
	})
	s.Require().NoError(err)

	claims := &AccessClaims{}
	_, err = jwt.ParseWithClaims(login.AccessToken, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	s.Require().NoError(err)
	s.True(claims.Staff)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
