package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/dto"
	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/pkg/apperror"
	"github.com/oreumshop/commerce-api/pkg/database"
)

type WorkServiceTestSuite struct {
	suite.Suite
	db    *gorm.DB
	svc   WorkService
	staff *entity.User
	order *entity.Order
}

func (s *WorkServiceTestSuite) SetupTest() {
	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(s.db.AutoMigrate(
		&entity.User{},
		&entity.Order{},
		&entity.Work{},
	))
	database.SetDB(s.db)

	s.svc = NewWorkService(
		repository.NewWorkRepository(s.db),
		repository.NewOrderRepository(s.db),
		repository.NewUserRepository(s.db),
		nil,
	)

	s.staff = &entity.User{
		Email:        "staff@example.com",
		Nickname:     "staff",
		PasswordHash: "hashed",
		IsActive:     true,
		IsStaff:      true,
	}
	s.Require().NoError(s.db.Create(s.staff).Error)

	s.order = &entity.Order{
		OrderNumber:     "ORD-20260823-300001",
		Status:          entity.OrderStatusPaid,
		TotalAmount:     "9000.00",
		ShippingName:    "Tester",
		ShippingPhone:   "010-0000-0000",
		ShippingAddress: "1 Test St",
		PaymentMethod:   "CARD",
		PaymentStatus:   "PAID",
		UserID:          s.staff.ID,
	}
	s.Require().NoError(s.db.Create(s.order).Error)
}

func (s *WorkServiceTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *WorkServiceTestSuite) actor() Actor {
	return Actor{ID: s.staff.ID, IsStaff: true}
}

func (s *WorkServiceTestSuite) TestCreateRejectsUnknownWorkType() {
	_, err := s.svc.Create(context.Background(), s.actor(), dto.WorkCreateInput{
		Title:       "Pack order",
		WorkType:    "GARDENING",
		OrderNumber: s.order.OrderNumber,
	})
	s.Require().Error(err)
	s.Equal(400, apperror.MapErrorToStatus(err))
}

func (s *WorkServiceTestSuite) TestCreateRejectsUnknownStatus() {
	_, err := s.svc.Create(context.Background(), s.actor(), dto.WorkCreateInput{
		Title:       "Pack order",
		WorkType:    "PACKAGING",
		Status:      "DONE",
		OrderNumber: s.order.OrderNumber,
	})
	s.Require().Error(err)
	s.Equal(400, apperror.MapErrorToStatus(err))
}

func (s *WorkServiceTestSuite) TestUpdateRejectsUnknownValues() {
	created, err := s.svc.Create(context.Background(), s.actor(), dto.WorkCreateInput{
		Title:       "Pack order",
		WorkType:    "PACKAGING",
		OrderNumber: s.order.OrderNumber,
	})
	s.Require().NoError(err)

	badStatus := "DONE"
	_, err = s.svc.Update(context.Background(), s.actor(), created.ID, dto.WorkUpdateInput{Status: &badStatus})
	s.Require().Error(err)
	s.Equal(400, apperror.MapErrorToStatus(err))

	badType := "GARDENING"
	_, err = s.svc.Update(context.Background(), s.actor(), created.ID, dto.WorkUpdateInput{WorkType: &badType})
	s.Require().Error(err)
	s.Equal(400, apperror.MapErrorToStatus(err))
}

func TestWorkServiceTestSuite(t *testing.T) {
	suite.Run(t, new(WorkServiceTestSuite))
}
