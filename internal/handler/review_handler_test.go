package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oreumshop/commerce-api/internal/entity"
	"github.com/oreumshop/commerce-api/internal/repository"
	"github.com/oreumshop/commerce-api/internal/service"
	"github.com/oreumshop/commerce-api/pkg/database"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	currentUser  uuid.UUID
	currentStaff bool
}

func (s *ReviewHandlerTestSuite) SetupTest() {
	s.currentUser = uuid.Nil
	s.currentStaff = false

	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.Require().NoError(s.db.AutoMigrate(
		&entity.User{},
		&entity.Order{},
		&entity.Review{},
	))
	database.SetDB(s.db)

	reviewSvc := service.NewReviewService(
		repository.NewReviewRepository(s.db),
		repository.NewOrderRepository(s.db),
		nil,
	)
	h := NewReviewHandler(reviewSvc)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.currentUser)
		c.Set("is_staff", s.currentStaff)
	})
	s.router.POST("/api/reviews", h.Create)
	s.router.GET("/api/reviews", h.List)
	s.router.GET("/api/reviews/:id", h.Get)
	s.router.PUT("/api/reviews/:id", h.Update)
	s.router.DELETE("/api/reviews/:id", h.Delete)
}

func (s *ReviewHandlerTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *ReviewHandlerTestSuite) createUser(email string, staff bool) *entity.User {
	user := &entity.User{
		Email:        email,
		Nickname:     "tester",
		PasswordHash: "hashed",
		IsActive:     true,
		IsStaff:      staff,
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *ReviewHandlerTestSuite) createOrder(user *entity.User, number string) *entity.Order {
	order := &entity.Order{
		OrderNumber:     number,
		Status:          entity.OrderStatusDelivered,
		TotalAmount:     "15000.00",
		ShippingName:    "Tester",
		ShippingPhone:   "010-0000-0000",
		ShippingAddress: "1 Test St",
		PaymentMethod:   "CARD",
		PaymentStatus:   "PAID",
		UserID:          user.ID,
	}
	s.Require().NoError(s.db.Create(order).Error)
	return order
}

func (s *ReviewHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ReviewHandlerTestSuite) postReview(orderID uuid.UUID, rating int, content string) *httptest.ResponseRecorder {
	return s.perform(http.MethodPost, "/api/reviews", gin.H{
		"order_id": orderID,
		"rating":   rating,
		"content":  content,
	})
}

func (s *ReviewHandlerTestSuite) TestCreateReview() {
	user := s.createUser("buyer@example.com", false)
	order := s.createOrder(user, "ORD-20260823-200001")
	s.currentUser = user.ID

	w := s.postReview(order.ID, 5, "Arrived fast, great packaging")
	s.Equal(http.StatusCreated, w.Code)

	var resp envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	var review entity.Review
	s.Require().NoError(json.Unmarshal(resp.Data, &review))
	s.Equal(5, review.Rating)
	s.Equal(user.ID, review.UserID)
}

func (s *ReviewHandlerTestSuite) TestDuplicateReviewRejected() {
	user := s.createUser("buyer@example.com", false)
	order := s.createOrder(user, "ORD-20260823-200002")
	s.currentUser = user.ID

	s.Equal(http.StatusCreated, s.postReview(order.ID, 5, "Great").Code)
	s.Equal(http.StatusBadRequest, s.postReview(order.ID, 4, "Changed my mind").Code)

	var count int64
	s.db.Model(&entity.Review{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *ReviewHandlerTestSuite) TestCannotReviewOthersOrder() {
	alice := s.createUser("alice@example.com", false)
	bob := s.createUser("bob@example.com", false)
	order := s.createOrder(alice, "ORD-20260823-200003")

	s.currentUser = bob.ID
	w := s.postReview(order.ID, 1, "Never ordered this")
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *ReviewHandlerTestSuite) TestRatingBounds() {
	user := s.createUser("buyer@example.com", false)
	order := s.createOrder(user, "ORD-20260823-200004")
	s.currentUser = user.ID

	s.Equal(http.StatusBadRequest, s.postReview(order.ID, 0, "Too low").Code)
	s.Equal(http.StatusBadRequest, s.postReview(order.ID, 6, "Too high").Code)
}

func (s *ReviewHandlerTestSuite) TestContentSanitized() {
	user := s.createUser("buyer@example.com", false)
	order := s.createOrder(user, "ORD-20260823-200005")
	s.currentUser = user.ID

	w := s.postReview(order.ID, 4, `nice <script>alert("x")</script>`)
	s.Equal(http.StatusCreated, w.Code)

	var review entity.Review
	s.Require().NoError(s.db.First(&review).Error)
	s.NotContains(review.Content, "<script>")
}

func (s *ReviewHandlerTestSuite) TestUpdatePolicy() {
	alice := s.createUser("alice@example.com", false)
	bob := s.createUser("bob@example.com", false)
	order := s.createOrder(alice, "ORD-20260823-200006")

	s.currentUser = alice.ID
	s.Equal(http.StatusCreated, s.postReview(order.ID, 5, "Great").Code)

	var review entity.Review
	s.Require().NoError(s.db.First(&review).Error)

	s.currentUser = bob.ID
	w := s.perform(http.MethodPut, fmt.Sprintf("/api/reviews/%s", review.ID), gin.H{"rating": 1})
	s.Equal(http.StatusForbidden, w.Code)

	s.currentUser = alice.ID
	w = s.perform(http.MethodPut, fmt.Sprintf("/api/reviews/%s", review.ID), gin.H{"rating": 3})
	s.Equal(http.StatusOK, w.Code)

	s.Require().NoError(s.db.First(&review, "id = ?", review.ID).Error)
	s.Equal(3, review.Rating)
}

func (s *ReviewHandlerTestSuite) TestStaffCanDelete() {
	alice := s.createUser("alice@example.com", false)
	staff := s.createUser("staff@example.com", true)
	order := s.createOrder(alice, "ORD-20260823-200007")

	s.currentUser = alice.ID
	s.Equal(http.StatusCreated, s.postReview(order.ID, 5, "Great").Code)

	var review entity.Review
	s.Require().NoError(s.db.First(&review).Error)

	s.currentUser = staff.ID
	s.currentStaff = true
	w := s.perform(http.MethodDelete, fmt.Sprintf("/api/reviews/%s", review.ID), nil)
	s.Equal(http.StatusNoContent, w.Code)

	var count int64
	s.db.Model(&entity.Review{}).Count(&count)
	s.Equal(int64(0), count)
}

func TestReviewHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}
