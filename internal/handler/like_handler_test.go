package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type listData struct {
	Results json.RawMessage `json:"results"`
	Count   int64           `json:"count"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

type errBody struct {
	Error string `json:"error"`
}

type LikeHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine

	// identity injected by the fake auth middleware
	currentUser  uuid.UUID
	currentStaff bool
}

func (s *LikeHandlerTestSuite) SetupTest() {
	s.currentUser = uuid.Nil
	s.currentStaff = false

	var err error
	s.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)

	err = s.db.AutoMigrate(
		&entity.User{},
		&entity.Order{},
		&entity.Review{},
		&entity.Like{},
	)
	s.Require().NoError(err)

	database.SetDB(s.db)

	likeRepo := repository.NewLikeRepository(s.db)
	orderRepo := repository.NewOrderRepository(s.db)
	reviewRepo := repository.NewReviewRepository(s.db)
	likeSvc := service.NewLikeService(likeRepo, orderRepo, reviewRepo, nil, 0)
	h := NewLikeHandler(likeSvc)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.currentUser)
		c.Set("is_staff", s.currentStaff)
	})
	s.router.POST("/api/likes", h.Create)
	s.router.GET("/api/likes", h.List)
	s.router.DELETE("/api/likes/:id", h.Delete)
}

func (s *LikeHandlerTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *LikeHandlerTestSuite) createUser(email string) *entity.User {
	user := &entity.User{
		Email:        email,
		Nickname:     "tester",
		PasswordHash: "hashed",
		IsActive:     true,
	}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *LikeHandlerTestSuite) createOrder(user *entity.User, number string) *entity.Order {
	order := &entity.Order{
		OrderNumber:     number,
		Status:          entity.OrderStatusPending,
		TotalAmount:     "10000.00",
		ShippingName:    "Tester",
		ShippingPhone:   "010-0000-0000",
		ShippingAddress: "1 Test St",
		PaymentMethod:   "CARD",
		PaymentStatus:   "UNPAID",
		UserID:          user.ID,
	}
	s.Require().NoError(s.db.Create(order).Error)
	return order
}

func (s *LikeHandlerTestSuite) perform(method, url string, body any) *httptest.ResponseRecorder {
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

func (s *LikeHandlerTestSuite) likeOrder(orderID uuid.UUID) *httptest.ResponseRecorder {
	return s.perform(http.MethodPost, "/api/likes", gin.H{
		"content_type": "order",
		"object_id":    orderID,
	})
}

func (s *LikeHandlerTestSuite) TestCreateLike() {
	user := s.createUser("liker@example.com")
	order := s.createOrder(user, "ORD-20260823-000001")
	s.currentUser = user.ID

	w := s.likeOrder(order.ID)
	s.Equal(http.StatusCreated, w.Code)

	var resp envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	var like struct {
		ContentType     string    `json:"content_type"`
		ContentTypeName string    `json:"content_type_name"`
		ObjectID        uuid.UUID `json:"object_id"`
		UserID          uuid.UUID `json:"user_id"`
	}
	s.Require().NoError(json.Unmarshal(resp.Data, &like))
	s.Equal("order", like.ContentType)
	s.Equal("order", like.ContentTypeName)
	s.Equal(order.ID, like.ObjectID)
	s.Equal(user.ID, like.UserID)
}

func (s *LikeHandlerTestSuite) TestDuplicateLikeRejected() {
	user := s.createUser("liker@example.com")
	order := s.createOrder(user, "ORD-20260823-000002")
	s.currentUser = user.ID

	s.Equal(http.StatusCreated, s.likeOrder(order.ID).Code)

	w := s.likeOrder(order.ID)
	s.Equal(http.StatusBadRequest, w.Code)

	var body errBody
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal("You have already liked this item.", body.Error)

	var count int64
	s.db.Model(&entity.Like{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *LikeHandlerTestSuite) TestLikeMissingTarget() {
	user := s.createUser("liker@example.com")
	s.currentUser = user.ID

	w := s.likeOrder(uuid.New())
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *LikeHandlerTestSuite) TestLikeUnknownContentType() {
	user := s.createUser("liker@example.com")
	s.currentUser = user.ID

	w := s.perform(http.MethodPost, "/api/likes", gin.H{
		"content_type": "product",
		"object_id":    uuid.New(),
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *LikeHandlerTestSuite) TestListScopedToOwner() {
	alice := s.createUser("alice@example.com")
	bob := s.createUser("bob@example.com")
	order := s.createOrder(alice, "ORD-20260823-000003")

	s.currentUser = alice.ID
	s.Equal(http.StatusCreated, s.likeOrder(order.ID).Code)
	s.currentUser = bob.ID
	s.Equal(http.StatusCreated, s.likeOrder(order.ID).Code)

	s.currentUser = alice.ID
	w := s.perform(http.MethodGet, "/api/likes", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	var data listData
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.Equal(int64(1), data.Count)

	var results []struct {
		UserID uuid.UUID `json:"user_id"`
	}
	s.Require().NoError(json.Unmarshal(data.Results, &results))
	s.Require().Len(results, 1)
	s.Equal(alice.ID, results[0].UserID)
}

func (s *LikeHandlerTestSuite) TestListFilters() {
	user := s.createUser("liker@example.com")
	orderA := s.createOrder(user, "ORD-20260823-000004")
	orderB := s.createOrder(user, "ORD-20260823-000005")
	s.currentUser = user.ID

	s.Equal(http.StatusCreated, s.likeOrder(orderA.ID).Code)
	s.Equal(http.StatusCreated, s.likeOrder(orderB.ID).Code)

	w := s.perform(http.MethodGet, "/api/likes?content_type=order&object_id="+orderA.ID.String(), nil)
	s.Equal(http.StatusOK, w.Code)

	var resp envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	var data listData
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.Equal(int64(1), data.Count)
}

func (s *LikeHandlerTestSuite) TestContentTypeFilterAcrossKinds() {
	user := s.createUser("liker@example.com")
	order := s.createOrder(user, "ORD-20260823-000011")
	review := &entity.Review{
		UserID:  user.ID,
		OrderID: order.ID,
		Rating:  5,
		Content: "Great",
	}
	s.Require().NoError(s.db.Create(review).Error)
	s.currentUser = user.ID

	s.Equal(http.StatusCreated, s.likeOrder(order.ID).Code)
	w := s.perform(http.MethodPost, "/api/likes", gin.H{
		"content_type": "review",
		"object_id":    review.ID,
	})
	s.Equal(http.StatusCreated, w.Code)

	w = s.perform(http.MethodGet, "/api/likes?content_type=review", nil)
	s.Equal(http.StatusOK, w.Code)

	var resp envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	var data listData
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.Equal(int64(1), data.Count)

	var results []struct {
		ContentType string    `json:"content_type"`
		ObjectID    uuid.UUID `json:"object_id"`
	}
	s.Require().NoError(json.Unmarshal(data.Results, &results))
	s.Require().Len(results, 1)
	s.Equal("review", results[0].ContentType)
	s.Equal(review.ID, results[0].ObjectID)
}

func (s *LikeHandlerTestSuite) TestListCreatedAtBounds() {
	user := s.createUser("liker@example.com")
	order := s.createOrder(user, "ORD-20260823-000006")
	s.currentUser = user.ID
	s.Equal(http.StatusCreated, s.likeOrder(order.ID).Code)

	today := time.Now().Format(time.DateOnly)
	tomorrow := time.Now().Add(24 * time.Hour).Format(time.DateOnly)

	w := s.perform(http.MethodGet, "/api/likes?created_at__gte="+tomorrow, nil)
	s.Equal(http.StatusOK, w.Code)
	var resp envelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	var data listData
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.Equal(int64(0), data.Count)

	// A date-only upper bound includes likes created later the same day.
	w = s.perform(http.MethodGet, "/api/likes?created_at__lte="+today, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().NoError(json.Unmarshal(resp.Data, &data))
	s.Equal(int64(1), data.Count)
}

func (s *LikeHandlerTestSuite) TestListOrdering() {
	user := s.createUser("liker@example.com")
	orderA := s.createOrder(user, "ORD-20260823-000007")
	orderB := s.createOrder(user, "ORD-20260823-000008")
	s.currentUser = user.ID

	s.Equal(http.StatusCreated, s.likeOrder(orderA.ID).Code)
	s.Equal(http.StatusCreated, s.likeOrder(orderB.ID).Code)

	// Push the first like into the past so the ordering is unambiguous.
	s.Require().NoError(s.db.Model(&entity.Like{}).
		Where("object_id = ?", orderA.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	firstObjectID := func(w *httptest.ResponseRecorder) uuid.UUID {
		var resp envelope
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		var data listData
		s.Require().NoError(json.Unmarshal(resp.Data, &data))
		var results []struct {
			ObjectID uuid.UUID `json:"object_id"`
		}
		s.Require().NoError(json.Unmarshal(data.Results, &results))
		s.Require().NotEmpty(results)
		return results[0].ObjectID
	}

	w := s.perform(http.MethodGet, "/api/likes?ordering=created_at", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(orderA.ID, firstObjectID(w))

	w = s.perform(http.MethodGet, "/api/likes?ordering=-created_at", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(orderB.ID, firstObjectID(w))
}

func (s *LikeHandlerTestSuite) TestDeleteOwnLike() {
	user := s.createUser("liker@example.com")
	order := s.createOrder(user, "ORD-20260823-000009")
	s.currentUser = user.ID
	s.Equal(http.StatusCreated, s.likeOrder(order.ID).Code)

	var like entity.Like
	s.Require().NoError(s.db.First(&like).Error)

	w := s.perform(http.MethodDelete, fmt.Sprintf("/api/likes/%s", like.ID), nil)
	s.Equal(http.StatusNoContent, w.Code)

	var count int64
	s.db.Model(&entity.Like{}).Count(&count)
	s.Equal(int64(0), count)
}

func (s *LikeHandlerTestSuite) TestDeleteOthersLikeForbidden() {
	alice := s.createUser("alice@example.com")
	bob := s.createUser("bob@example.com")
	order := s.createOrder(alice, "ORD-20260823-000010")

	s.currentUser = alice.ID
	s.Equal(http.StatusCreated, s.likeOrder(order.ID).Code)

	var like entity.Like
	s.Require().NoError(s.db.First(&like).Error)

	// Even staff cannot remove someone else's like.
	s.currentUser = bob.ID
	s.currentStaff = true
	w := s.perform(http.MethodDelete, fmt.Sprintf("/api/likes/%s", like.ID), nil)
	s.Equal(http.StatusForbidden, w.Code)

	var count int64
	s.db.Model(&entity.Like{}).Count(&count)
	s.Equal(int64(1), count)
}

func (s *LikeHandlerTestSuite) TestDeleteMissingLike() {
	user := s.createUser("liker@example.com")
	s.currentUser = user.ID

	w := s.perform(http.MethodDelete, fmt.Sprintf("/api/likes/%s", uuid.New()), nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func TestLikeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LikeHandlerTestSuite))
}
