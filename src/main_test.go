package main

import (
	"bytes"
	"daily/src/middlewares"
	"daily/src/models"
	"daily/src/types"
	"daily/src/utils"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/suite"
)

type MainTestSuite struct {
	suite.Suite
	router *gin.Engine
}

func (s *MainTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("epochdate", epochDateValidatorFunc)
	}

	s.router = gin.New()
	authorized := s.router.Group(apiPrefix)
	// Binding and shape checks only need an authenticated identity.
	authorized.Use(func(ctx *gin.Context) {
		ctx.Set("id", uint(1))
	})
	rentHandlers(authorized)
	productHandlers(authorized)

	protected := s.router.Group("/protected")
	protected.Use(middlewares.AuthMiddleware)
	protected.GET("/ping", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})
}

func (s *MainTestSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *MainTestSuite) TestCreateRentRejectsEmptyBody() {
	w := s.postJSON("/api/v1/rents", map[string]any{})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *MainTestSuite) TestCreateRentRejectsReversedDates() {
	from := time.Now().AddDate(0, 0, 7).UnixMilli()
	w := s.postJSON("/api/v1/rents", map[string]any{
		"product":         1,
		"owner":           2,
		"rent_from_date":  from,
		"rent_to_date":    from - 86_400_000,
		"delivery_method": "PICKUP",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *MainTestSuite) TestCreateRentRejectsSecondResolutionDates() {
	// epoch seconds instead of milliseconds
	now := time.Now().Unix()
	w := s.postJSON("/api/v1/rents", map[string]any{
		"product":         1,
		"owner":           2,
		"rent_from_date":  now,
		"rent_to_date":    now + 86_400,
		"delivery_method": "PICKUP",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *MainTestSuite) TestCreateRentRejectsUnknownDeliveryMethod() {
	from := time.Now().AddDate(0, 0, 7).UnixMilli()
	w := s.postJSON("/api/v1/rents", map[string]any{
		"product":         1,
		"owner":           2,
		"rent_from_date":  from,
		"rent_to_date":    from + 4*86_400_000,
		"delivery_method": "DRONE",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *MainTestSuite) TestCreateProductRejectsMissingPrice() {
	w := s.postJSON("/api/v1/products", map[string]any{
		"title":                         "Ladder",
		"minimal_rental_period_in_days": 2,
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *MainTestSuite) TestAuthMiddlewareRejectsMissingToken() {
	req := httptest.NewRequest(http.MethodGet, "/protected/ping", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *MainTestSuite) TestAuthMiddlewareRejectsBareBearerHeader() {
	req := httptest.NewRequest(http.MethodGet, "/protected/ping", nil)
	req.Header.Set("Authorization", "Bearer")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *MainTestSuite) TestAuthMiddlewareRejectsMalformedToken() {
	req := httptest.NewRequest(http.MethodGet, "/protected/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *MainTestSuite) TestAccessTokenRoundtrip() {
	user := &models.User{ID: 7, Name: "jane", Role: "member", UID: "uid-7"}
	token, err := utils.CreateAccessToken(user, time.Hour)
	s.Require().NoError(err)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	s.Require().NoError(err)
	s.True(parsed.Valid)
	s.Equal("7", claims.Subject)
	s.Equal("jane", claims.Username)
	s.Equal("uid-7", claims.UID)
}

func TestMainTestSuite(t *testing.T) {
	suite.Run(t, new(MainTestSuite))
}
