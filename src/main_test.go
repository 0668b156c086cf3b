package main

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"resort/src/db"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type TestSuite struct {
	suite.Suite
	DB   *gorm.DB
	Mock *sqlmock.Sqlmock
}

func (s *TestSuite) SetupSuite() {
	registerValidators()

	d, mock := NewMockDB()
	db.NewDB(d)
	s.DB = d
	s.Mock = &mock
}

func (s *TestSuite) TearDownSuite() {
	inner, err := s.DB.DB()
	if err != nil {
		log.Printf("Error accessing inner db instance: %s\n", err.Error())
		return
	}
	inner.Close()
}

func NewMockDB() (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

// staffMiddleware stands in for the JWT middleware so handler validation can
// be exercised without minting tokens.
func staffMiddleware(role string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set("id", uint(1))
		ctx.Set("email", "staff@example.com")
		ctx.Set("role", role)
	}
}

func (s *TestSuite) TestPingRoute() {
	router := setupRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 200, w.Code)
}

func (s *TestSuite) TestMaintenanceMode() {
	os.Setenv("MAINTENANCE_MODE", "true")
	defer os.Unsetenv("MAINTENANCE_MODE")

	router := setupRouter()
	router = maintenanceModeMiddleware(router)
	apiv1Group(router)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/api/v1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(s.T(), 503, w.Code)
}

func (s *TestSuite) TestAuthRoutes() {
	router := setupRouter()
	guestAuthRoutes(router)

	s.Run("Should reject login without a password", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"email": "someone@example.com",
		}
		sbody, _ := json.Marshal(&jbody)
		loginReq, _ := http.NewRequest("POST", "/api/v1/auth/login", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, loginReq)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject registration with a short password", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"name":     "Test Guest",
			"email":    "someone@example.com",
			"password": "short",
		}
		sbody, _ := json.Marshal(&jbody)
		registerReq, _ := http.NewRequest("POST", "/api/v1/auth/register", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, registerReq)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestRateRuleValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(staffMiddleware("manager"))
	rateHandlers(apiv1)

	post := func(body map[string]any) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		sbody, _ := json.Marshal(&body)
		req, _ := http.NewRequest("POST", "/api/v1/rates", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)
		return w
	}

	s.Run("Should reject an unsupported currency", func() {
		w := post(map[string]any{
			"name":       "standard room rate",
			"rate_type":  "standard",
			"base_price": 100,
			"currency":   "XYZ",
			"item_type":  "room",
		})
		assert.Equal(s.T(), 400, w.Code)

		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), "UNSUPPORTED_CURRENCY", gjson.Get(string(rbytes), "code").String())
	})

	s.Run("Should reject an inverted date range", func() {
		w := post(map[string]any{
			"name":       "spring promo",
			"rate_type":  "promotional",
			"base_price": 80,
			"currency":   "USD",
			"item_type":  "room",
			"start_date": "2026-03-10",
			"end_date":   "2026-03-01",
		})
		assert.Equal(s.T(), 400, w.Code)

		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), "INVALID_TIME_RANGE", gjson.Get(string(rbytes), "code").String())
	})

	s.Run("Should reject min stay above max stay", func() {
		w := post(map[string]any{
			"name":       "long stay",
			"rate_type":  "standard",
			"base_price": 100,
			"currency":   "USD",
			"item_type":  "room",
			"min_stay":   5,
			"max_stay":   2,
		})
		assert.Equal(s.T(), 400, w.Code)

		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), "INVALID_STAY_BOUNDS", gjson.Get(string(rbytes), "code").String())
	})

	s.Run("Should reject a percentage modifier below -100", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"name":  "impossible discount",
			"type":  "percentage",
			"value": -150,
		}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/rates/1/modifiers", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)

		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), "INVALID_MODIFIER_VALUE", gjson.Get(string(rbytes), "code").String())
	})

	s.Run("Should deny rate mutations to front desk staff", func() {
		w := httptest.NewRecorder()
		router2 := setupRouter()
		apiv2 := apiv1Group(router2)
		apiv2.Use(staffMiddleware("front_desk"))
		rateHandlers(apiv2)

		req, _ := http.NewRequest("DELETE", "/api/v1/rates/1", nil)
		router2.ServeHTTP(w, req)

		assert.Equal(s.T(), 403, w.Code)
	})
}

func (s *TestSuite) TestAllocationValidation() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(staffMiddleware("front_desk"))
	allocationHandlers(apiv1)

	s.Run("Should reject a malformed slot time", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"resource_id": 1,
			"starts_at":   "next tuesday",
			"ends_at":     "2026-09-03 12:00:00 +08:00",
		}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/allocations", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject an end before the start", func() {
		w := httptest.NewRecorder()
		jbody := map[string]any{
			"resource_id": 1,
			"starts_at":   "2026-09-03 14:00:00 +08:00",
			"ends_at":     "2026-09-01 12:00:00 +08:00",
		}
		sbody, _ := json.Marshal(&jbody)
		req, _ := http.NewRequest("POST", "/api/v1/allocations", strings.NewReader(string(sbody)))
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)
	})
}

func (s *TestSuite) TestBlockedDatesWindow() {
	router := setupRouter()
	apiv1 := apiv1Group(router)
	apiv1.Use(staffMiddleware("front_desk"))
	availabilityHandlers(apiv1)

	s.Run("Should reject an empty window", func() {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/availability/blocked", nil)
		q := req.URL.Query()
		q.Set("resource", "1")
		q.Set("start", "2026-09-03 12:00:00 +08:00")
		q.Set("end", "2026-09-03 12:00:00 +08:00")
		req.URL.RawQuery = q.Encode()
		router.ServeHTTP(w, req)

		assert.Equal(s.T(), 400, w.Code)

		rbytes, err := io.ReadAll(w.Body)
		assert.Nil(s.T(), err)
		assert.Equal(s.T(), "INVALID_TIME_RANGE", gjson.Get(string(rbytes), "code").String())
	})
}

func TestRunner(t *testing.T) {
	suite.Run(t, new(TestSuite))
}
