package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/railgo/railgo/internal/domain"
	redisrepo "github.com/railgo/railgo/internal/repository/redis"
	"github.com/railgo/railgo/internal/service"
	"github.com/railgo/railgo/internal/service/admin"
	"github.com/railgo/railgo/internal/service/auth"
	"github.com/railgo/railgo/internal/service/booking"
	"github.com/railgo/railgo/internal/service/query"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterConfig struct {
	AdminToken string
}

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	cfg RouterConfig,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public API
	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))

	r.GET("/trains", handleSearchTrains(svcs))
	r.GET("/trains/:id", handleGetTrain(svcs))
	r.GET("/trains/:id/availability", handleGetAvailability(svcs))

	// Authenticated API
	authed := r.Group("/", AuthRequired(svcs.Auth))
	{
		authed.POST("/auth/logout", handleLogout(svcs))
		authed.POST("/bookings", handleCreateBooking(svcs, idem))
		authed.GET("/bookings", handleListBookings(svcs))
		authed.GET("/bookings/:id", handleGetBooking(svcs))
	}

	// Admin API
	adm := r.Group("/admin", AdminAuth(cfg.AdminToken))
	{
		adm.POST("/trains", handleCreateTrain(svcs))
		adm.POST("/trains/batch", handleBatchCreateTrains(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Register a user
// @Param    req body  RegisterRequest true "payload"
// @Success  201 {object} RegisterResponse
// @Failure  400 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "email already registered"
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		u, err := svcs.Auth.Register(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, RegisterResponse{
			Message:       "User created successfully",
			AccountNumber: u.AccountNumber,
		})
	}
}

// @Summary  Log in
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} LoginResponse
// @Failure  401 {object} ErrorResponse "invalid credentials"
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		token, u, err := svcs.Auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, LoginResponse{
			Token:         token,
			Email:         u.Email,
			AccountNumber: u.AccountNumber,
		})
	}
}

// @Summary  Log out
// @Security BearerAuth
// @Success  204
// @Router   /auth/logout [post]
func handleLogout(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Auth.Logout(c.Request.Context(), bearerToken(c)); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// @Summary  Search trains by city pair and optional date
// @Param    departureCity query string true  "departure city"
// @Param    arrivalCity   query string true  "arrival city"
// @Param    date          query string false "YYYY-MM-DD"
// @Success  200 {array}  domain.Train
// @Failure  400 {object} ErrorResponse
// @Router   /trains [get]
func handleSearchTrains(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		departureCity := c.Query("departureCity")
		arrivalCity := c.Query("arrivalCity")
		if departureCity == "" || arrivalCity == "" {
			badRequest(c, "departureCity and arrivalCity are required")
			return
		}

		var day *time.Time
		if d := c.Query("date"); d != "" {
			parsed, err := parseDay(d)
			if err != nil {
				badRequest(c, "invalid date (YYYY-MM-DD)")
				return
			}
			day = &parsed
		}

		trains, err := svcs.Query.Search(c.Request.Context(), departureCity, arrivalCity, day)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, trains, "public, max-age=15", true)
	}
}

// @Summary  Get train
// @Param    id  path  int  true  "Train ID"
// @Success  200 {object} domain.Train
// @Failure  404 {object} ErrorResponse
// @Router   /trains/{id} [get]
func handleGetTrain(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		trainID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		t, err := svcs.Query.GetTrain(c.Request.Context(), trainID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, t, "public, max-age=60", true)
	}
}

// @Summary  Get remaining seats
// @Param    id  path  int  true  "Train ID"
// @Success  200 {object} domain.TrainAvailability
// @Failure  404 {object} ErrorResponse
// @Router   /trains/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		trainID, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		avail, err := svcs.Query.Availability(c.Request.Context(), trainID)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 5s
		writeJSONWithCache(c, http.StatusOK, avail, "public, max-age=5", true)
	}
}

// @Summary  Create booking (idempotent)
// @Security BearerAuth
// @Param    req body  CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} domain.Booking
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "train not found"
// @Failure  409 {object} ErrorResponse "not enough seats / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /bookings [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(ident.Email, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		rlKey := "ip:" + c.ClientIP()

		b, err := svcs.Booking.Create(
			c.Request.Context(),
			ident,
			req.TrainID,
			req.Seats,
			req.Options.toDomain(),
			rlKey,
		)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if errors.Is(err, booking.ErrRateLimited) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: "rate limited"},
				)
				return
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			payload, _ := json.Marshal(b)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(payload))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, b)
	}
}

// @Summary  List the caller's bookings
// @Security BearerAuth
// @Success  200 {array}  domain.BookingWithTrain
// @Router   /bookings [get]
func handleListBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		bookings, err := svcs.Booking.ListByUser(c.Request.Context(), ident.Email)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, bookings)
	}
}

// @Summary  Get one of the caller's bookings
// @Security BearerAuth
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200 {object} domain.BookingWithTrain
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := identityFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, "invalid booking id")
			return
		}

		bt, err := svcs.Booking.GetByID(c.Request.Context(), ident.Email, id)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, bt)
	}
}

// @Summary  Create train
// @Param    req body  CreateTrainRequest true "payload"
// @Success  201 {object} CreateTrainResponse
// @Router   /admin/trains [post]
func handleCreateTrain(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateTrainRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		t, err := req.toDomain()
		if err != nil {
			badRequest(c, "invalid departure_date (RFC3339)")
			return
		}

		id, err := svcs.Admin.CreateTrain(c.Request.Context(), t)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, CreateTrainResponse{TrainID: id})
	}
}

// @Summary  Batch create trains
// @Param    req body  BatchCreateTrainsRequest true "payload"
// @Success  201 {object} map[string]int
// @Router   /admin/trains/batch [post]
func handleBatchCreateTrains(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req BatchCreateTrainsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		trains := make([]domain.Train, 0, len(req.Trains))
		for _, in := range req.Trains {
			t, err := in.toDomain()
			if err != nil {
				badRequest(c, "invalid departure_date (RFC3339)")
				return
			}
			trains = append(trains, t)
		}

		if err := svcs.Admin.BatchCreateTrains(c.Request.Context(), trains); err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"created": len(trains)})
	}
}

// --- Helpers ---

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	s := c.Param(name)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// auth service
	case errors.Is(err, auth.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
	case errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "user already exists"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
	case errors.Is(err, auth.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
	// booking service
	case errors.Is(err, booking.ErrInvalidSeats):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "seats must be at least 1"})
	case errors.Is(err, booking.ErrTrainNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "train not found"})
	case errors.Is(err, booking.ErrInsufficientSeats):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "not enough seats available"})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
	// query service
	case errors.Is(err, query.ErrTrainNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "train not found"})
	// admin service
	case errors.Is(err, admin.ErrInvalidTrain):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid train"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
