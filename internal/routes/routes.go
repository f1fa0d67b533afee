package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/auth"
	"github.com/BruksfildServices01/barber-booking/internal/config"
	"github.com/BruksfildServices01/barber-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-booking/internal/infra/repository"
	"github.com/BruksfildServices01/barber-booking/internal/middleware"
	"github.com/BruksfildServices01/barber-booking/internal/ratelimit"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	ucAccount "github.com/BruksfildServices01/barber-booking/internal/usecase/account"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	ucBarber "github.com/BruksfildServices01/barber-booking/internal/usecase/barber"
	ucDashboard "github.com/BruksfildServices01/barber-booking/internal/usecase/dashboard"
	ucSchedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Audit  *audit.Dispatcher

	// LoginLimiter throttles POST /api/auth/login.
	LoginLimiter ratelimit.Limiter
	// Photos is nil when photo storage is not configured.
	Photos ucBarber.PhotoStore
	// Clock defaults to the wall clock in the shop's timezone.
	Clock timezone.Clock
}

// NewEngine builds a bare engine whose ClientIP only honours forwarding
// headers from cfg.TrustedProxies.
func NewEngine(cfg *config.Config) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	return r, nil
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	loc := timezone.Location(cfg.ShopTimezone)
	clock := d.Clock
	if clock == nil {
		clock = timezone.NewClock(loc)
	}

	// ----- Middleware -----
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(d.Log),
		middleware.Recovery(d.Log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	// ----- Infra -----
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB, cfg.StoreTimeout)
	shiftRepo := infraRepo.NewShiftGormRepository(d.DB, cfg.StoreTimeout)
	barberRepo := infraRepo.NewBarberGormRepository(d.DB, cfg.StoreTimeout)
	credentialRepo := infraRepo.NewCredentialGormRepository(d.DB, cfg.StoreTimeout)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, clock)
	guard := auth.NewGuard(credentialRepo, barberRepo, tokens)

	// ----- Use cases -----
	bookUC := ucAppointment.NewBookAppointment(appointmentRepo, shiftRepo, loc, d.Audit)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit)

	getShiftUC := ucSchedule.NewGetShift(shiftRepo)
	listShiftsUC := ucSchedule.NewListShifts(shiftRepo)
	setShiftUC := ucSchedule.NewSetShift(shiftRepo, barberRepo, d.Audit)
	computeSlotsUC := ucSchedule.NewComputeSlots(shiftRepo, appointmentRepo, loc)

	listBarbersUC := ucBarber.NewListBarbers(barberRepo)
	createBarberUC := ucBarber.NewCreateBarber(barberRepo, d.Audit)
	checkInUC := ucBarber.NewToggleCheckIn(barberRepo, d.Audit)
	photoUC := ucBarber.NewUploadPhoto(barberRepo, d.Photos, d.Audit)

	dashboardUC := ucDashboard.NewGetDashboard(appointmentRepo, barberRepo, cfg.AppointmentPrice, clock)
	changePasswordUC := ucAccount.NewChangePassword(credentialRepo, d.Audit)

	// ----- Handlers -----
	authHandler := handlers.NewAuthHandler(guard)
	meHandler := handlers.NewMeHandler(changePasswordUC, checkInUC, dashboardUC)
	barberHandler := handlers.NewBarberHandler(listBarbersUC, createBarberUC, photoUC)
	shiftHandler := handlers.NewShiftHandler(getShiftUC, listShiftsUC, setShiftUC)
	slotsHandler := handlers.NewSlotsHandler(computeSlotsUC)
	appointmentHandler := handlers.NewAppointmentHandler(bookUC, listAppointmentsUC, deleteAppointmentUC, loc)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ----- Public -----
		login := []gin.HandlerFunc{authHandler.Login}
		if d.LoginLimiter != nil {
			login = append([]gin.HandlerFunc{middleware.RateLimit(d.LoginLimiter, d.Log)}, login...)
		}
		api.POST("/auth/login", login...)

		api.GET("/barbers", barberHandler.List)
		api.GET("/barbers/:id/shifts", shiftHandler.ListForBarber)
		api.GET("/shifts", shiftHandler.Get)
		api.GET("/slots", slotsHandler.Get)
		api.POST("/appointments", appointmentHandler.Book)

		// ----- Authenticated -----
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(guard))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me/password", meHandler.ChangePassword)
			secured.POST("/me/check-in", meHandler.ToggleCheckIn)
			secured.GET("/me/dashboard", meHandler.Dashboard)

			secured.POST("/barbers", barberHandler.Create)
			secured.PUT("/barbers/:id/photo", barberHandler.UploadPhoto)

			secured.PUT("/shifts", shiftHandler.Set)

			secured.GET("/appointments", appointmentHandler.List)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
		}
	}
}
