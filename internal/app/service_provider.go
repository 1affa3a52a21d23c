package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/gomail.v2"
	postgresDriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	goredis "github.com/redis/go-redis/v9"

	"github.com/meetpup/meetpup/internal/adapters/config"
	httpadapter "github.com/meetpup/meetpup/internal/adapters/primary/http"
	"github.com/meetpup/meetpup/internal/adapters/secondary/postgres"
	"github.com/meetpup/meetpup/internal/adapters/secondary/redis"
	"github.com/meetpup/meetpup/internal/adapters/secondary/redis/sessions"
	"github.com/meetpup/meetpup/internal/adapters/secondary/s3"
	"github.com/meetpup/meetpup/internal/adapters/secondary/smtp"
	"github.com/meetpup/meetpup/internal/adapters/secondary/token"
	"github.com/meetpup/meetpup/internal/domain/service"
	"github.com/meetpup/meetpup/internal/ports/primary"
	"github.com/meetpup/meetpup/internal/ports/secondary"
	"github.com/meetpup/meetpup/pkg/logger"
	"github.com/meetpup/meetpup/pkg/logger/types"
)

// serviceProvider wires the dependency graph lazily. Every accessor builds
// its dependency on first use and memoizes it.
type serviceProvider struct {
	cfg *config.Config

	// Infrastructure
	db           *gorm.DB
	redisClient  *goredis.Client
	smtpDialer   *gomail.Dialer
	smtpClient   secondary.MailClient
	blobStorage  secondary.BlobStorage
	tokenManager secondary.TokenManager
	sessionStore secondary.SessionStore

	// HTTP
	server *httpadapter.Server

	// Storage layer
	userRepo       secondary.UserRepository
	groupRepo      secondary.GroupRepository
	eventRepo      secondary.EventRepository
	venueRepo      secondary.VenueRepository
	membershipRepo secondary.MembershipRepository
	attendanceRepo secondary.AttendanceRepository
	imageRepo      secondary.ImageRepository

	// Service layer
	userService        primary.UserService
	sessionService     primary.SessionService
	groupService       primary.GroupService
	eventService       primary.EventService
	venueService       primary.VenueService
	membershipService  primary.MembershipService
	attendanceService  primary.AttendanceService
	imageService       primary.ImageService
	maintenanceService primary.MaintenanceService
}

func newServiceProvider() *serviceProvider {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(fmt.Errorf("failed to create config: %w", err))
	}

	return &serviceProvider{
		cfg: cfg,
	}
}

func (s *serviceProvider) Cfg() *config.Config {
	return s.cfg
}

// Infrastructure dependencies

func (s *serviceProvider) DB() *gorm.DB {
	if s.db == nil {
		var gormConfig *gorm.Config
		if s.cfg.Logger.Debug() {
			newLogger := gormLogger.New(
				log.New(os.Stdout, "\r\n", log.LstdFlags),
				gormLogger.Config{
					SlowThreshold: time.Second,
					LogLevel:      gormLogger.Info,
					Colorful:      true,
				},
			)
			gormConfig = &gorm.Config{
				TranslateError: true,
				Logger:         newLogger,
			}
		} else {
			gormConfig = &gorm.Config{
				TranslateError: true,
			}
		}

		database, err := gorm.Open(postgresDriver.Open(s.cfg.PG.DSN()), gormConfig)
		if err != nil {
			panic(fmt.Errorf("failed to connect to the database: %w", err))
		}
		logger.Log.Info("Successfully connected to the database")

		sqlDB, err := database.DB()
		if err != nil {
			panic(fmt.Errorf("failed to get underlying sql.DB: %w", err))
		}

		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
		sqlDB.SetConnMaxIdleTime(1 * time.Minute)

		if err := database.AutoMigrate(postgres.Migrations...); err != nil {
			panic(fmt.Errorf("failed to migrate database: %w", err))
		}

		s.db = database
	}

	return s.db
}

func (s *serviceProvider) RedisClient() *goredis.Client {
	if s.redisClient == nil {
		r, err := redis.New(redis.Options{
			Host:     s.cfg.Redis.Host(),
			Port:     s.cfg.Redis.Port(),
			Password: s.cfg.Redis.Password(),
		})
		if err != nil {
			panic(fmt.Errorf("failed to connect to redis: %w", err))
		}

		s.redisClient = r
	}

	return s.redisClient
}

func (s *serviceProvider) SessionStore() secondary.SessionStore {
	if s.sessionStore == nil {
		s.sessionStore = sessions.NewStorage(s.RedisClient())
	}

	return s.sessionStore
}

func (s *serviceProvider) TokenManager() secondary.TokenManager {
	if s.tokenManager == nil {
		m, err := token.NewManager(s.cfg.JWT.Secret(), s.cfg.JWT.TTL())
		if err != nil {
			panic(fmt.Errorf("failed to create token manager: %w", err))
		}

		s.tokenManager = m
	}

	return s.tokenManager
}

func (s *serviceProvider) BlobStorage() secondary.BlobStorage {
	if s.blobStorage == nil {
		storage, err := s3.NewStorage(context.Background(), s3.Options{
			Region:    s.cfg.S3.Region(),
			Bucket:    s.cfg.S3.Bucket(),
			PublicURL: s.cfg.S3.PublicURL(),
		})
		if err != nil {
			panic(fmt.Errorf("failed to create blob storage: %w", err))
		}

		s.blobStorage = storage
	}

	return s.blobStorage
}

func (s *serviceProvider) SMTPDialer() *gomail.Dialer {
	if s.smtpDialer == nil {
		s.smtpDialer = gomail.NewDialer(
			s.cfg.SMTP.Host(),
			s.cfg.SMTP.Port(),
			s.cfg.SMTP.Login(),
			s.cfg.SMTP.Password(),
		)
	}

	return s.smtpDialer
}

// MailClient is nil when smtp is disabled; the user service treats a nil
// client as "skip the welcome mail".
func (s *serviceProvider) MailClient() secondary.MailClient {
	if s.smtpClient == nil && s.cfg.SMTP.Enabled() {
		s.smtpClient = smtp.NewClient(s.SMTPDialer(), s.cfg.SMTP.From())
	}

	return s.smtpClient
}

// Storage layer

func (s *serviceProvider) UserRepo() secondary.UserRepository {
	if s.userRepo == nil {
		s.userRepo = postgres.NewUserRepository(s.DB())
	}

	return s.userRepo
}

func (s *serviceProvider) GroupRepo() secondary.GroupRepository {
	if s.groupRepo == nil {
		s.groupRepo = postgres.NewGroupRepository(s.DB())
	}

	return s.groupRepo
}

func (s *serviceProvider) EventRepo() secondary.EventRepository {
	if s.eventRepo == nil {
		s.eventRepo = postgres.NewEventRepository(s.DB())
	}

	return s.eventRepo
}

func (s *serviceProvider) VenueRepo() secondary.VenueRepository {
	if s.venueRepo == nil {
		s.venueRepo = postgres.NewVenueRepository(s.DB())
	}

	return s.venueRepo
}

func (s *serviceProvider) MembershipRepo() secondary.MembershipRepository {
	if s.membershipRepo == nil {
		s.membershipRepo = postgres.NewMembershipRepository(s.DB())
	}

	return s.membershipRepo
}

func (s *serviceProvider) AttendanceRepo() secondary.AttendanceRepository {
	if s.attendanceRepo == nil {
		s.attendanceRepo = postgres.NewAttendanceRepository(s.DB())
	}

	return s.attendanceRepo
}

func (s *serviceProvider) ImageRepo() secondary.ImageRepository {
	if s.imageRepo == nil {
		s.imageRepo = postgres.NewImageRepository(s.DB())
	}

	return s.imageRepo
}

// Service layer

func (s *serviceProvider) UserService() primary.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.namedLogger("user"), s.UserRepo(), s.MailClient())
	}

	return s.userService
}

func (s *serviceProvider) SessionService() primary.SessionService {
	if s.sessionService == nil {
		s.sessionService = service.NewSessionService(
			s.namedLogger("session"),
			s.UserRepo(),
			s.TokenManager(),
			s.SessionStore(),
		)
	}

	return s.sessionService
}

func (s *serviceProvider) GroupService() primary.GroupService {
	if s.groupService == nil {
		s.groupService = service.NewGroupService(s.GroupRepo(), s.MembershipRepo())
	}

	return s.groupService
}

func (s *serviceProvider) EventService() primary.EventService {
	if s.eventService == nil {
		s.eventService = service.NewEventService(
			s.EventRepo(),
			s.GroupRepo(),
			s.VenueRepo(),
			s.MembershipRepo(),
		)
	}

	return s.eventService
}

func (s *serviceProvider) VenueService() primary.VenueService {
	if s.venueService == nil {
		s.venueService = service.NewVenueService(s.VenueRepo(), s.GroupRepo(), s.MembershipRepo())
	}

	return s.venueService
}

func (s *serviceProvider) MembershipService() primary.MembershipService {
	if s.membershipService == nil {
		s.membershipService = service.NewMembershipService(s.MembershipRepo(), s.GroupRepo(), s.UserRepo())
	}

	return s.membershipService
}

func (s *serviceProvider) AttendanceService() primary.AttendanceService {
	if s.attendanceService == nil {
		s.attendanceService = service.NewAttendanceService(
			s.AttendanceRepo(),
			s.EventRepo(),
			s.GroupRepo(),
			s.MembershipRepo(),
			s.UserRepo(),
		)
	}

	return s.attendanceService
}

func (s *serviceProvider) ImageService() primary.ImageService {
	if s.imageService == nil {
		s.imageService = service.NewImageService(
			s.namedLogger("image"),
			s.ImageRepo(),
			s.GroupRepo(),
			s.EventRepo(),
			s.MembershipRepo(),
			s.AttendanceRepo(),
			s.BlobStorage(),
		)
	}

	return s.imageService
}

func (s *serviceProvider) MaintenanceService() primary.MaintenanceService {
	if s.maintenanceService == nil {
		s.maintenanceService = service.NewMaintenanceService(s.namedLogger("maintenance"), s.GroupRepo())
	}

	return s.maintenanceService
}

// HTTP

func (s *serviceProvider) Server() *httpadapter.Server {
	if s.server == nil {
		s.server = httpadapter.NewServer(httpadapter.Options{
			CookieName:   s.cfg.HTTP.CookieName(),
			CookieSecure: s.cfg.HTTP.CookieSecure(),
			Logger:       s.namedLogger("http"),

			Users:       s.UserService(),
			Sessions:    s.SessionService(),
			Groups:      s.GroupService(),
			Events:      s.EventService(),
			Venues:      s.VenueService(),
			Memberships: s.MembershipService(),
			Attendance:  s.AttendanceService(),
			Images:      s.ImageService(),
		})
	}

	return s.server
}

func (s *serviceProvider) namedLogger(name string) *types.Logger {
	l, err := logger.Named(name)
	if err != nil {
		panic(fmt.Errorf("failed to create %s logger: %w", name, err))
	}

	return l
}
