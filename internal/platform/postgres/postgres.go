package postgres

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jobpilot/internal/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(dsn string) (*Service, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	return &Service{db: db, log: logger.New("Postgres")}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

func (s *Service) Migrate(models ...interface{}) error {
	s.log.LogInfo("running migrations")
	return s.db.AutoMigrate(models...)
}

func (s *Service) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("postgres handle: %v", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		s.log.LogErrorf("Postgres health check failed: %v", err)
		return fmt.Errorf("postgres ping failed: %v", err)
	}
	return nil
}
