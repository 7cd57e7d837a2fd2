package db

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"appliance-service-backend/config"
	"appliance-service-backend/internal/model"
)

// Models lists every table in dependency order.
var Models = []any{
	&model.Client{},
	&model.ApplianceType{},
	&model.Brand{},
	&model.Technician{},
	&model.OrderCounter{},
	&model.ServiceOrder{},
	&model.ServicePart{},
	&model.ServiceLabor{},
	&model.Appointment{},
	&model.TechnicianSubscription{},
}

// Init initializes the database connection and runs migrations.
func Init(cfg *config.DatabaseConfig, log logrus.FieldLogger) (*gorm.DB, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	log = log.WithField("component", "db")

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  gormLogLevel(log),
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeMinutes > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	}

	log.Info("running database migrations")
	if err := db.AutoMigrate(Models...); err != nil {
		return nil, fmt.Errorf("automigrate failed: %w", err)
	}

	if cfg.InstallTriggers && cfg.Driver == "postgres" {
		log.Info("installing order number trigger")
		if err := applyOrderNumberDDL(db); err != nil {
			log.WithError(err).Warn("order number trigger not installed, numbers are still assigned by the application")
		}
	}

	log.Info("database initialization complete")
	return db, nil
}

// gormLogLevel echoes SQL only when the application logs at debug level.
func gormLogLevel(log logrus.FieldLogger) logger.LogLevel {
	var level logrus.Level
	switch l := log.(type) {
	case *logrus.Logger:
		level = l.GetLevel()
	case *logrus.Entry:
		level = l.Logger.GetLevel()
	default:
		return logger.Warn
	}
	if level >= logrus.DebugLevel {
		return logger.Info
	}
	return logger.Warn
}

// applyOrderNumberDDL installs a trigger that numbers orders inserted without
// an order number, e.g. by manual SQL against the database. It shares the
// order_counters table with the application so the sequences never collide.
func applyOrderNumberDDL(db *gorm.DB) error {
	ddls := []string{
		`CREATE OR REPLACE FUNCTION assign_order_number() RETURNS trigger AS $$
DECLARE
	y integer := EXTRACT(YEAR FROM now())::integer;
	n integer;
BEGIN
	IF NEW.order_number IS NOT NULL AND NEW.order_number <> '' THEN
		RETURN NEW;
	END IF;
	INSERT INTO order_counters (year, counter) VALUES (y, 1)
		ON CONFLICT (year) DO UPDATE SET counter = order_counters.counter + 1
		RETURNING counter INTO n;
	NEW.order_number := 'OS-' || y || '-' || lpad(n::text, 5, '0');
	RETURN NEW;
END;
$$ LANGUAGE plpgsql;`,
		"DROP TRIGGER IF EXISTS service_orders_order_number ON service_orders;",
		"CREATE TRIGGER service_orders_order_number BEFORE INSERT ON service_orders " +
			"FOR EACH ROW EXECUTE FUNCTION assign_order_number();",
	}

	for _, ddl := range ddls {
		if err := db.Exec(ddl).Error; err != nil {
			return fmt.Errorf("DDL failed on %q: %w", ddl, err)
		}
	}
	return nil
}
