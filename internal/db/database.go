package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "github.com/gradpath/gradpath-backend/internal/types"
  "github.com/gradpath/gradpath-backend/internal/utils"
  "github.com/gradpath/gradpath-backend/internal/logger"
)

const (
  DriverPostgres = "postgres"
  DriverSqlite   = "sqlite"
)

// ResolveDriver reads DB_DRIVER and falls back to sqlite on anything it does
// not recognize. Sqlite is the development default; deployments set postgres.
func ResolveDriver(log *logger.Logger) string {
  driver := utils.GetEnv("DB_DRIVER", DriverSqlite, log)
  switch driver {
  case DriverPostgres, DriverSqlite:
    return driver
  default:
    if log != nil {
      log.Warn("Unknown DB_DRIVER, falling back to sqlite", "driver", driver)
    }
    return DriverSqlite
  }
}

type DatabaseService struct {
  db     *gorm.DB
  driver string
  log    *logger.Logger
}

func NewDatabaseService(log *logger.Logger) (*DatabaseService, error) {
  serviceLog := log.With("service", "DatabaseService")

  driver := ResolveDriver(log)
  var dialector gorm.Dialector
  switch driver {
  case DriverPostgres:
    log.Info("Loading environment variables...")
    postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
    postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
    postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
    postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
    postgresName := utils.GetEnv("POSTGRES_DB", "gradpath", log)
    postgresSSLMode := utils.GetEnv("POSTGRES_SSLMODE", "disable", log)
    log.Debug("Environment variables loaded")
    dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName, postgresSSLMode)
    dialector = postgres.Open(dsn)
  default:
    sqlitePath := utils.GetEnv("SQLITE_PATH", "gradpath.db", log)
    dialector = sqlite.Open(sqlitePath)
  }

  log.Info("Connecting to database...", "driver", driver)
  gormDB, err := gorm.Open(dialector, &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to database", "driver", driver, "error", err)
    return nil, fmt.Errorf("Failed to connect to database: %w", err)
  }

  return &DatabaseService{db: gormDB, driver: driver, log: serviceLog}, nil
}

func (s *DatabaseService) AutoMigrateAll() error {
  s.log.Info("Auto migrating tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.UserToken{},
    &types.Course{},
    &types.UserCourse{},
    &types.AdvisingSheet{},
    &types.ExtractionJob{},
  )
  if err != nil {
    s.log.Error("Auto migration failed", "error", err)
    return err
  }
  if s.driver != DriverPostgres {
    return nil
  }
  s.log.Info("Configuring foreign key relationships...")
  foreignKeys := []struct {
    table      string
    constraint string
    column     string
    refTable   string
    onDelete   string
  }{
    {"user_token", "fk_user_token_user_id", "user_id", "user", "CASCADE"},
    {"user_course", "fk_user_course_user_id", "user_id", "user", "CASCADE"},
    {"user_course", "fk_user_course_course_id", "course_id", "course", "CASCADE"},
    {"advising_sheet", "fk_advising_sheet_user_id", "user_id", "user", "CASCADE"},
    {"extraction_job", "fk_extraction_job_user_id", "user_id", "user", "CASCADE"},
    {"extraction_job", "fk_extraction_job_sheet_id", "sheet_id", "advising_sheet", "SET NULL"},
  }
  for _, fk := range foreignKeys {
    stmt := fmt.Sprintf(`
      ALTER TABLE %q DROP CONSTRAINT IF EXISTS %q;
      ALTER TABLE %q
      ADD CONSTRAINT %q
      FOREIGN KEY (%q)
      REFERENCES %q("id")
      ON DELETE %s
    `, fk.table, fk.constraint, fk.table, fk.constraint, fk.column, fk.refTable, fk.onDelete)
    if err := s.db.Exec(stmt).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", fk.constraint, err)
    }
  }
  return nil
}

func (s *DatabaseService) DB() *gorm.DB {
  return s.db
}

func (s *DatabaseService) Driver() string {
  return s.driver
}
