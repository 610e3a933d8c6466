package initializers

import (
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"library-service/internals/config"
)

// ConnectDatabase opens the database named by DATABASE_URL. Postgres DSNs
// (postgres:// or key=value form) use the postgres driver; anything else is
// treated as a SQLite file path, which is also the dev default.
func ConnectDatabase(cfg config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	}
	if isPostgresDSN(cfg.DatabaseURL) {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), gormCfg)
	}
	dsn := strings.TrimPrefix(cfg.DatabaseURL, "sqlite://")
	return gorm.Open(sqlite.Open(dsn), gormCfg)
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
