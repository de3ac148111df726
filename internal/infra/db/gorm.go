package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect はPostgresへ接続して*gorm.DBを返す。
// DATABASE_URLがあればそれをDSNとしてそのまま使い、
// 無ければPOSTGRES_*の各変数からDSNを組み立てる。
func Connect() (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsnFromEnv()), &gorm.Config{})
}

func dsnFromEnv() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("POSTGRES_HOST", "localhost"),
		envOr("POSTGRES_PORT", "5432"),
		envOr("POSTGRES_USER", "postgres"),
		envOr("POSTGRES_PASSWORD", "postgres"),
		envOr("POSTGRES_DB", "storefront"),
		envOr("POSTGRES_SSLMODE", "disable"),
	)
}

func envOr(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
