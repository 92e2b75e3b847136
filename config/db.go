package config

import (
	"fmt"
	"net"
	"path/filepath"
	"strings"
	"time"

	"github.com/chenson2018/website/global"
	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// gormLogWriter routes gorm's slow-query and error traces to logrus at warn
// level. Handlers log the classified error themselves.
type gormLogWriter struct{}

func (gormLogWriter) Printf(format string, args ...interface{}) {
	log.WithField("component", "gorm").Warnf(format, args...)
}

func mysqlDSN(cfg *Config) (string, error) {
	dbConf := cfg.Database

	port := dbConf.Port
	if port == "" {
		port = "3306"
	}

	mc := mysql.NewConfig()
	mc.User = dbConf.User
	mc.Passwd = dbConf.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(dbConf.Host, port)
	mc.DBName = dbConf.Name
	mc.ParseTime = true
	mc.Params = map[string]string{"charset": "utf8mb4"}
	if dbConf.Timezone != "" {
		loc, err := time.LoadLocation(dbConf.Timezone)
		if err != nil {
			return "", fmt.Errorf("database timezone: %w", err)
		}
		mc.Loc = loc
	}
	return mc.FormatDSN(), nil
}

func postgresDSN(cfg *Config) string {
	dbConf := cfg.Database

	port := dbConf.Port
	if port == "" {
		port = "5432"
	}
	sslmode := dbConf.Sslmode
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConf.Host, port, dbConf.User, dbConf.Password, dbConf.Name, sslmode,
	)
	if dbConf.Timezone != "" {
		dsn += " TimeZone=" + dbConf.Timezone
	}
	return dsn
}

// sqlitePath treats the database name as a file path, adding a .db extension
// when none is given.
func sqlitePath(cfg *Config) string {
	name := cfg.Database.Name
	if name == ":memory:" || strings.HasPrefix(name, "file:") || filepath.Ext(name) != "" {
		return name
	}
	return name + ".db"
}

func dialector(cfg *Config) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Database.Driver) {
	case "", "mysql":
		dsn, err := mysqlDSN(cfg)
		if err != nil {
			return nil, err
		}
		return gormmysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(postgresDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(sqlitePath(cfg)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// OpenDB opens the pooled database handle described by cfg. Connections are
// checked out per statement and returned to the pool when it completes.
func OpenDB(cfg *Config) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(gormLogWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("set up database: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initDB() {
	db, err := OpenDB(AppConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.WithFields(log.Fields{
		"driver": AppConfig.Database.Driver,
		"host":   AppConfig.Database.Host,
		"name":   AppConfig.Database.Name,
	}).Info("database connected")

	global.DB = db
}

// CloseDB releases every pooled connection.
func CloseDB() error {
	if global.DB == nil {
		return nil
	}
	sqlDB, err := global.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
