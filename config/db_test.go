package config

import (
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func testConfig(driver string) *Config {
	cfg := &Config{}
	cfg.Database.Driver = driver
	cfg.Database.Host = "localhost"
	cfg.Database.User = "web"
	cfg.Database.Password = "p@ss:word"
	cfg.Database.Name = "website"
	return cfg
}

func TestMySQLDSN(t *testing.T) {
	cfg := testConfig("mysql")

	dsn, err := mysqlDSN(cfg)
	if err != nil {
		t.Fatalf("mysqlDSN() error = %v", err)
	}

	parsed, err := mysql.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("ParseDSN(%q) error = %v", dsn, err)
	}
	if parsed.User != "web" || parsed.Passwd != "p@ss:word" {
		t.Errorf("credentials = %q/%q, want web/p@ss:word", parsed.User, parsed.Passwd)
	}
	if parsed.Addr != "localhost:3306" {
		t.Errorf("Addr = %q, want localhost:3306", parsed.Addr)
	}
	if parsed.DBName != "website" {
		t.Errorf("DBName = %q, want website", parsed.DBName)
	}
	if !parsed.ParseTime {
		t.Error("ParseTime = false, want true")
	}

	cfg.Database.Port = "3307"
	cfg.Database.Timezone = "Not/AZone"
	if _, err := mysqlDSN(cfg); err == nil {
		t.Error("mysqlDSN() with bad timezone: error = nil, want error")
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := testConfig("postgres")
	cfg.Database.Password = "secret"

	want := "host=localhost port=5432 user=web password=secret dbname=website sslmode=disable"
	if got := postgresDSN(cfg); got != want {
		t.Errorf("postgresDSN() = %q, want %q", got, want)
	}

	cfg.Database.Port = "6543"
	cfg.Database.Sslmode = "require"
	cfg.Database.Timezone = "UTC"
	want = "host=localhost port=6543 user=web password=secret dbname=website sslmode=require TimeZone=UTC"
	if got := postgresDSN(cfg); got != want {
		t.Errorf("postgresDSN() = %q, want %q", got, want)
	}
}

func TestSqlitePath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"website", "website.db"},
		{"data/site.sqlite", "data/site.sqlite"},
		{":memory:", ":memory:"},
		{"file:test?mode=memory", "file:test?mode=memory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("sqlite")
			cfg.Database.Name = tt.name
			if got := sqlitePath(cfg); got != tt.want {
				t.Errorf("sqlitePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpenDB(t *testing.T) {
	t.Run("unsupported driver", func(t *testing.T) {
		if _, err := OpenDB(testConfig("oracle")); err == nil {
			t.Fatal("OpenDB() error = nil, want error")
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig("sqlite")
		cfg.Database.Name = filepath.Join(t.TempDir(), "website.db")
		cfg.Database.MaxOpenConns = 2

		db, err := OpenDB(cfg)
		if err != nil {
			t.Fatalf("OpenDB() error = %v", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			t.Fatalf("DB() error = %v", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			t.Fatalf("Ping() error = %v", err)
		}
		if got := sqlDB.Stats().MaxOpenConnections; got != 2 {
			t.Errorf("MaxOpenConnections = %d, want 2", got)
		}
	})
}

func TestGormLogWriter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	prev := log.StandardLogger().ReplaceHooks(logger.Hooks)
	defer log.StandardLogger().ReplaceHooks(prev)

	gormLogWriter{}.Printf("%s %s", "article_controller.go:89", "sql: database is closed")

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("no log entry written")
	}
	if entry.Level != log.WarnLevel {
		t.Errorf("level = %v, want %v", entry.Level, log.WarnLevel)
	}
	if entry.Message != "article_controller.go:89 sql: database is closed" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Data["component"] != "gorm" {
		t.Errorf("component = %v, want gorm", entry.Data["component"])
	}
}
