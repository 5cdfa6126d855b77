package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSubjects mirrors the sidebar shipped with the first classroom deployments.
var DefaultSubjects = []string{"OS", "DBMS", "FSAD", "Frontend", "OOPs", "CN", "CIS", "DAA", "CLOUD", "NURAL NETOWRK"}

type (
	Config struct {
		AppName      string
		Build        string
		Env          string // DEV (local; default), TEST, QA, PROD
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string

		Server ServerConfig
		Portal PortalConfig
		Redis  RedisConfig
	}

	ServerConfig struct {
		Host               string
		Address            string
		DebugHost          string
		DisableReqLogs     bool
		ReadTimeout        time.Duration
		WriteTimeout       time.Duration
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
	}

	PortalConfig struct {
		Subjects      []string
		NoticeTTL     time.Duration
		NoticeBackend string // memory | redis
	}

	RedisConfig struct {
		Addr      string
		KeyPrefix string
	}
)

// NewConfig loads the configuration from the environment (and `config/.env.<env>` if present).
func NewConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("build", "develop")
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Class Portal")
	v.SetDefault("secretKey", "0s9-dk@x!u3b^r+fz8w(pl=7e_qv2#hm4t$c&j)n6ya1g5")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":8000")
	v.SetDefault("serverDebugHost", ":4000")
	v.SetDefault("serverDisableReqLogs", false)
	v.SetDefault("serverReadTimeout", 5*time.Second)
	v.SetDefault("serverWriteTimeout", 5*time.Second)
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 12*time.Hour)
	v.SetDefault("portalSubjects", strings.Join(DefaultSubjects, ","))
	v.SetDefault("portalNoticeTTL", 3*time.Second)
	v.SetDefault("portalNoticeBackend", "memory")
	v.SetDefault("redisAddr", "localhost:6379")
	v.SetDefault("redisKeyPrefix", "classportal:")

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	loadDotEnv(filepath.Join(getwd(), "config", ".env."+strings.ToLower(env)))
	v.AutomaticEnv()

	return &Config{
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:               v.GetString("serverHost"),
			Address:            v.GetString("serverAddress"),
			DebugHost:          v.GetString("serverDebugHost"),
			DisableReqLogs:     v.GetBool("serverDisableReqLogs"),
			ReadTimeout:        v.GetDuration("serverReadTimeout"),
			WriteTimeout:       v.GetDuration("serverWriteTimeout"),
			ShutdownTimeout:    v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("jwtExpirationDelta"),
		},
		Portal: PortalConfig{
			Subjects:      splitList(v.GetString("portalSubjects")),
			NoticeTTL:     v.GetDuration("portalNoticeTTL"),
			NoticeBackend: CleanString(v.GetString("portalNoticeBackend"), true /* lower */),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("redisAddr"),
			KeyPrefix: v.GetString("redisKeyPrefix"),
		},
	}
}

// DefaultSubject is the subject a new session starts on.
func (conf *Config) DefaultSubject() string {
	if len(conf.Portal.Subjects) > 0 {
		return conf.Portal.Subjects[0]
	}
	return DefaultSubjects[0]
}

// load .env if it exists (ignore if it does not)
func loadDotEnv(path string) {
	if _, err := os.Stat(path); err == nil {
		if err := godotenv.Load(path); err != nil {
			log.Fatalf("config.godotenv(%s): %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", path, err)
	}
}

func splitList(s string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(s, ",") {
		if item = CleanString(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// getwd walks up from the current directory looking for the module root (the directory holding go.mod).
// go-test changes the working directory to the package being tested, so config lookups must not depend on it.
func getwd() string {
	wd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}
	currDir := wd
	for {
		if _, err := os.Stat(filepath.Join(currDir, "go.mod")); err == nil {
			return currDir
		}
		newDir := filepath.Dir(currDir)
		if newDir == string(os.PathSeparator) || newDir == currDir {
			return wd
		}
		currDir = newDir
	}
}
