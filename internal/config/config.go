package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/riskibarqy/fantasy-five/internal/platform/logging"
	"github.com/robfig/cron/v3"
)

const (
	RepositoryMemory   = "memory"
	RepositoryPostgres = "postgres"

	AuthProviderJWT    = "jwt"
	AuthProviderAnubis = "anubis"
)

// RulesConfig holds the tunable game rules.
type RulesConfig struct {
	BudgetCap        int64 `envconfig:"FANTASY_BUDGET_CAP" default:"500"`
	FreeTransfers    int   `envconfig:"FANTASY_FREE_TRANSFERS" default:"1"`
	TransferPenalty  int   `envconfig:"FANTASY_TRANSFER_PENALTY" default:"4"`
	LeaderboardLimit int   `envconfig:"FANTASY_LEADERBOARD_LIMIT" default:"50"`
}

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                      string
	ServiceName                 string
	ServiceVersion              string
	HTTPAddr                    string
	RepositoryDriver            string
	SeedDemoData                bool
	DBURL                       string
	DBMaxOpenConns              int
	CacheEnabled                bool
	CacheTTL                    time.Duration
	CORSAllowedOrigins          []string
	ReadTimeout                 time.Duration
	WriteTimeout                time.Duration
	ShutdownTimeout             time.Duration
	PprofEnabled                bool
	PprofAddr                   string
	SwaggerEnabled              bool
	AuthProvider                string
	JWTSecret                   string
	JWTIssuer                   string
	JWTLeeway                   time.Duration
	AnubisBaseURL               string
	AnubisIntrospectURL         string
	AnubisAdminKey              string
	AnubisAdminRole             string
	AnubisTimeout               time.Duration
	AnubisCircuitEnabled        bool
	AnubisCircuitFailureCount   int
	AnubisCircuitOpenTimeout    time.Duration
	AnubisCircuitHalfOpenMaxReq int
	UptraceEnabled              bool
	UptraceDSN                  string
	UptraceLogsEnabled          bool
	BetterStackEnabled          bool
	BetterStackEndpoint         string
	BetterStackToken            string
	BetterStackTimeout          time.Duration
	BetterStackMinLevel         logging.Level
	BetterStackBatchSize        int
	PyroscopeEnabled            bool
	PyroscopeServerAddress      string
	PyroscopeAppName            string
	PyroscopeAuthToken          string
	PyroscopeBasicAuthUser      string
	PyroscopeBasicAuthPassword  string
	PyroscopeUploadRate         time.Duration
	InternalJobToken            string
	JobReconcileEnabled         bool
	JobReconcileCron            string
	JobTimeout                  time.Duration
	ScoringWorkers              int
	Rules                       RulesConfig
	LogLevel                    logging.Level
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	swaggerDefault := "true"
	if appEnv == EnvProd {
		swaggerDefault = "false"
	}

	swaggerEnabled, err := strconv.ParseBool(getEnv("SWAGGER_ENABLED", swaggerDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SWAGGER_ENABLED: %w", err)
	}

	repositoryDriver, err := parseRepositoryDriver(getEnv("REPOSITORY_DRIVER", RepositoryMemory))
	if err != nil {
		return Config{}, err
	}
	dbURL := strings.TrimSpace(getEnv("DB_URL", ""))
	if repositoryDriver == RepositoryPostgres && dbURL == "" {
		return Config{}, fmt.Errorf("DB_URL is required when REPOSITORY_DRIVER=%s", RepositoryPostgres)
	}
	dbMaxOpenConns, err := getEnvAsInt("DB_MAX_OPEN_CONNS", 10)
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_MAX_OPEN_CONNS: %w", err)
	}
	if dbMaxOpenConns <= 0 {
		return Config{}, fmt.Errorf("DB_MAX_OPEN_CONNS must be > 0")
	}

	seedDefault := "false"
	if repositoryDriver == RepositoryMemory {
		seedDefault = "true"
	}
	seedDemoData, err := strconv.ParseBool(getEnv("SEED_DEMO_DATA", seedDefault))
	if err != nil {
		return Config{}, fmt.Errorf("parse SEED_DEMO_DATA: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}
	shutdownTimeout, err := time.ParseDuration(getEnv("HTTP_SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}

	authProvider, err := parseAuthProvider(getEnv("AUTH_PROVIDER", AuthProviderJWT))
	if err != nil {
		return Config{}, err
	}
	jwtSecret := strings.TrimSpace(getEnv("JWT_SECRET", ""))
	if authProvider == AuthProviderJWT && jwtSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required when AUTH_PROVIDER=%s", AuthProviderJWT)
	}
	jwtLeeway, err := time.ParseDuration(getEnv("JWT_LEEWAY", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JWT_LEEWAY: %w", err)
	}
	if jwtLeeway < 0 {
		return Config{}, fmt.Errorf("JWT_LEEWAY must be >= 0")
	}

	anubisTimeout, err := time.ParseDuration(getEnv("ANUBIS_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_TIMEOUT: %w", err)
	}
	if anubisTimeout <= 0 {
		return Config{}, fmt.Errorf("ANUBIS_TIMEOUT must be > 0")
	}
	anubisCircuitEnabled, err := strconv.ParseBool(getEnv("ANUBIS_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_ENABLED: %w", err)
	}
	anubisCircuitFailureCount, err := getEnvAsInt("ANUBIS_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if anubisCircuitFailureCount <= 0 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_FAILURE_COUNT must be > 0")
	}
	anubisCircuitOpenTimeout, err := time.ParseDuration(getEnv("ANUBIS_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if anubisCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	anubisCircuitHalfOpenMaxReq, err := getEnvAsInt("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if anubisCircuitHalfOpenMaxReq <= 0 {
		return Config{}, fmt.Errorf("ANUBIS_CIRCUIT_HALF_OPEN_MAX_REQ must be > 0")
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	betterStackEnabled, err := strconv.ParseBool(getEnv("BETTERSTACK_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_ENABLED: %w", err)
	}
	betterStackEndpoint := strings.TrimSpace(getEnv("BETTERSTACK_ENDPOINT", ""))
	if betterStackEnabled && betterStackEndpoint == "" {
		return Config{}, fmt.Errorf("BETTERSTACK_ENDPOINT is required when BETTERSTACK_ENABLED=true")
	}
	betterStackTimeout, err := time.ParseDuration(getEnv("BETTERSTACK_TIMEOUT", "3s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_TIMEOUT: %w", err)
	}
	if betterStackTimeout <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_TIMEOUT must be > 0")
	}
	betterStackBatchSize, err := getEnvAsInt("BETTERSTACK_BATCH_SIZE", 50)
	if err != nil {
		return Config{}, fmt.Errorf("parse BETTERSTACK_BATCH_SIZE: %w", err)
	}
	if betterStackBatchSize <= 0 {
		return Config{}, fmt.Errorf("BETTERSTACK_BATCH_SIZE must be > 0")
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	jobReconcileEnabled, err := strconv.ParseBool(getEnv("JOB_RECONCILE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_RECONCILE_ENABLED: %w", err)
	}
	jobReconcileCron := strings.TrimSpace(getEnv("JOB_RECONCILE_CRON", "*/30 * * * *"))
	if _, err := cron.ParseStandard(jobReconcileCron); err != nil {
		return Config{}, fmt.Errorf("parse JOB_RECONCILE_CRON: %w", err)
	}
	jobTimeout, err := time.ParseDuration(getEnv("JOB_TIMEOUT", "2m"))
	if err != nil {
		return Config{}, fmt.Errorf("parse JOB_TIMEOUT: %w", err)
	}
	if jobTimeout <= 0 {
		return Config{}, fmt.Errorf("JOB_TIMEOUT must be > 0")
	}

	scoringWorkers, err := getEnvAsInt("SCORING_WORKERS", 8)
	if err != nil {
		return Config{}, fmt.Errorf("parse SCORING_WORKERS: %w", err)
	}
	if scoringWorkers <= 0 {
		return Config{}, fmt.Errorf("SCORING_WORKERS must be > 0")
	}

	var rules RulesConfig
	if err := envconfig.Process("", &rules); err != nil {
		return Config{}, fmt.Errorf("parse fantasy rules: %w", err)
	}
	if err := rules.validate(); err != nil {
		return Config{}, err
	}

	serviceName := getEnv("APP_SERVICE_NAME", "fantasy-five-api")
	cfg := Config{
		AppEnv:                      appEnv,
		ServiceName:                 serviceName,
		ServiceVersion:              getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                    getEnv("APP_HTTP_ADDR", ":8080"),
		RepositoryDriver:            repositoryDriver,
		SeedDemoData:                seedDemoData,
		DBURL:                       dbURL,
		DBMaxOpenConns:              dbMaxOpenConns,
		CacheEnabled:                cacheEnabled,
		CacheTTL:                    cacheTTL,
		CORSAllowedOrigins:          splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		ReadTimeout:                 readTimeout,
		WriteTimeout:                writeTimeout,
		ShutdownTimeout:             shutdownTimeout,
		PprofEnabled:                pprofEnabled,
		PprofAddr:                   strings.TrimSpace(getEnv("PPROF_ADDR", ":6060")),
		SwaggerEnabled:              swaggerEnabled,
		AuthProvider:                authProvider,
		JWTSecret:                   jwtSecret,
		JWTIssuer:                   strings.TrimSpace(getEnv("JWT_ISSUER", "")),
		JWTLeeway:                   jwtLeeway,
		AnubisBaseURL:               getEnv("ANUBIS_BASE_URL", "http://localhost:8081"),
		AnubisIntrospectURL:         getEnv("ANUBIS_INTROSPECT_PATH", "/v1/auth/introspect"),
		AnubisAdminKey:              getEnv("ANUBIS_ADMIN_KEY", ""),
		AnubisAdminRole:             getEnv("ANUBIS_ADMIN_ROLE", "admin"),
		AnubisTimeout:               anubisTimeout,
		AnubisCircuitEnabled:        anubisCircuitEnabled,
		AnubisCircuitFailureCount:   anubisCircuitFailureCount,
		AnubisCircuitOpenTimeout:    anubisCircuitOpenTimeout,
		AnubisCircuitHalfOpenMaxReq: anubisCircuitHalfOpenMaxReq,
		UptraceEnabled:              uptraceEnabled,
		UptraceDSN:                  uptraceDSN,
		UptraceLogsEnabled:          uptraceLogsEnabled,
		BetterStackEnabled:          betterStackEnabled,
		BetterStackEndpoint:         betterStackEndpoint,
		BetterStackToken:            getEnv("BETTERSTACK_TOKEN", ""),
		BetterStackTimeout:          betterStackTimeout,
		BetterStackMinLevel:         parseLogLevel(getEnv("BETTERSTACK_MIN_LEVEL", "error")),
		BetterStackBatchSize:        betterStackBatchSize,
		PyroscopeEnabled:            pyroscopeEnabled,
		PyroscopeServerAddress:      pyroscopeServerAddress,
		PyroscopeAppName:            getEnv("PYROSCOPE_APP_NAME", serviceName),
		PyroscopeAuthToken:          getEnv("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:      getEnv("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword:  getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:         pyroscopeUploadRate,
		InternalJobToken:            strings.TrimSpace(getEnv("INTERNAL_JOB_TOKEN", "")),
		JobReconcileEnabled:         jobReconcileEnabled,
		JobReconcileCron:            jobReconcileCron,
		JobTimeout:                  jobTimeout,
		ScoringWorkers:              scoringWorkers,
		Rules:                       rules,
		LogLevel:                    parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	if cfg.PprofEnabled && cfg.PprofAddr == "" {
		cfg.PprofAddr = ":6060"
	}

	return cfg, nil
}

func (r RulesConfig) validate() error {
	if r.BudgetCap <= 0 {
		return fmt.Errorf("FANTASY_BUDGET_CAP must be > 0")
	}
	if r.FreeTransfers < 0 {
		return fmt.Errorf("FANTASY_FREE_TRANSFERS must be >= 0")
	}
	if r.TransferPenalty < 0 {
		return fmt.Errorf("FANTASY_TRANSFER_PENALTY must be >= 0")
	}
	if r.LeaderboardLimit <= 0 {
		return fmt.Errorf("FANTASY_LEADERBOARD_LIMIT must be > 0")
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseRepositoryDriver(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case RepositoryMemory, RepositoryPostgres:
		return value, nil
	default:
		return "", fmt.Errorf("invalid REPOSITORY_DRIVER %q: valid values are %s, %s", v, RepositoryMemory, RepositoryPostgres)
	}
}

func parseAuthProvider(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case AuthProviderJWT, AuthProviderAnubis:
		return value, nil
	default:
		return "", fmt.Errorf("invalid AUTH_PROVIDER %q: valid values are %s, %s", v, AuthProviderJWT, AuthProviderAnubis)
	}
}
