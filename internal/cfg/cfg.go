package cfg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/DRSN-tech/resale-backend/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

type Config struct {
	Minio  *MinIOCfg
	Http   *HTTPConfig
	Grpc   *GRPCConfig
	Db     *PGDBCfg
	Redis  *RedisCfg
	Kafka  *KafkaCfg
	Gemini *GeminiCfg
	Import *ImportCfg
	Stats  *StatsCfg
}

type KafkaCfg struct {
	Enabled           bool
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	MinioEndpoint     string // Адрес конечной точки Minio
	BucketName        string // Бакет для фотографий артикулов
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	UploadMaxSize     int64 // Максимальный размер одного загружаемого фото в байтах
}

type HTTPConfig struct {
	Port         string
	PublicURL    string // Используется в swagger
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int32
	MigrationsPath string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ListingTTL  time.Duration // TTL кэша импортированных объявлений
}

type GeminiCfg struct {
	APIKey           string
	DescriptionModel string
	ReplyModel       string
	RequestTimeout   time.Duration
}

type ImportCfg struct {
	BaseURL         string
	ProxyURL        string
	StrategyTimeout time.Duration
	StrategyDelay   time.Duration
}

type StatsCfg struct {
	Location *time.Location
}

// KeepAliveCfg: конфигурация отдельного бинаря cmd/keepalive.
type KeepAliveCfg struct {
	URL        string
	Interval   time.Duration
	RetryDelay time.Duration
	Timeout    time.Duration
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	loadDotEnv(log)

	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	gemini, err := loadGeminiCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	imp, err := loadImportCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	stats, err := loadStatsCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Minio:  minio,
		Http:   http,
		Grpc:   loadGRPCConfig(),
		Db:     db,
		Redis:  redis,
		Kafka:  kafka,
		Gemini: gemini,
		Import: imp,
		Stats:  stats,
	}, nil
}

// LoadKeepAlive загружает конфигурацию пингера.
func LoadKeepAlive(log logger.Logger) (*KeepAliveCfg, error) {
	const (
		defaultURL        = "http://localhost:8080/ping"
		defaultInterval   = 3 * time.Minute
		defaultRetryDelay = 30 * time.Second
		defaultTimeout    = 10 * time.Second
	)

	loadDotEnv(log)

	interval, err := parseDurationEnv("KEEPALIVE_INTERVAL", defaultInterval)
	if err != nil {
		log.Errorf(err, "invalid KEEPALIVE_INTERVAL")
		return nil, err
	}

	retryDelay, err := parseDurationEnv("KEEPALIVE_RETRY_DELAY", defaultRetryDelay)
	if err != nil {
		log.Errorf(err, "invalid KEEPALIVE_RETRY_DELAY")
		return nil, err
	}

	timeout, err := parseDurationEnv("KEEPALIVE_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEPALIVE_TIMEOUT")
		return nil, err
	}

	if interval <= 0 {
		return nil, e.Wrap("KEEPALIVE_INTERVAL", e.ErrIncorrectEnvVariable)
	}

	return &KeepAliveCfg{
		URL:        getEnvOrDefault("KEEPALIVE_URL", defaultURL),
		Interval:   interval,
		RetryDelay: retryDelay,
		Timeout:    timeout,
	}, nil
}

// loadDotEnv подгружает .env, если файл существует. Уже заданные переменные не перезаписываются.
func loadDotEnv(log logger.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("failed to load .env: %v", err)
	}
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "resale.events"
	)

	var brokers []string
	for _, b := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Enabled:           len(brokers) > 0,
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL        = false
		defaultEndpoint      = "minio:9000"
		defaultBucket        = "articles"
		defaultUploadMaxSize = 15 << 20
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	maxSize, err := parseIntEnv("UPLOAD_MAX_SIZE", defaultUploadMaxSize)
	if err != nil || maxSize <= 0 {
		log.Errorf(e.ErrIncorrectEnvVariable, "invalid UPLOAD_MAX_SIZE")
		return nil, e.Wrap("UPLOAD_MAX_SIZE", e.ErrIncorrectEnvVariable)
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		UploadMaxSize:     int64(maxSize),
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 15 * time.Second
		defaultWriteTimeout = 90 * time.Second // генерация описаний и импорт бывают долгими
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", getEnvOrDefault("PORT", defaultPort))

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		PublicURL:    getEnvOrDefault("PUBLIC_URL", "http://localhost:"+port),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost           = "localhost"
		defaultPort           = "5432"
		defaultSSLMode        = "disable"
		defaultMaxConns       = 10
		defaultMigrationsPath = "db/migrations"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	maxConns, err := parseIntEnv("POSTGRES_MAX_CONNS", defaultMaxConns)
	if err != nil {
		log.Errorf(err, "invalid POSTGRES_MAX_CONNS")
		return nil, err
	}

	return &PGDBCfg{
		Host:           getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:           getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:           user,
		Password:       password,
		DBName:         dbName,
		SSLMode:        getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MaxConns:       int32(maxConns),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultListingTTL   = 10 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	listingTTL, err := parseDurationEnv("IMPORT_CACHE_TTL", defaultListingTTL)
	if err != nil {
		log.Errorf(err, "invalid IMPORT_CACHE_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ListingTTL:  listingTTL,
	}, nil
}

func loadGeminiCfg(log logger.Logger) (*GeminiCfg, error) {
	const (
		defaultDescriptionModel = "gemini-2.5-pro"
		defaultReplyModel       = "gemini-2.5-flash"
		defaultRequestTimeout   = 60 * time.Second
	)

	apiKey := getEnvOrDefault("GEMINI_API_KEY", getEnv("GOOGLE_AI_API_KEY"))
	if apiKey == "" {
		err := fmt.Errorf("GEMINI_API_KEY or GOOGLE_AI_API_KEY is required")
		log.Errorf(err, "missing GEMINI_API_KEY")
		return nil, err
	}

	timeout, err := parseDurationEnv("GEMINI_REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		log.Errorf(err, "invalid GEMINI_REQUEST_TIMEOUT")
		return nil, err
	}

	return &GeminiCfg{
		APIKey:           apiKey,
		DescriptionModel: getEnvOrDefault("GEMINI_DESCRIPTION_MODEL", defaultDescriptionModel),
		ReplyModel:       getEnvOrDefault("GEMINI_REPLY_MODEL", defaultReplyModel),
		RequestTimeout:   timeout,
	}, nil
}

func loadImportCfg(log logger.Logger) (*ImportCfg, error) {
	const (
		defaultBaseURL         = "https://www.vinted.fr"
		defaultProxyURL        = "https://api.allorigins.win/get"
		defaultStrategyTimeout = 15 * time.Second
		defaultStrategyDelay   = 1 * time.Second
	)

	timeout, err := parseDurationEnv("IMPORT_STRATEGY_TIMEOUT", defaultStrategyTimeout)
	if err != nil {
		log.Errorf(err, "invalid IMPORT_STRATEGY_TIMEOUT")
		return nil, err
	}

	delay, err := parseDurationEnv("IMPORT_STRATEGY_DELAY", defaultStrategyDelay)
	if err != nil {
		log.Errorf(err, "invalid IMPORT_STRATEGY_DELAY")
		return nil, err
	}

	return &ImportCfg{
		BaseURL:         strings.TrimRight(getEnvOrDefault("VINTED_BASE_URL", defaultBaseURL), "/"),
		ProxyURL:        getEnvOrDefault("VINTED_PROXY_URL", defaultProxyURL),
		StrategyTimeout: timeout,
		StrategyDelay:   delay,
	}, nil
}

func loadStatsCfg(log logger.Logger) (*StatsCfg, error) {
	name := getEnv("STATS_TIMEZONE")
	if name == "" {
		return &StatsCfg{Location: time.Local}, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Errorf(err, "invalid STATS_TIMEZONE")
		return nil, err
	}

	return &StatsCfg{Location: loc}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
