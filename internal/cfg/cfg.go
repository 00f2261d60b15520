package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/kraftory/go-backend/pkg/e"
	"github.com/kraftory/go-backend/pkg/logger"
)

type Config struct {
	Http       *HTTPConfig
	Db         *PGDBCfg
	Redis      *RedisCfg
	Kafka      *KafkaCfg
	Minio      *MinIOCfg
	Smtp       *SMTPCfg
	Translator *TranslatorCfg
	Admin      *AdminCfg
	Security   *SecurityCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type MinIOCfg struct {
	MinioEndpoint     string
	BucketName        string
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
	UploadImagesLimit int // лимит одновременных загрузок в S3
}

type SMTPCfg struct {
	Host     string
	Port     int
	User     string
	Password string
	// OperatorEmail — фиксированный адрес оператора, на который уходят уведомления о заказах.
	OperatorEmail string
	Enabled       bool
}

type TranslatorCfg struct {
	// Endpoint внешнего сервиса перевода (JSON API).
	Endpoint   string
	Timeout    time.Duration
	MaxRetries int
	Enabled    bool
}

// AdminCfg — единственная общая пара учётных данных для админских маршрутов.
type AdminCfg struct {
	User     string
	Password string
}

type SecurityCfg struct {
	// Лимит запросов на оформление заказа с одного IP в пределах окна.
	RateLimitMax    int
	RateLimitWindow time.Duration
	CSRFTokenTTL    time.Duration
	CSRFEnabled     bool
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
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

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	smtp, err := loadSMTPCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	admin, err := loadAdminCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	security, err := loadSecurityCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:       http,
		Db:         db,
		Redis:      redis,
		Kafka:      kafka,
		Minio:      minio,
		Smtp:       smtp,
		Translator: loadTranslatorCfg(),
		Admin:      admin,
		Security:   security,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

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
		Port:         getEnvOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
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

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
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
		defaultProductTTL   = 3 * time.Minute
	)

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

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProductTTL:  productTTL,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		return nil, fmt.Errorf("KAFKA_TOPIC environment variable is required")
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
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnv("BUCKET_NAME"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
		UploadImagesLimit: 3,
	}, nil
}

func loadSMTPCfg(log logger.Logger) (*SMTPCfg, error) {
	const defaultPort = 587

	port, err := parseIntEnv("SMTP_PORT", defaultPort)
	if err != nil {
		log.Errorf(err, "invalid SMTP_PORT")
		return nil, err
	}

	user := getEnv("SMTP_USER")
	operator := getEnvOrDefault("ORDER_NOTIFY_EMAIL", user)

	return &SMTPCfg{
		Host:          getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		Port:          port,
		User:          user,
		Password:      getEnv("SMTP_PASSWORD"),
		OperatorEmail: operator,
		Enabled:       user != "",
	}, nil
}

func loadTranslatorCfg() *TranslatorCfg {
	const (
		defaultTimeout    = 5 * time.Second
		defaultMaxRetries = 3
	)

	endpoint := getEnv("TRANSLATOR_ENDPOINT")

	return &TranslatorCfg{
		Endpoint:   endpoint,
		Timeout:    defaultTimeout,
		MaxRetries: defaultMaxRetries,
		Enabled:    endpoint != "",
	}
}

func loadAdminCfg(log logger.Logger) (*AdminCfg, error) {
	user := getEnvOrDefault("ADMIN_USER", "admin")

	password := getEnv("ADMIN_PASSWORD")
	if password == "" {
		err := fmt.Errorf("ADMIN_PASSWORD is required")
		log.Errorf(err, "missing ADMIN_PASSWORD")
		return nil, err
	}

	return &AdminCfg{
		User:     user,
		Password: password,
	}, nil
}

func loadSecurityCfg(log logger.Logger) (*SecurityCfg, error) {
	const (
		defaultRateLimitMax    = 10
		defaultRateLimitWindow = time.Minute
		defaultCSRFTokenTTL    = time.Hour
	)

	rateLimitMax, err := parseIntEnv("RATE_LIMIT_MAX", defaultRateLimitMax)
	if err != nil {
		log.Errorf(err, "invalid RATE_LIMIT_MAX")
		return nil, err
	}

	rateLimitWindow, err := parseDurationEnv("RATE_LIMIT_WINDOW", defaultRateLimitWindow)
	if err != nil {
		log.Errorf(err, "invalid RATE_LIMIT_WINDOW")
		return nil, err
	}

	csrfTTL, err := parseDurationEnv("CSRF_TOKEN_TTL", defaultCSRFTokenTTL)
	if err != nil {
		log.Errorf(err, "invalid CSRF_TOKEN_TTL")
		return nil, err
	}

	csrfEnabled, err := strconv.ParseBool(getEnvOrDefault("CSRF_ENABLED", "false"))
	if err != nil {
		log.Errorf(err, "invalid CSRF_ENABLED")
		return nil, err
	}

	return &SecurityCfg{
		RateLimitMax:    rateLimitMax,
		RateLimitWindow: rateLimitWindow,
		CSRFTokenTTL:    csrfTTL,
		CSRFEnabled:     csrfEnabled,
	}, nil
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
