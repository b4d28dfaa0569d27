package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/inventory-backend/pkg/e"
	"github.com/DRSN-tech/inventory-backend/pkg/logger"
	"github.com/jimlawless/whereami"
)

const (
	InventoryServiceName = "inventory-service"
	SupplierServiceName  = "supplier-service"
)

// Config — конфигурация одного сервиса. Секции, не нужные сервису, остаются nil.
type Config struct {
	ServiceName string
	Http        *HTTPConfig
	Grpc        *GRPCConfig
	Db          *PGDBCfg
	Redis       *RedisCfg
	Kafka       *KafkaCfg
	Supplier    *SupplierClientCfg
	Policy      *SupplierPolicyCfg
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int32
}

// DSN возвращает строку подключения в формате key=value.
func (c *PGDBCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// RedisCfg настраивает кэш продуктов. Enabled=false, если REDIS_ADDR не задан.
type RedisCfg struct {
	Enabled     bool
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
}

// KafkaCfg настраивает публикацию событий об изменении остатков. Enabled=false, если KAFKA_BROKERS не задан.
type KafkaCfg struct {
	Enabled           bool
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	BatchSize         int
}

// SupplierClientCfg — параметры синхронного обращения inventory-service к supplier-service.
type SupplierClientCfg struct {
	BaseURL string // адрес коллекции поставщиков, к нему добавляется /{id}
	Timeout time.Duration

	// Circuit breaker: после BreakerFailures подряд неудач запросы не отправляются BreakerOpenTimeout.
	BreakerFailures    uint32
	BreakerOpenTimeout time.Duration
}

// SupplierPolicyCfg задаёт политику уникальности поставщиков.
type SupplierPolicyCfg struct {
	EnforceUnique bool
}

// LoadInventory загружает конфигурацию inventory-service.
func LoadInventory(log logger.Logger) (*Config, error) {
	const (
		defaultHTTPPort = "8081"
		defaultGRPCPort = "9081"
	)

	base, err := loadBase(log, InventoryServiceName, defaultHTTPPort, defaultGRPCPort, "inventory")
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

	supplier, err := loadSupplierClientCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	base.Redis = redis
	base.Kafka = kafka
	base.Supplier = supplier

	return base, nil
}

// LoadSupplier загружает конфигурацию supplier-service.
func LoadSupplier(log logger.Logger) (*Config, error) {
	const (
		defaultHTTPPort = "8082"
		defaultGRPCPort = "9082"
	)

	base, err := loadBase(log, SupplierServiceName, defaultHTTPPort, defaultGRPCPort, "suppliers")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	enforceUnique, err := parseBoolEnv("SUPPLIER_ENFORCE_UNIQUE", true)
	if err != nil {
		log.Errorf(err, "invalid SUPPLIER_ENFORCE_UNIQUE")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	base.Policy = &SupplierPolicyCfg{EnforceUnique: enforceUnique}

	return base, nil
}

func loadBase(log logger.Logger, name, httpPort, grpcPort, defaultDB string) (*Config, error) {
	db, err := loadPGDBCfg(log, defaultDB)
	if err != nil {
		return nil, err
	}

	http, err := loadHTTPConfig(log, httpPort)
	if err != nil {
		return nil, err
	}

	return &Config{
		ServiceName: name,
		Http:        http,
		Grpc:        loadGRPCConfig(grpcPort),
		Db:          db,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic             = "inventory.stock-changed"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultBatchSize         = 10
		defaultNetworkMode       = "tcp"
	)

	brokerStr := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokerStr == "" {
		return &KafkaCfg{Enabled: false}, nil
	}

	brokers := strings.Split(brokerStr, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
	}

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	batchSize, err := parseIntEnv("KAFKA_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		return nil, e.Wrap("KAFKA_BATCH_SIZE", err)
	}

	return &KafkaCfg{
		Enabled:           true,
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		BatchSize:         batchSize,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadSupplierClientCfg(log logger.Logger) (*SupplierClientCfg, error) {
	const (
		defaultURL                = "http://localhost:8082/api/suppliers"
		defaultTimeout            = 3 * time.Second
		defaultBreakerFailures    = 5
		defaultBreakerOpenTimeout = 30 * time.Second
	)

	timeout, err := parseDurationEnv("SUPPLIER_SERVICE_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid SUPPLIER_SERVICE_TIMEOUT")
		return nil, err
	}
	if timeout <= 0 {
		err := fmt.Errorf("SUPPLIER_SERVICE_TIMEOUT must be positive: %w", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid SUPPLIER_SERVICE_TIMEOUT")
		return nil, err
	}

	failures, err := parseIntEnv("SUPPLIER_BREAKER_FAILURES", defaultBreakerFailures)
	if err != nil || failures <= 0 {
		err = fmt.Errorf("SUPPLIER_BREAKER_FAILURES must be a positive integer: %w", e.ErrIncorrectEnvVariable)
		log.Errorf(err, "invalid SUPPLIER_BREAKER_FAILURES")
		return nil, err
	}

	openTimeout, err := parseDurationEnv("SUPPLIER_BREAKER_TIMEOUT", defaultBreakerOpenTimeout)
	if err != nil {
		log.Errorf(err, "invalid SUPPLIER_BREAKER_TIMEOUT")
		return nil, err
	}

	return &SupplierClientCfg{
		BaseURL:            strings.TrimRight(getEnvOrDefault("SUPPLIER_SERVICE_URL", defaultURL), "/"),
		Timeout:            timeout,
		BreakerFailures:    uint32(failures),
		BreakerOpenTimeout: openTimeout,
	}, nil
}

func loadHTTPConfig(log logger.Logger, defaultPort string) (*HTTPConfig, error) {
	const (
		defaultReadTimeout     = 5 * time.Second
		defaultWriteTimeout    = 10 * time.Second
		defaultIdleTimeout     = 60 * time.Second
		defaultShutdownTimeout = 10 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

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

	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		log.Errorf(err, "invalid SHUTDOWN_TIMEOUT")
		return nil, err
	}

	return &HTTPConfig{
		Port:            port,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		IdleTimeout:     idleTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, nil
}

func loadGRPCConfig(defaultPort string) *GRPCConfig {
	const defaultNetworkMode = "tcp"

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadPGDBCfg(log logger.Logger, defaultDB string) (*PGDBCfg, error) {
	const (
		defaultHost     = "localhost"
		defaultPort     = "5432"
		defaultSSLMode  = "disable"
		defaultMaxConns = 10
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

	maxConns, err := parseIntEnv("POSTGRES_MAX_CONNS", defaultMaxConns)
	if err != nil {
		log.Errorf(err, "invalid POSTGRES_MAX_CONNS")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   getEnvOrDefault("POSTGRES_DB", defaultDB),
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MaxConns: int32(maxConns),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 3 * time.Minute
	)

	addr := getEnv("REDIS_ADDR")
	if addr == "" {
		return &RedisCfg{Enabled: false}, nil
	}

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
		Enabled:     true,
		Addr:        addr,
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		ProductTTL:  productTTL,
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
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return intValue, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	boolValue, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue, e.Wrap(key, e.ErrIncorrectEnvVariable)
	}

	return boolValue, nil
}
