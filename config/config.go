package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)

	// Server
	ServerPort string

	// Redis (拓扑镜像存储)
	RedisHost string
	RedisPort string
	RedisDB   int

	// MQTT (拓扑变更通知, 可选)
	MQTTBroker   string
	MQTTClientID string
	MQTTUsername string
	MQTTPassword string

	// JWT Authentication
	JWTSecretKey string

	// Operator
	DefaultOperatorPassword string

	// 标识符池
	IdentifierBatchMax int    // 单次批量生成上限
	LabelPrefix        string // 标签显示前缀
	LabelWidth         int    // 标签数字位宽（零填充）

	// 拓扑查询
	TopologyMaxDepth int // 拓扑遍历跳数硬上限
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	// Get environment type (default to LOCAL if not set)
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	// Set prefix based on environment type
	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	batchMax, _ := strconv.Atoi(getEnv("IDENTIFIER_BATCH_MAX", "10000"))
	labelWidth, _ := strconv.Atoi(getEnv("LABEL_WIDTH", "8"))
	maxDepth, _ := strconv.Atoi(getEnv("TOPOLOGY_MAX_DEPTH", "8"))

	return &Config{
		// Environment type
		EnvType: envType,

		// Database config - use environment-specific variables if available
		DBHost:          getEnv(prefix+"DB_HOST", getEnv("DB_HOST", "localhost")),
		DBUser:          getEnv(prefix+"DB_USER", getEnv("DB_USER", "root")),
		DBPassword:      getEnv(prefix+"DB_PASSWORD", getEnv("DB_PASSWORD", "")),
		DBName:          getEnv(prefix+"DB_NAME", getEnv("DB_NAME", "dcim_asset")),
		DBPort:          getEnv(prefix+"DB_PORT", getEnv("DB_PORT", "3306")),
		DBMigrationMode: getEnv("DB_MIGRATION_MODE", "auto"),

		// Server
		ServerPort: getEnv("SERVER_PORT", "8080"),

		// Redis
		RedisHost: getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort: getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisDB:   redisDB,

		// MQTT
		MQTTBroker:   getEnv("MQTT_BROKER", ""),
		MQTTClientID: getEnv("MQTT_CLIENT_ID", "dcim-asset-service"),
		MQTTUsername: getEnv("MQTT_USERNAME", ""),
		MQTTPassword: getEnv("MQTT_PASSWORD", ""),

		// JWT
		JWTSecretKey: getEnv("JWT_SECRET_KEY", "dcim_secret_key"),

		// Operator
		DefaultOperatorPassword: getEnv("DEFAULT_OPERATOR_PASSWORD", "admin123"),

		// 标识符池
		IdentifierBatchMax: batchMax,
		LabelPrefix:        getEnv("LABEL_PREFIX", "DC"),
		LabelWidth:         labelWidth,

		// 拓扑查询
		TopologyMaxDepth: maxDepth,
	}
}

// GetConfig returns the singleton config instance
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN 返回MySQL连接字符串
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// GetRedisAddr 返回Redis连接地址
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
