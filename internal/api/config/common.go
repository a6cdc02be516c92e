package config

// Config 配置主体
type Config struct {
	Server            ServerConfig        `mapstructure:"server"`
	DB                DBConfig            `mapstructure:"database"`
	Redis             RedisConfig         `mapstructure:"redis"`
	Mongo             MongoConfig         `mapstructure:"mongo"`
	MinIO             MinIOConfig         `mapstructure:"minio"`
	Elastic           ElasticConfig       `mapstructure:"elastic"`
	Identity          IdentityConfig      `mapstructure:"identity"`
	Auth              AuthConfig          `mapstructure:"auth"`
	Stripe            StripeConfig        `mapstructure:"stripe"`
	LLM               LLMConfig           `mapstructure:"llm"`
	Analytics         AnalyticsConfig     `mapstructure:"analytics"`
	RateLimit         RateLimitConfig     `mapstructure:"rate_limit"`
	Logstash          LogstashConfig      `mapstructure:"logstash"`
	Kafka             KafkaConfig         `mapstructure:"kafka"`
	KafkaViewConsumer KafkaViewConsumer   `mapstructure:"kafka_view_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig 分析事件日志所在的 MongoDB
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	Endpoint   string `mapstructure:"endpoint"`
	AccessKey  string `mapstructure:"access_key"`
	SecretKey  string `mapstructure:"secret_key"`
	Bucket     string `mapstructure:"bucket"`
	UseSSL     bool   `mapstructure:"use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address        string `mapstructure:"address"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	PortfolioIndex string `mapstructure:"portfolio_index"`
}

// IdentityConfig 外部身份提供商（Clerk 风格的 REST API）
type IdentityConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	SecretKey      string `mapstructure:"secret_key"`
	CacheTTL       int    `mapstructure:"cache_ttl"`       // 分钟
	CountTimeout   int    `mapstructure:"count_timeout"`   // 秒
}

// AuthConfig 会话 Token 校验配置
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

// StripeConfig 支付回调配置
type StripeConfig struct {
	WebhookSecret string `mapstructure:"webhook_secret"`
}

type LLMConfig struct {
	URL    string `mapstructure:"url"`
	Model  string `mapstructure:"model"`
	ApiKey string `mapstructure:"api_key"`
}

// AnalyticsConfig 浏览事件行为开关
type AnalyticsConfig struct {
	DedupDaily bool `mapstructure:"dedup_daily"`
}

// RateLimitConfig 公共接口的固定窗口限流
type RateLimitConfig struct {
	Window int `mapstructure:"window"` // 秒
	Limit  int `mapstructure:"limit"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaViewConsumer struct {
	Topic   string `mapstructure:"topic"`
	GroupID string `mapstructure:"group_id"`
}
