package config

// EnvPrefix is passed to envconfig; individual fields carry full names.
const EnvPrefix = "SOURCEHUB"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv     = "SOURCEHUB_APP_ENV"
	EnvPort       = "SOURCEHUB_APP_PORT"
	EnvDBDSN      = "SOURCEHUB_DB_DSN"
	EnvDBHost     = "SOURCEHUB_DB_HOST"
	EnvDBUser     = "SOURCEHUB_DB_USER"
	EnvDBName     = "SOURCEHUB_DB_NAME"
	EnvRedisURL   = "SOURCEHUB_REDIS_URL"
	EnvJWTSecret  = "SOURCEHUB_JWT_SECRET"
	EnvJWTIssuer  = "SOURCEHUB_JWT_ISSUER"
	EnvJWTExpMins = "SOURCEHUB_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
