package constants

// Viper configuration keys.
const (
	ViperKeyServerAddr  = "server.addr"
	ViperKeyCORSOrigin  = "server.cors_origin"
	ViperKeyPostgresDSN = "postgres.dsn"
	ViperKeyBatchSize   = "ingest.batch_size"
	ViperKeyLogDebug    = "log.debug"
)

// Defaults.
const (
	DefaultServerAddr = ":8080"
	DefaultCORSOrigin = "http://localhost:3000"
	DefaultBatchSize  = 1000
)
