package constants

// Environment variable keys
const (
	EnvConfigPath     = "MATCHUP_CONFIG"
	EnvHTTPAddr       = "MATCHUP_HTTP_ADDR"
	EnvGRPCAddr       = "MATCHUP_GRPC_ADDR"
	EnvDataDir        = "MATCHUP_DATA_DIR"
	EnvLogLevel       = "MATCHUP_LOG_LEVEL"
	EnvReloadInterval = "MATCHUP_RELOAD_INTERVAL"
)

// Routes used by the HTTP router
const (
	RouteHealth      = "/healthz"
	RouteAPIPrefix   = "/api"
	RouteMatchup     = "/matchup"
	RouteGenerations = "/generations"
	RouteTrainers    = "/trainers/:gen"
	RouteTrainerSet  = "/sets/:gen/:species"
	RouteWebSocket   = "/ws"
)

// Log field keys
const (
	LogFieldAddr       = "addr"
	LogFieldGeneration = "generation"
	LogFieldMove       = "move"
	LogFieldAttacker   = "attacker"
	LogFieldDefender   = "defender"
	LogFieldPath       = "path"
	LogFieldPaths      = "paths"
	LogFieldTrainer    = "trainer"
	LogFieldSpecies    = "species"
	LogFieldCount      = "count"
	LogFieldRemote     = "remote"
	LogFieldMethod     = "method"
	LogFieldStatus     = "status"
	LogFieldLatency    = "latency"
)

// JSON keys
const (
	JSONKeyError  = "error"
	JSONKeyStatus = "status"
)

// Error messages returned by the API
const (
	ErrInvalidRequest    = "Invalid request"
	ErrInvalidGeneration = "Invalid generation"
)
