package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD                         = false
	LOG_LEVEL_PROD                  = slog.LevelInfo
	FALLBACK_REDIS_TO_INTERNALSTORE = true //if redis init fails, it falls back to an internal in-memory store
	TRACE_ID_KEY                    = "traceId"
	RATE_LIMIT_PER_SECOND           = 2
	BURST_RATE_LIMIT_PER_SECOND     = 5

	//auth
	NoAuthBypass = true //local dev only - flip off before deploying
	AuthToken    = ""

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//llm provider selection - "gemini" or "openai"
	LLMProvider = "gemini"

	//pass 1 is coarse classification so it runs on the low-latency tier.
	//pass 2 walks every row of the document and gets the bigger tier.
	GeminiStructureModel  = "gemini-2.5-flash-lite-preview-09-2025"
	GeminiExtractionModel = "gemini-2.5-flash"
	OpenAIStructureModel  = "gpt-4o-mini"
	OpenAIExtractionModel = "gpt-4o"

	StructureMaxOutputTokens  int32 = 1024
	ExtractionMaxOutputTokens int32 = 16384

	//a hung completion call would otherwise hang the job forever
	//timeout is treated the same as a parse failure downstream
	StructureCallTimeout  = 30 * time.Second
	ExtractionCallTimeout = 120 * time.Second

	//pass 1 only needs the head of the document to guess its shape
	StructurePrefixLimit = 2000

	//degraded fallback when pass 2 is unusable
	FallbackSectionCount   = 5
	FallbackDescriptionCap = 150
	FallbackItemFormat     = "Text"

	ModelTemperature float32 = 0.2

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore    = 0
	RedisImportStore = 1

	//redis timeouts
	RedisJobStoreTTL    = 24 * time.Hour
	RedisImportStoreTTL = 30 * 24 * time.Hour
)
