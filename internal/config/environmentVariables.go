package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 5
	BURST_RATE_LIMIT_PER_SECOND = 10

	//server listening port
	ServerListenAddr = ":3000"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 300 * time.Second //long enough for a slow stream consumer
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//uploads
	MaxUploadSize = 32 << 20 //32mb
	WatchDir      = ""       //set to a directory to auto-ingest dropped files

	//embeddings
	EmbeddingProvider                   = "google" //"google" or "openai"
	EmbeddingOutputDimensionality int32 = 1536
	GoogleEmbeddingModel                = "gemini-embedding-001"
	OpenAIEmbeddingModel                = "text-embedding-3-small"

	//deterministic end-truncation window before the encoder call
	EncoderWindowChars = 8000

	//responder
	ResponderKind   = "echo" //"echo" or "gemini"
	GeminiModelName = "gemini-2.5-flash-lite-preview-09-2025"
	ModelContext    = "You answer questions about one uploaded document. Only use the document content provided."

	//vectorDB
	AssetCollectionName    = "documents"
	QdrantHost             = ""
	QdrantGrpcPort         = 6334
	QdrantUseTLS           = false
	QdrantPoolSize         = 1
	QdrantKeepAliveTimeout = 30 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisSessionStore = 0

	//chat sessions live for the process lifetime, no TTL on chat keys
)
