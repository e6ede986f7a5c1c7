package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"slidegen/internal/llm"
	"slidegen/internal/store"
)

const (
	DefaultPort           = ":51702"
	DefaultChunkDelay     = 100 * time.Millisecond
	DefaultLLMTimeout     = 2 * time.Minute
	DefaultLLMMaxRetries  = 2
	DefaultGenerationTry  = 1
	defaultArtifactBucket = "slidegen-artifacts"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	LLM llm.Config
	// MaxAttempts is how often a generation re-asks the model after a
	// malformed or invalid reply.
	MaxAttempts    int
	DemoChunkDelay time.Duration

	DatabaseURL string
	Artifact    store.S3Config
	// ArtifactDir keeps artifacts on local disk when neither S3 nor a
	// database is configured.
	ArtifactDir string

	StructureCacheSize int
	StructureCacheTTL  time.Duration
}

// Load reads .env, then the environment, then command-line flags.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()
	return parse(args, os.Getenv)
}

func parse(args []string, getenv func(string) string) (*Config, error) {
	env := envReader{getenv: getenv}
	cfg := &Config{
		Port:     normalizePort(firstNonEmpty(env.str("PORT"), DefaultPort)),
		Env:      firstNonEmpty(env.str("APP_ENV"), "local"),
		LogLevel: env.str("LOG_LEVEL"),
		LLM: llm.Config{
			Provider:      env.str("LLM_PROVIDER"),
			Model:         env.str("LLM_MODEL"),
			GeminiAPIKey:  env.str("GEMINI_API_KEY"),
			OpenAIAPIKey:  env.str("OPENAI_API_KEY"),
			OpenAIBaseURL: env.str("OPENAI_BASE_URL"),
			RPS:           env.number("LLM_RPS", 0),
			Burst:         env.integer("LLM_BURST", 1),
			MaxRetries:    env.integer("LLM_MAX_RETRIES", DefaultLLMMaxRetries),
			Timeout:       env.duration("LLM_TIMEOUT", DefaultLLMTimeout),
		},
		MaxAttempts:    env.integer("GENERATION_MAX_ATTEMPTS", DefaultGenerationTry),
		DemoChunkDelay: env.duration("DEMO_CHUNK_DELAY", DefaultChunkDelay),
		DatabaseURL:    env.str("DATABASE_URL"),
		Artifact: store.S3Config{
			Endpoint:  firstNonEmpty(env.str("ARTIFACT_S3_ENDPOINT"), env.str("ARTIFACT_MINIO_ENDPOINT")),
			Region:    firstNonEmpty(env.str("ARTIFACT_S3_REGION"), "us-east-1"),
			AccessKey: firstNonEmpty(env.str("ARTIFACT_S3_ACCESS_KEY"), env.str("MINIO_ROOT_USER")),
			SecretKey: firstNonEmpty(env.str("ARTIFACT_S3_SECRET_KEY"), env.str("MINIO_ROOT_PASSWORD")),
			Bucket:    firstNonEmpty(env.str("ARTIFACT_S3_BUCKET"), defaultArtifactBucket),
			UseSSL:    env.boolean("ARTIFACT_S3_USE_SSL", !strings.EqualFold(firstNonEmpty(env.str("APP_ENV"), "local"), "local")),
		},
		ArtifactDir:        env.str("ARTIFACT_DIR"),
		StructureCacheSize: env.integer("STRUCTURE_CACHE_SIZE", 0),
		StructureCacheTTL:  env.duration("STRUCTURE_CACHE_TTL", 0),
	}
	if env.err != nil {
		return nil, env.err
	}

	fs := flag.NewFlagSet("gateway", flag.ContinueOnError)
	port := fs.String("port", cfg.Port, "server port")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Port = normalizePort(*port)
	return cfg, nil
}

func normalizePort(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || strings.Contains(p, ":") {
		return p
	}
	return ":" + p
}

// envReader records the first malformed value it meets.
type envReader struct {
	getenv func(string) string
	err    error
}

func (r *envReader) str(key string) string {
	return strings.TrimSpace(r.getenv(key))
}

func (r *envReader) fail(key, raw string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("config: %s=%q: %w", key, raw, err)
	}
}

func (r *envReader) integer(key string, def int) int {
	raw := r.str(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(key, raw, err)
		return def
	}
	return v
}

func (r *envReader) number(key string, def float64) float64 {
	raw := r.str(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(key, raw, err)
		return def
	}
	return v
}

func (r *envReader) boolean(key string, def bool) bool {
	raw := r.str(key)
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail(key, raw, err)
		return def
	}
	return v
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	raw := r.str(key)
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.fail(key, raw, err)
		return def
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
