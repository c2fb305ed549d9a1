package rag

import (
	"context"
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/viant/afs"
	"github.com/viant/rag/client"
	"github.com/viant/rag/client/auth/store"
	"github.com/viant/rag/client/auth/transport"
	"github.com/viant/rag/schema"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"os"
	"path"
	"strconv"
	"strings"
	"time"
)

// DefaultSessionURL is where the credential pair is persisted unless configured otherwise.
const DefaultSessionURL = "~/.ragcli/session.json"

// Environment variables overriding ClientOptions.
const (
	EnvBaseURL    = "RAG_BASE_URL"
	EnvSessionURL = "RAG_SESSION_URL"
	EnvSessionKey = "RAG_SESSION_KEY"
	EnvTimeoutMs  = "RAG_TIMEOUT_MS"
	EnvVerbose    = "RAG_VERBOSE"
)

// ClientOptions
//
// defines options for configuring a research-RAG API client.
type ClientOptions struct {
	BaseURL    string `yaml:"baseURL,omitempty" json:"baseURL,omitempty"  short:"u" long:"url" description:"API base URL"`
	SessionURL string `yaml:"sessionURL,omitempty" json:"sessionURL,omitempty"  short:"s" long:"session" description:"session store URL (file://, mem://)"`
	TimeoutMs  int    `yaml:"timeoutMs,omitempty" json:"timeoutMs,omitempty"  short:"t" long:"timeout" description:"request timeout in ms, 0 uses transport defaults"`
	Verbose    bool   `yaml:"verbose,omitempty" json:"verbose,omitempty"  short:"v" long:"verbose" description:"debug logging"`

	// EncryptionKey seals the stored session with a scy KMS key URL, e.g. blowfish://default.
	EncryptionKey string `yaml:"encryptionKey,omitempty" json:"encryptionKey,omitempty"  short:"k" long:"key" description:"session encryption key URL, e.g. blowfish://default"`

	// Store, if set, replaces the file store built from SessionURL.
	Store store.Store `yaml:"-" json:"-" no-flag:"true"`

	// Logger, if set, replaces the logger built from Verbose.
	Logger *zap.Logger `yaml:"-" json:"-" no-flag:"true"`

	// Registerer receives session metrics.
	Registerer prometheus.Registerer `yaml:"-" json:"-" no-flag:"true"`

	// InvalidationHandlers observe the session becoming unusable.
	InvalidationHandlers []transport.InvalidationHandler `yaml:"-" json:"-" no-flag:"true"`
}

// Init sets defaults for unset options.
func (c *ClientOptions) Init() {
	if c.BaseURL == "" {
		c.BaseURL = schema.DefaultBaseURL
	}
	if c.SessionURL == "" {
		c.SessionURL = DefaultSessionURL
	}
}

// ApplyEnv overrides options with RAG_* environment variables.
func (c *ClientOptions) ApplyEnv() error {
	if value := os.Getenv(EnvBaseURL); value != "" {
		c.BaseURL = value
	}
	if value := os.Getenv(EnvSessionURL); value != "" {
		c.SessionURL = value
	}
	if value := os.Getenv(EnvSessionKey); value != "" {
		c.EncryptionKey = value
	}
	if value := os.Getenv(EnvTimeoutMs); value != "" {
		timeout, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid %v %q: %w", EnvTimeoutMs, value, err)
		}
		c.TimeoutMs = timeout
	}
	if value := os.Getenv(EnvVerbose); value != "" {
		verbose, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid %v %q: %w", EnvVerbose, value, err)
		}
		c.Verbose = verbose
	}
	return nil
}

// LoadClientOptions reads YAML options from any afs URL.
func LoadClientOptions(ctx context.Context, URL string) (*ClientOptions, error) {
	data, err := afs.New().DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load client options %v: %w", URL, err)
	}
	ret := &ClientOptions{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("invalid client options %v: %w", URL, err)
	}
	return ret, nil
}

// NewClient creates an API client with a persistent session configured via ClientOptions.
func NewClient(ctx context.Context, options *ClientOptions) (*client.Client, error) {
	options.Init()
	logger := options.Logger
	if logger == nil {
		var err error
		if logger, err = options.newLogger(); err != nil {
			return nil, err
		}
	}
	sessionStore := options.Store
	if sessionStore == nil {
		URL, err := expandHome(options.SessionURL)
		if err != nil {
			return nil, err
		}
		var storeOptions []store.FileStoreOption
		if options.EncryptionKey != "" {
			storeOptions = append(storeOptions, store.WithEncryptionKey(options.EncryptionKey))
		}
		if sessionStore, err = store.NewFileStore(ctx, URL, storeOptions...); err != nil {
			return nil, err
		}
	}
	opts := []client.Option{
		client.WithStore(sessionStore),
		client.WithLogger(logger),
		client.WithRegisterer(options.Registerer),
	}
	if options.TimeoutMs > 0 {
		opts = append(opts, client.WithTimeout(time.Duration(options.TimeoutMs)*time.Millisecond))
	}
	for _, handler := range options.InvalidationHandlers {
		opts = append(opts, client.WithInvalidationHandler(handler))
	}
	return client.New(options.BaseURL, opts...)
}

func (c *ClientOptions) newLogger() (*zap.Logger, error) {
	if !c.Verbose {
		return zap.NewNop(), nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(URL string) (string, error) {
	if !strings.HasPrefix(URL, "~") {
		return URL, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home for %v: %w", URL, err)
	}
	return path.Join(home, strings.TrimPrefix(URL, "~")), nil
}
