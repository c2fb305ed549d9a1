package rag

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/rag/client/auth/mock"
	"github.com/viant/rag/client/auth/store"
	"github.com/viant/rag/schema"
	"strings"
	"testing"
)

func TestLoadClientOptions(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/rag/client.yaml"
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader("baseURL: http://rag.local/api/v1\nsessionURL: mem://localhost/rag/session.json\ntimeoutMs: 2500\n")))

	options, err := LoadClientOptions(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, &ClientOptions{BaseURL: "http://rag.local/api/v1", SessionURL: "mem://localhost/rag/session.json", TimeoutMs: 2500}, options)

	_, err = LoadClientOptions(ctx, "mem://localhost/rag/missing.yaml")
	assert.Error(t, err)
}

func TestClientOptions_Init(t *testing.T) {
	options := &ClientOptions{}
	options.Init()
	assert.Equal(t, schema.DefaultBaseURL, options.BaseURL)
	assert.Equal(t, DefaultSessionURL, options.SessionURL)
}

func TestClientOptions_ApplyEnv(t *testing.T) {
	testCases := []struct {
		description string
		env         map[string]string
		expect      *ClientOptions
		hasError    bool
	}{
		{
			description: "overrides",
			env:         map[string]string{EnvBaseURL: "http://env/api/v1", EnvSessionURL: "mem://localhost/env.json", EnvSessionKey: "blowfish://default", EnvTimeoutMs: "100", EnvVerbose: "true"},
			expect:      &ClientOptions{BaseURL: "http://env/api/v1", SessionURL: "mem://localhost/env.json", EncryptionKey: "blowfish://default", TimeoutMs: 100, Verbose: true},
		},
		{
			description: "unset keeps values",
			env:         map[string]string{},
			expect:      &ClientOptions{BaseURL: "http://file/api/v1"},
		},
		{
			description: "invalid timeout",
			env:         map[string]string{EnvTimeoutMs: "soon"},
			hasError:    true,
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			for _, key := range []string{EnvBaseURL, EnvSessionURL, EnvSessionKey, EnvTimeoutMs, EnvVerbose} {
				t.Setenv(key, testCase.env[key])
			}
			options := &ClientOptions{BaseURL: "http://file/api/v1"}
			err := options.ApplyEnv()
			if testCase.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, options)
		})
	}
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()
	server, err := mock.NewHTTPTestServer(mock.WithUser("Ada", "Lovelace", "ada@example.com", "analytical"))
	require.NoError(t, err)
	defer server.Close()

	options := &ClientOptions{BaseURL: server.URL, SessionURL: "mem://localhost/rag/new-client.json", TimeoutMs: 5000}
	aClient, err := NewClient(ctx, options)
	require.NoError(t, err)
	_, err = aClient.Authenticate(ctx, &schema.AuthenticationRequest{Email: "ada@example.com", Password: "analytical"})
	require.NoError(t, err)

	persisted, err := store.NewFileStore(ctx, options.SessionURL)
	require.NoError(t, err)
	assert.Equal(t, aClient.Transport().Store().AccessToken(), persisted.AccessToken())
}

func TestNewClient_EncryptedSession(t *testing.T) {
	ctx := context.Background()
	server, err := mock.NewHTTPTestServer(mock.WithUser("Ada", "Lovelace", "ada@example.com", "analytical"))
	require.NoError(t, err)
	defer server.Close()
	fs := afs.New()
	options := &ClientOptions{BaseURL: server.URL, SessionURL: "mem://localhost/rag/sealed-client.json", EncryptionKey: store.DefaultEncryptionKey}
	defer func() { _ = fs.Delete(ctx, options.SessionURL) }()

	aClient, err := NewClient(ctx, options)
	require.NoError(t, err)
	pair, err := aClient.Authenticate(ctx, &schema.AuthenticationRequest{Email: "ada@example.com", Password: "analytical"})
	require.NoError(t, err)

	data, err := fs.DownloadWithURL(ctx, options.SessionURL)
	require.NoError(t, err)
	assert.NotContains(t, string(data), pair.AccessToken)
	assert.NotContains(t, string(data), pair.RefreshToken)

	reopened, err := NewClient(ctx, &ClientOptions{BaseURL: server.URL, SessionURL: options.SessionURL, EncryptionKey: store.DefaultEncryptionKey})
	require.NoError(t, err)
	me, err := reopened.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", me.Email)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/ada")
	URL, err := expandHome("~/.ragcli/session.json")
	require.NoError(t, err)
	assert.Equal(t, "/home/ada/.ragcli/session.json", URL)
	URL, err = expandHome("mem://localhost/session.json")
	require.NoError(t, err)
	assert.Equal(t, "mem://localhost/session.json", URL)
}
