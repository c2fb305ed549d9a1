package cli

import (
	"bytes"
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/rag/client/auth/mock"
	"github.com/viant/rag/schema"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"strconv"
	"strings"
	"testing"
)

type session struct {
	t      *testing.T
	runner *Runner
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	global []string
}

func newSession(t *testing.T, baseURL, sessionURL string) *session {
	for _, key := range []string{"RAG_BASE_URL", "RAG_SESSION_URL", "RAG_SESSION_KEY", "RAG_TIMEOUT_MS", "RAG_VERBOSE", EnvPassword} {
		t.Setenv(key, "")
	}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &session{
		t:      t,
		runner: New(stdout, stderr),
		stdout: stdout,
		stderr: stderr,
		global: []string{"--url", baseURL, "--session", sessionURL, "--env", ""},
	}
}

func (s *session) run(args ...string) (string, error) {
	s.stdout.Reset()
	s.stderr.Reset()
	err := s.runner.Run(context.Background(), append(append([]string{}, s.global...), args...))
	return s.stdout.String(), err
}

func TestRunner_Session(t *testing.T) {
	ctx := context.Background()
	server, err := mock.NewHTTPTestServer(mock.WithUser("Ada", "Lovelace", "ada@example.com", "analytical"))
	require.NoError(t, err)
	defer server.Close()
	cli := newSession(t, server.URL, "mem://localhost/cli/session.json")

	_, err = cli.run("whoami")
	require.Error(t, err)
	assert.Contains(t, cli.stderr.String(), "ragcli login")

	output, err := cli.run("login", "--email", "ada@example.com", "--password", "analytical")
	require.NoError(t, err)
	assert.Equal(t, "logged in as ada@example.com\n", output)

	output, err = cli.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, output, `"email": "ada@example.com"`)

	// a new invocation finds the stored pair and refreshes it transparently
	server.ExpireAccessTokens()
	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/cli/paper.txt", 0o644, strings.NewReader("sparse attention")))
	output, err = cli.run("upload", "mem://localhost/cli/paper.txt")
	require.NoError(t, err)
	assert.Contains(t, output, `"fileName": "paper.txt"`)
	assert.Equal(t, 1, server.RefreshCount())

	output, err = cli.run("documents")
	require.NoError(t, err)
	assert.Contains(t, output, "paper.txt")

	document := &schema.Document{}
	output, err = cli.run("upload", "mem://localhost/cli/paper.txt")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(output), document))

	output, err = cli.run("ask", "--document", itoa(document.ID), "--question", "what kind of attention?")
	require.NoError(t, err)
	assert.Contains(t, output, "sparse attention")

	output, err = cli.run("history", "--document", itoa(document.ID))
	require.NoError(t, err)
	assert.Contains(t, output, "what kind of attention?")

	output, err = cli.run("delete-document", "--document", itoa(document.ID))
	require.NoError(t, err)
	assert.Equal(t, "deleted document "+itoa(document.ID)+"\n", output)

	output, err = cli.run("logout")
	require.NoError(t, err)
	assert.Equal(t, "logged out\n", output)
	assert.Empty(t, cli.stderr.String())
	exists, err := fs.Exists(ctx, "mem://localhost/cli/session.json")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRunner_RefreshExhausted(t *testing.T) {
	server, err := mock.NewHTTPTestServer(mock.WithUser("Ada", "Lovelace", "ada@example.com", "analytical"))
	require.NoError(t, err)
	defer server.Close()
	cli := newSession(t, server.URL, "mem://localhost/cli/exhausted.json")
	t.Setenv(EnvPassword, "analytical")

	_, err = cli.run("login", "--email", "ada@example.com")
	require.NoError(t, err)
	server.ExpireAccessTokens()
	server.RevokeRefreshTokens()

	_, err = cli.run("documents")
	require.Error(t, err)
	assert.Contains(t, cli.stderr.String(), "refresh_failed")
	assert.Contains(t, cli.stderr.String(), "ragcli login")
}

func TestRunner_EncryptedLogin(t *testing.T) {
	ctx := context.Background()
	server, err := mock.NewHTTPTestServer(mock.WithUser("Ada", "Lovelace", "ada@example.com", "analytical"))
	require.NoError(t, err)
	defer server.Close()
	fs := afs.New()
	credentialsURL := "mem://localhost/cli/ada-credentials.json"
	sessionURL := "mem://localhost/cli/sealed-session.json"
	defer func() {
		_ = fs.Delete(ctx, credentialsURL)
		_ = fs.Delete(ctx, sessionURL)
	}()
	resource := scy.NewResource(&cred.Basic{}, credentialsURL, "blowfish://default")
	require.NoError(t, scy.New().Store(ctx, scy.NewSecret(&cred.Basic{Username: "ada@example.com", Password: "analytical"}, resource)))

	cli := newSession(t, server.URL, sessionURL)
	cli.global = append(cli.global, "--key", "blowfish://default")
	output, err := cli.run("login", "--credentials", credentialsURL+"|blowfish://default")
	require.NoError(t, err)
	assert.Equal(t, "logged in as ada@example.com\n", output)

	data, err := fs.DownloadWithURL(ctx, sessionURL)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "accessToken")

	output, err = cli.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, output, `"email": "ada@example.com"`)
}

func TestRunner_Faculty(t *testing.T) {
	ctx := context.Background()
	profile := &schema.FacultyProfile{FacultyID: "f-1", Name: "Grace Hopper"}
	server, err := mock.NewHTTPTestServer(
		mock.WithUser("Ada", "Lovelace", "ada@example.com", "analytical"),
		mock.WithFaculty(profile, &schema.Article{Title: "COBOL", Year: 1959}),
	)
	require.NoError(t, err)
	defer server.Close()
	cli := newSession(t, server.URL, "mem://localhost/cli/faculty.json")
	_, err = cli.run("register", "--first-name", "Alan", "--last-name", "Turing", "--email", "alan@example.com", "--password", "enigma-machine")
	require.NoError(t, err)

	fs := afs.New()
	require.NoError(t, fs.Upload(ctx, "mem://localhost/cli/faculty.csv", 0o644, strings.NewReader("f-1,Grace Hopper\n")))
	output, err := cli.run("faculty-upload", "--limit", "5", "mem://localhost/cli/faculty.csv")
	require.NoError(t, err)
	assert.Contains(t, output, `"publication_count": 1`)

	output, err = cli.run("faculty-batches")
	require.NoError(t, err)
	assert.Contains(t, output, "faculty.csv")

	output, err = cli.run("faculty-profile", "--faculty", "f-1")
	require.NoError(t, err)
	assert.Contains(t, output, "Grace Hopper")

	_, err = cli.run("faculty-export", "--faculty", "f-1", "--format", "excel", "--output", "mem://localhost/cli/report.xlsx")
	require.NoError(t, err)
	data, err := fs.DownloadWithURL(ctx, "mem://localhost/cli/report.xlsx")
	require.NoError(t, err)
	assert.Contains(t, string(data), "COBOL (1959)")
}

func TestRunner_Errors(t *testing.T) {
	cli := newSession(t, "http://127.0.0.1:1/api/v1", "mem://localhost/cli/errors.json")
	testCases := []struct {
		description string
		args        []string
	}{
		{description: "no command"},
		{description: "unknown command", args: []string{"dance"}},
		{description: "missing required flag", args: []string{"ask", "--document", "1"}},
		{description: "missing password", args: []string{"login", "--email", "ada@example.com"}},
		{description: "missing email", args: []string{"login"}},
		{description: "missing credentials", args: []string{"login", "--credentials", "mem://localhost/cli/absent-credentials.json"}},
		{description: "invalid format", args: []string{"faculty-export", "--faculty", "f-1", "--format", "pdf"}},
	}
	for _, testCase := range testCases {
		_, err := cli.run(testCase.args...)
		assert.Error(t, err, testCase.description)
	}

	output, err := cli.run("--help")
	assert.NoError(t, err)
	assert.Contains(t, output, "faculty-export")
}

func TestRunner_ClientOptionsPrecedence(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	configURL := "mem://localhost/cli/precedence.yaml"
	require.NoError(t, fs.Upload(ctx, configURL, 0o644, strings.NewReader("baseURL: http://yaml/api/v1\nsessionURL: mem://localhost/yaml.json\ntimeoutMs: 100\n")))
	defer func() { _ = fs.Delete(ctx, configURL) }()
	cli := newSession(t, "", "")
	t.Setenv("RAG_SESSION_URL", "mem://localhost/env.json")
	t.Setenv("RAG_TIMEOUT_MS", "200")

	options := &Options{ConfigURL: configURL}
	options.Client.TimeoutMs = 300
	resolved, err := cli.runner.clientOptions(ctx, options)
	require.NoError(t, err)
	assert.Equal(t, "http://yaml/api/v1", resolved.BaseURL, "the config file applies when nothing overrides it")
	assert.Equal(t, "mem://localhost/env.json", resolved.SessionURL, "environment overrides the config file")
	assert.Equal(t, 300, resolved.TimeoutMs, "flags override the environment")
}

func TestMockOptions(t *testing.T) {
	options, err := mockOptions(&ServeMockCommand{Users: []string{"ada@example.com:analytical"}, Faculty: []string{"f-1:Grace Hopper"}})
	require.NoError(t, err)
	assert.Len(t, options, 2)
	service, err := mock.NewService(options...)
	require.NoError(t, err)
	assert.NotNil(t, service.Handler())

	_, err = mockOptions(&ServeMockCommand{Users: []string{"ada@example.com"}})
	assert.Error(t, err)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
