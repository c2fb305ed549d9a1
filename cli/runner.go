package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/rag"
	"github.com/viant/rag/client"
	"github.com/viant/rag/client/auth/store"
	"github.com/viant/rag/client/auth/transport"
	"github.com/viant/rag/schema"
	"github.com/viant/scy"
	"github.com/viant/scy/cred"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EnvPassword supplies the password when --password is omitted.
const EnvPassword = "RAG_PASSWORD"

// Runner executes ragcli commands.
type Runner struct {
	stdout io.Writer
	stderr io.Writer
	fs     afs.Service
}

// New creates a runner writing results to stdout and diagnostics to stderr.
func New(stdout, stderr io.Writer) *Runner {
	return &Runner{stdout: stdout, stderr: stderr, fs: afs.New()}
}

// Run runs ragcli with process arguments.
func Run(args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	return New(os.Stdout, os.Stderr).Run(ctx, args)
}

func (r *Runner) Run(ctx context.Context, args []string) error {
	options := &Options{}
	parser := flags.NewParser(options, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			_, _ = fmt.Fprintln(r.stdout, flagsErr.Message)
			return nil
		}
		return err
	}
	if err := loadEnv(options.EnvFile); err != nil {
		return err
	}
	if parser.Active.Name == "serve-mock" {
		return r.serveMock(ctx, &options.ServeMock)
	}
	clientOptions, err := r.clientOptions(ctx, options)
	if err != nil {
		return err
	}
	aClient, err := rag.NewClient(ctx, clientOptions)
	if err != nil {
		return err
	}
	return r.execute(ctx, parser.Active.Name, options, aClient)
}

// clientOptions resolves options: flags over RAG_* variables over the config file.
func (r *Runner) clientOptions(ctx context.Context, options *Options) (*rag.ClientOptions, error) {
	ret := &rag.ClientOptions{}
	if options.ConfigURL != "" {
		var err error
		if ret, err = rag.LoadClientOptions(ctx, options.ConfigURL); err != nil {
			return nil, err
		}
	}
	if err := ret.ApplyEnv(); err != nil {
		return nil, err
	}
	flagged := options.Client
	if flagged.BaseURL != "" {
		ret.BaseURL = flagged.BaseURL
	}
	if flagged.SessionURL != "" {
		ret.SessionURL = flagged.SessionURL
	}
	if flagged.EncryptionKey != "" {
		ret.EncryptionKey = flagged.EncryptionKey
	}
	if flagged.TimeoutMs > 0 {
		ret.TimeoutMs = flagged.TimeoutMs
	}
	if flagged.Verbose {
		ret.Verbose = true
	}
	ret.InvalidationHandlers = append(ret.InvalidationHandlers, r.onInvalidation)
	return ret, nil
}

func (r *Runner) onInvalidation(_ context.Context, invalidation *transport.Invalidation) {
	if invalidation.Reason == transport.ReasonLogout {
		return
	}
	_, _ = fmt.Fprintf(r.stderr, "session ended (%v), run `ragcli login` to log in again\n", invalidation.Reason)
}

func (r *Runner) execute(ctx context.Context, command string, options *Options, aClient *client.Client) error {
	switch command {
	case "register":
		cmd := options.Register
		password, err := passwordOf(cmd.Password)
		if err != nil {
			return err
		}
		if _, err = aClient.Register(ctx, &schema.RegisterRequest{FirstName: cmd.FirstName, LastName: cmd.LastName, Email: cmd.Email, Password: password}); err != nil {
			return err
		}
		return r.printf("registered %v\n", cmd.Email)
	case "login":
		request, err := loginRequest(ctx, &options.Login)
		if err != nil {
			return err
		}
		if _, err = aClient.Authenticate(ctx, request); err != nil {
			return err
		}
		return r.printf("logged in as %v\n", request.Email)
	case "logout":
		if err := aClient.Logout(ctx); err != nil {
			return err
		}
		return r.printf("logged out\n")
	case "whoami":
		return printResult(ctx, r, aClient.Me)
	case "documents":
		return printResult(ctx, r, aClient.ListDocuments)
	case "upload":
		document, err := aClient.UploadDocumentURL(ctx, options.Upload.Positional.URL)
		if err != nil {
			return err
		}
		return r.printJSON(document)
	case "delete-document":
		if err := aClient.DeleteDocument(ctx, options.Delete.ID); err != nil {
			return err
		}
		return r.printf("deleted document %v\n", options.Delete.ID)
	case "ask":
		answer, err := aClient.Ask(ctx, &schema.QaRequest{DocumentID: options.Ask.ID, Question: options.Ask.Question})
		if err != nil {
			return err
		}
		return r.printJSON(answer)
	case "history":
		history, err := aClient.History(ctx, options.History.ID)
		if err != nil {
			return err
		}
		return r.printJSON(history)
	case "faculty-upload":
		return r.uploadFaculty(ctx, &options.Faculty, aClient)
	case "faculty-batches":
		return printResult(ctx, r, aClient.FacultyBatches)
	case "faculty-profile":
		profile, err := aClient.FacultyProfile(ctx, options.Profile.ID)
		if err != nil {
			return err
		}
		return r.printJSON(profile)
	case "faculty-export":
		return r.export(ctx, &options.Export, aClient)
	}
	return fmt.Errorf("unsupported command: %v", command)
}

func (r *Runner) uploadFaculty(ctx context.Context, cmd *FacultyUpload, aClient *client.Client) error {
	URL := cmd.Positional.URL
	data, err := r.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to read %v: %w", URL, err)
	}
	_, name := url.Split(URL, file.Scheme)
	summaries, err := aClient.UploadFacultyList(ctx, name, bytes.NewReader(data), cmd.ArticlesLimit)
	if err != nil {
		return err
	}
	return r.printJSON(summaries)
}

func (r *Runner) export(ctx context.Context, cmd *ExportCommand, aClient *client.Client) error {
	report, err := aClient.ExportFacultyProfile(ctx, cmd.ID, schema.ExportFormat(cmd.Format))
	if err != nil {
		return err
	}
	dest := cmd.Dest
	if dest == "" {
		dest = report.FileName
	}
	if err = r.fs.Upload(ctx, dest, 0o644, bytes.NewReader(report.Data)); err != nil {
		return fmt.Errorf("failed to write %v: %w", dest, err)
	}
	return r.printf("exported %v (%d bytes)\n", dest, len(report.Data))
}

func printResult[T any](ctx context.Context, r *Runner, fn func(ctx context.Context, options ...client.RequestOption) (T, error)) error {
	result, err := fn(ctx)
	if err != nil {
		return err
	}
	return r.printJSON(result)
}

func (r *Runner) printJSON(value interface{}) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.stdout, string(data))
	return err
}

func (r *Runner) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(r.stdout, format, args...)
	return err
}

func passwordOf(flagged string) (string, error) {
	if flagged != "" {
		return flagged, nil
	}
	if password := os.Getenv(EnvPassword); password != "" {
		return password, nil
	}
	return "", fmt.Errorf("password was empty, use --password or %v", EnvPassword)
}

func loginRequest(ctx context.Context, cmd *LoginCommand) (*schema.AuthenticationRequest, error) {
	if cmd.Credentials != "" {
		basic, err := loadCredentials(ctx, cmd.Credentials)
		if err != nil {
			return nil, err
		}
		return &schema.AuthenticationRequest{Email: basic.Username, Password: basic.Password}, nil
	}
	if cmd.Email == "" {
		return nil, fmt.Errorf("email was empty, use --email or --credentials")
	}
	password, err := passwordOf(cmd.Password)
	if err != nil {
		return nil, err
	}
	return &schema.AuthenticationRequest{Email: cmd.Email, Password: password}, nil
}

// loadCredentials reads a scy basic credential stored at URL[|key].
func loadCredentials(ctx context.Context, location string) (*cred.Basic, error) {
	URL, key := location, store.DefaultEncryptionKey
	if index := strings.Index(location, "|"); index != -1 {
		URL, key = location[:index], location[index+1:]
	}
	secret, err := scy.New().Load(ctx, scy.NewResource(&cred.Basic{}, URL, key))
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials %v: %w", URL, err)
	}
	basic, ok := secret.Target.(*cred.Basic)
	if !ok || basic.Username == "" || basic.Password == "" {
		return nil, fmt.Errorf("invalid credentials %v: expected username and password", URL)
	}
	return basic, nil
}

func loadEnv(location string) error {
	if location == "" {
		return nil
	}
	err := godotenv.Load(location)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load %v: %w", location, err)
}
