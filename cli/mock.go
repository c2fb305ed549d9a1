package cli

import (
	"context"
	"errors"
	"fmt"
	"github.com/viant/rag/client/auth/mock"
	"github.com/viant/rag/schema"
	"net"
	"net/http"
	"strings"
	"time"
)

func (r *Runner) serveMock(ctx context.Context, cmd *ServeMockCommand) error {
	options, err := mockOptions(cmd)
	if err != nil {
		return err
	}
	service, err := mock.NewService(options...)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cmd.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %v: %w", cmd.Addr, err)
	}
	server := &http.Server{Handler: service.Handler(), ReadHeaderTimeout: 10 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()
	_, _ = fmt.Fprintf(r.stdout, "serving mock API on http://%v%v\n", listener.Addr(), mock.BasePath)
	if err = server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func mockOptions(cmd *ServeMockCommand) ([]mock.Option, error) {
	var ret []mock.Option
	for _, value := range cmd.Users {
		email, password, ok := strings.Cut(value, ":")
		if !ok {
			return nil, fmt.Errorf("invalid user %q, expected email:password", value)
		}
		name, _, _ := strings.Cut(email, "@")
		ret = append(ret, mock.WithUser(name, name, email, password))
	}
	for _, value := range cmd.Faculty {
		id, name, ok := strings.Cut(value, ":")
		if !ok {
			return nil, fmt.Errorf("invalid faculty %q, expected id:name", value)
		}
		ret = append(ret, mock.WithFaculty(&schema.FacultyProfile{FacultyID: id, Name: name}))
	}
	return ret, nil
}
