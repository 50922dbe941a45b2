package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-auth-keeper/internal/adapter"
	"github.com/MKhiriev/go-auth-keeper/internal/logger"
	"github.com/MKhiriev/go-auth-keeper/models"
)

const (
	cmdRegister = "register"
	cmdLogin    = "login"
	cmdMe       = "me"
)

type App struct {
	adapter adapter.ServerAdapter
	out     io.Writer

	logger *logger.Logger
}

func NewApp(serverAdapter adapter.ServerAdapter, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter: serverAdapter,
		out:     out,
		logger:  logger,
	}
}

// Run executes one subcommand:
//
//	register <email> <password>
//	login <email> <password>
//	me <token>
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}

	command, rest := args[0], args[1:]
	a.logger.Debug().Str("command", command).Msg("running command")

	switch command {
	case cmdRegister:
		credentials, err := credentialsFromArgs(rest)
		if err != nil {
			return err
		}
		user, err := a.adapter.Register(ctx, credentials)
		if err != nil {
			return fmt.Errorf("%s: %w", cmdRegister, err)
		}
		return a.print(user)

	case cmdLogin:
		credentials, err := credentialsFromArgs(rest)
		if err != nil {
			return err
		}
		session, err := a.adapter.Login(ctx, credentials)
		if err != nil {
			return fmt.Errorf("%s: %w", cmdLogin, err)
		}
		return a.print(session)

	case cmdMe:
		if len(rest) != 1 {
			return ErrUsage
		}
		a.adapter.SetToken(rest[0])
		user, err := a.adapter.Me(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", cmdMe, err)
		}
		return a.print(user)

	default:
		return fmt.Errorf("%w %q: %w", errUnknownCommand, command, ErrUsage)
	}
}

func (a *App) print(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func credentialsFromArgs(args []string) (models.Credentials, error) {
	if len(args) != 2 {
		return models.Credentials{}, ErrUsage
	}
	return models.Credentials{Email: args[0], Password: args[1]}, nil
}
