package client

import "errors"

var (
	ErrUsage          = errors.New("usage: client [flags] register|login <email> <password> | me <token>")
	errUnknownCommand = errors.New("unknown command")
)
