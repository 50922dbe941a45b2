package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

const (
	defaultClientServerAddress  = "http://localhost:8080"
	defaultClientRequestTimeout = 10 * time.Second
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the auth server.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout is the default timeout for outbound client requests.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// ClientConfig is the configuration of the command-line client.
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter `envPrefix:"ADAPTER_"`
}

// GetClientConfig builds and validates the client configuration from
// environment variables, the leading flags of args and defaults.
//
// It returns the remaining, non-flag arguments (the sub-command and its
// operands) alongside the config.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	flagCfg := &ClientConfig{}
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&flagCfg.Adapter.HTTPAddress, "server", "", "Auth server base URL")
	fs.DurationVar(&flagCfg.Adapter.RequestTimeout, "timeout", 0, "Request timeout (e.g., 10s)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	defaults := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    defaultClientServerAddress,
			RequestTimeout: defaultClientRequestTimeout,
		},
	}

	cfg := new(ClientConfig)
	var err error
	for _, layer := range []*ClientConfig{envCfg, flagCfg, defaults} {
		err = errors.Join(err, mergo.Merge(cfg, layer))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("error merging configs: %w", err)
	}

	if err = cfg.validate(); err != nil {
		return nil, nil, err
	}

	return cfg, fs.Args(), nil
}
