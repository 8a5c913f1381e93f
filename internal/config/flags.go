package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// parseFlags parses the command-line flags in args.
//
// Flags:
//
//	-a identity service address in format [host]:[port]
//	-d database DSN (SQLite file path or ":memory:")
//	-c/-config json file path with configs
//	-key-algorithm algorithm of new vault keys (A256GCM, C20P)
//	-log-level log level
//	-clipboard-window clipboard exposure window in ticks
//	-clipboard-tick clipboard countdown tick (e.g., "1s")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-identity-check-interval identity re-validation interval (e.g., "1m")
func parseFlags(args []string) (*StructuredConfig, error) {
	fs := flag.NewFlagSet("vaultx", flag.ContinueOnError)

	var adapterAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var keyAlgorithm string
	var logLevel string
	var clipboardWindow int
	var clipboardTick time.Duration
	var requestTimeout time.Duration
	var identityCheckInterval time.Duration

	fs.Var(&adapterAddress, "a", "Identity service address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&keyAlgorithm, "key-algorithm", "", "Vault key algorithm (A256GCM, C20P)")
	fs.StringVar(&logLevel, "log-level", "", "Log level")
	fs.IntVar(&clipboardWindow, "clipboard-window", 0, "Clipboard exposure window in ticks")
	fs.DurationVar(&clipboardTick, "clipboard-tick", 0, "Clipboard countdown tick (e.g., 1s)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&identityCheckInterval, "identity-check-interval", 0, "Identity re-validation interval (e.g., 1m)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			KeyAlgorithm: keyAlgorithm,
			LogLevel:     logLevel,
		},
		Clipboard: Clipboard{
			Window: clipboardWindow,
			Tick:   clipboardTick,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress.URL(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			IdentityCheckInterval: identityCheckInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// URL returns the address as an http base URL, or "" if unset.
func (a *NetAddress) URL() string {
	if s := a.String(); s != "" {
		return "http://" + s
	}
	return ""
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be between 1 and 65535")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
