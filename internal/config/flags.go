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

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-access-token-duration access token duration (e.g., "15m")
//	-refresh-token-duration refresh token duration (e.g., "720h")
//	-reset-token-duration password reset token duration (e.g., "1h")
//	-password-history-depth recent password hashes checked for reuse
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-mailer-relay-url mail relay base URL
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var accessTokenDuration time.Duration
	var refreshTokenDuration time.Duration
	var resetTokenDuration time.Duration
	var passwordHistoryDepth int
	var requestTimeout time.Duration
	var mailerRelayURL string

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token duration (e.g., 15m)")
	flag.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token duration (e.g., 720h)")
	flag.DurationVar(&resetTokenDuration, "reset-token-duration", 0, "Password reset token duration (e.g., 1h)")
	flag.IntVar(&passwordHistoryDepth, "password-history-depth", 0, "Recent password hashes checked for reuse")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&mailerRelayURL, "mailer-relay-url", "", "Mail relay base URL")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:         tokenSignKey,
			TokenIssuer:          tokenIssuer,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
			ResetTokenDuration:   resetTokenDuration,
			PasswordHistoryDepth: passwordHistoryDepth,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Mailer: Mailer{
			RelayURL: mailerRelayURL,
		},
		Workers:      Workers{},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
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

	if port < 1 {
		return errors.New("port number is a positive integer")
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
