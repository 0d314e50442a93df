// Package config maps environment variables and cobra flags onto the
// pipeline's invocation inputs. Flags win over environment values.
package config

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/zmasarw3h/munero-deploycheck/pkg/types"
)

// Viper keys with their environment-variable bindings.
const (
	KeyDomain     = "domain"
	KeyExpectedIP = "expected_ip"
	KeyBaseURL    = "base_url"
	KeyAuthUser   = "basic_auth_user"
	KeyAuthPass   = "basic_auth_password"
	KeyInsecure   = "insecure_tls"
	KeyLogLevel   = "log_level"
)

var envBindings = map[string]string{
	KeyDomain:     "DEMO_DOMAIN",
	KeyExpectedIP: "EXPECTED_IP",
	KeyBaseURL:    "BASE_URL",
	KeyAuthUser:   "BASIC_AUTH_USER",
	KeyAuthPass:   "BASIC_AUTH_PASSWORD",
	KeyInsecure:   "INSECURE_TLS",
	KeyLogLevel:   "LOG_LEVEL",
}

// New returns a viper instance with all environment bindings applied.
// Each command gets its own instance so parallel tests don't share state.
func New() *viper.Viper {
	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return v
}

// BindFlags overlays any defined matching flags onto the viper keys.
// Flag names use dashes where keys use underscores (--expected-ip).
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	flagNames := map[string]string{
		KeyDomain:     "domain",
		KeyExpectedIP: "expected-ip",
		KeyBaseURL:    "base-url",
		KeyAuthUser:   "user",
		KeyAuthPass:   "password",
		KeyInsecure:   "insecure",
	}
	for key, name := range flagNames {
		if f := fs.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// TargetFrom builds the immutable target environment for this run.
func TargetFrom(v *viper.Viper) types.Target {
	return types.Target{
		Domain:      v.GetString(KeyDomain),
		ExpectedIP:  v.GetString(KeyExpectedIP),
		BaseURL:     v.GetString(KeyBaseURL),
		InsecureTLS: v.GetBool(KeyInsecure),
	}
}

// CredentialsFrom builds the basic-auth pair for this run.
func CredentialsFrom(v *viper.Viper) types.Credentials {
	return types.Credentials{
		Username: v.GetString(KeyAuthUser),
		Password: v.GetString(KeyAuthPass),
	}
}
