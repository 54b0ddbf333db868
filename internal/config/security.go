package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecurityConfig is the security policy loaded from YAML: which auth
// provider runs, its password policy, the public endpoint allowlist,
// and where the JWT signing secret comes from. Secrets themselves stay
// in the environment; the file only names the variable.
type SecurityConfig struct {
	Security struct {
		Auth struct {
			Provider string `yaml:"provider"`
			Staff    struct {
				MinPasswordLength int `yaml:"min_password_length"`
			} `yaml:"staff"`
		} `yaml:"auth"`
		PublicEndpoints []string `yaml:"public_endpoints"`
		JWT             struct {
			SecretEnv   string `yaml:"secret_env"`
			ExpiryHours int    `yaml:"expiry_hours"`
		} `yaml:"jwt"`
	} `yaml:"security"`
}

// LoadSecurityConfig reads and validates the policy file at path. The
// path comes from SECURITY_CONFIG_PATH, not from request input.
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	// #nosec G304 -- path originates from operator configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config SecurityConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validateSecurityConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &config, nil
}

func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.Auth.Provider == "" {
		return fmt.Errorf("auth provider is required")
	}

	// The staff-env provider owns the only password policy we enforce.
	if config.Security.Auth.Provider == "staff-env" {
		length := config.Security.Auth.Staff.MinPasswordLength
		if length <= 0 {
			return fmt.Errorf("min_password_length must be positive")
		}
		if length < 8 {
			return fmt.Errorf("min_password_length must be at least 8")
		}
	}

	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if config.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	return nil
}

// GetAuthProvider returns the configured provider name.
func (c *SecurityConfig) GetAuthProvider() string {
	return c.Security.Auth.Provider
}

// GetMinPasswordLength returns the staff password minimum.
func (c *SecurityConfig) GetMinPasswordLength() int {
	return c.Security.Auth.Staff.MinPasswordLength
}

// GetPublicEndpoints returns the path prefixes that skip auth.
func (c *SecurityConfig) GetPublicEndpoints() []string {
	return c.Security.PublicEndpoints
}

// GetJWTSecretEnv returns the environment variable holding the signing
// secret.
func (c *SecurityConfig) GetJWTSecretEnv() string {
	return c.Security.JWT.SecretEnv
}

// GetJWTExpiryHours returns the issued token lifetime in hours.
func (c *SecurityConfig) GetJWTExpiryHours() int {
	return c.Security.JWT.ExpiryHours
}
