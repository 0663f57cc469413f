package config

import (
	"crypto/subtle"
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"
)

// Color modes for the kernel log.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Configuration struct {
	configFs afero.Fs

	Echo        bool   `json:"echo"`
	Prompt      string `json:"prompt" validate:"required"`
	Shell       string `json:"shell" validate:"required"`
	Color       string `json:"color" validate:"oneof=auto always never"`
	HistoryFile string `json:"history_file"`
	EventLog    string `json:"event_log"`

	SSHPort       int      `json:"ssh_port" validate:"gte=0,lte=65535"`
	SSHHostKey    string   `json:"ssh_host_key" validate:"required"`
	SSHPasswords  []string `json:"ssh_passwords" validate:"unique,dive,required"`
	SSHOutputRate int64    `json:"ssh_output_rate" validate:"gte=0"`
	SSHAllowShell bool     `json:"ssh_allow_shell"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Fs returns the filesystem the configuration was loaded from.
func (c *Configuration) Fs() afero.Fs {
	return c.configFs
}

// PrivateKeyPem returns the bytes of the SSH host key.
func (c *Configuration) PrivateKeyPem() ([]byte, error) {
	return afero.ReadFile(c.Fs(), c.SSHHostKey)
}

// OpenEventLog opens the event log in an append only state. A nil file is
// returned if the event log is disabled.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	if c.EventLog == "" {
		return nil, nil
	}
	return c.Fs().OpenFile(c.EventLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.Fs().OpenFile(c.EventLog, os.O_RDONLY, 0600)
}

// HistoryPath returns the path of the interactive history file, or an empty
// string if history is disabled.
func (c *Configuration) HistoryPath() string {
	if c.HistoryFile == "" {
		return ""
	}
	if bp, ok := c.Fs().(*afero.BasePathFs); ok {
		if p, err := bp.RealPath(c.HistoryFile); err == nil {
			return p
		}
	}
	return filepath.Clean(c.HistoryFile)
}

// CheckPassword reports whether the password unlocks the remote shell.
func (c *Configuration) CheckPassword(password string) bool {
	ok := false
	for _, v := range c.SSHPasswords {
		if subtle.ConstantTimeCompare([]byte(v), []byte(password)) == 1 {
			ok = true
		}
	}
	return ok
}

// UseColor resolves the color mode given whether the console is a terminal.
func (c *Configuration) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// Default returns the built-in configuration backed by an in-memory
// filesystem.
func Default() *Configuration {
	out := defaultConfig()
	out.configFs = afero.NewMemMapFs()
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
