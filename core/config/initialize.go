package config

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"log"
	"os"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration and an SSH host key to dir,
// leaving existing files alone.
func Initialize(dir string, logger *log.Logger) (*Configuration, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return InitializeFs(afero.NewBasePathFs(afero.NewOsFs(), dir), logger)
}

// InitializeFs is Initialize on an arbitrary filesystem.
func InitializeFs(fs afero.Fs, logger *log.Logger) (*Configuration, error) {
	logger.Println("Initializing configuration...")

	if ok, err := afero.Exists(fs, ConfigurationName); err != nil {
		return nil, err
	} else if ok {
		logger.Printf("- %s exists, skipping\n", ConfigurationName)
	} else {
		logger.Printf("- Writing %s\n", ConfigurationName)
		if err := afero.WriteFile(fs, ConfigurationName, defaultConfigData, 0600); err != nil {
			return nil, err
		}
	}

	cfg, err := LoadFs(fs)
	if err != nil {
		return nil, err
	}

	if ok, err := afero.Exists(fs, cfg.SSHHostKey); err != nil {
		return nil, err
	} else if ok {
		logger.Printf("- %s exists, skipping\n", cfg.SSHHostKey)
	} else {
		logger.Printf("- Generating host key %s\n", cfg.SSHHostKey)
		keyPem, err := generateHostKey()
		if err != nil {
			return nil, err
		}
		if err := afero.WriteFile(fs, cfg.SSHHostKey, keyPem, 0600); err != nil {
			return nil, err
		}
	}

	logger.Println("Done!")
	return cfg, nil
}

func generateHostKey() ([]byte, error) {
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}
