package config

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	gossh "golang.org/x/crypto/ssh"
)

func TestInitialize(t *testing.T) {
	tempDir := t.TempDir()
	if _, err := Initialize(tempDir, log.New(ioutil.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(tempDir)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("OpenEventLog", func(t *testing.T) {
		fd, err := cfg.OpenEventLog()
		assert.Nil(t, err)
		fd.Close()

		fd, err = cfg.ReadEventLog()
		assert.Nil(t, err)
		fd.Close()
	})

	t.Run("PrivateKeyPem", func(t *testing.T) {
		keyPem, err := cfg.PrivateKeyPem()
		assert.Nil(t, err)

		_, err = gossh.ParsePrivateKey(keyPem)
		assert.Nil(t, err)
	})

	t.Run("HistoryPath", func(t *testing.T) {
		assert.Contains(t, cfg.HistoryPath(), tempDir)
	})
}

func TestInitializeFs_KeepsExisting(t *testing.T) {
	fs := afero.NewMemMapFs()
	custom := []byte("echo: true\nprompt: rtl\nshell: /bin/sh\ncolor: never\nssh_host_key: key.pem\n")
	assert.NoError(t, afero.WriteFile(fs, ConfigurationName, custom, 0600))

	cfg, err := InitializeFs(fs, log.New(ioutil.Discard, "", 0))
	if err != nil {
		t.Fatal(err)
	}

	assert.True(t, cfg.Echo)
	assert.Equal(t, "rtl", cfg.Prompt)

	got, err := afero.ReadFile(fs, ConfigurationName)
	assert.Nil(t, err)
	assert.Equal(t, custom, got)

	ok, err := afero.Exists(fs, "key.pem")
	assert.Nil(t, err)
	assert.True(t, ok)
}

func TestLoadFs_Strict(t *testing.T) {
	fs := afero.NewMemMapFs()
	assert.NoError(t, afero.WriteFile(fs, ConfigurationName, []byte("motd: hello\n"), 0600))

	_, err := LoadFs(fs)
	assert.Error(t, err)
}
