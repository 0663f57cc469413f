package commands

import (
	"testing"

	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/spf13/afero"
)

func TestLs(t *testing.T) {
	withDesign := func(t *testing.T, k *kernel.Kernel, fs afero.Fs) {
		loadExampleDesign(t, k, fs)
	}

	cases := goldenTestSuite{
		"empty":         {Command: "ls"},
		"modules":       {Command: "ls", Setup: withDesign},
		"pattern":       {Command: "ls i*", Setup: withDesign},
		"no-match":      {Command: "ls nothing", Setup: withDesign},
		"active-module": {Command: "cd inv; ls", Setup: withDesign},
	}

	cases.Run(t)
}
