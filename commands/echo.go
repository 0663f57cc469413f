package commands

import (
	"github.com/ldoolitt/yosys/core/kernel"
)

type echoPass struct {
	kernel.Descriptor
}

func NewEchoPass() kernel.Pass {
	return &echoPass{Descriptor: kernel.NewPass("echo", "turning echoing back of commands on and off")}
}

func (p *echoPass) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    echo on",
		"",
		"Print all commands to log before executing them.",
		"",
		"",
		"    echo off",
		"",
		"Do not print all commands to log before executing them. (default)",
		"",
	)
}

func (p *echoPass) Execute(k *kernel.Kernel, args []string) error {
	if len(args) > 2 {
		return k.CmdError(p, args, 2, "Unexpected argument.")
	}

	if len(args) == 2 {
		switch args[1] {
		case "on":
			k.SetEcho(true)
		case "off":
			k.SetEcho(false)
		default:
			return k.CmdError(p, args, 1, "Unexpected argument.")
		}
	}

	if k.Echo() {
		k.Log().Logf("echo on\n")
	} else {
		k.Log().Logf("echo off\n")
	}
	return nil
}
