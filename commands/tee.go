package commands

import (
	"io"
	"os"

	"github.com/ldoolitt/yosys/core/kernel"
	getopt "github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
)

type teePass struct {
	kernel.Descriptor
}

func NewTeePass() kernel.Pass {
	return &teePass{Descriptor: kernel.NewPass("tee", "redirect command output to file")}
}

func (p *teePass) Help(k *kernel.Kernel) {
	logHelp(k,
		"",
		"    tee [-q] [-o logfile|-a logfile] cmd",
		"",
		"Execute the specified command, optionally writing the commands output to the",
		"specified logfile(s).",
		"",
		"    -q",
		"        Do not print output to the normal destination (console and/or log file)",
		"",
		"    -o logfile",
		"        Write output to this file, truncate if exists.",
		"",
		"    -a logfile",
		"        Write output to this file, append if exists.",
		"",
	)
}

func (p *teePass) Execute(k *kernel.Kernel, args []string) error {
	opts := getopt.New()
	quiet := opts.Bool('q', "do not print output to the normal destination")
	truncateFile := opts.String('o', "", "write output to this file, truncate if exists", "logfile")
	appendFile := opts.String('a', "", "write output to this file, append if exists", "logfile")

	argidx, err := parseOptions(k, p, opts, args)
	if err != nil {
		return err
	}

	var files []afero.File
	var writers []io.Writer
	defer func() {
		for _, fd := range files {
			fd.Close()
		}
	}()
	open := func(name string, flag int) error {
		if name == "" {
			return nil
		}
		fd, err := k.Fs().OpenFile(name, os.O_WRONLY|os.O_CREATE|flag, 0644)
		if err != nil {
			return kernel.Errorf("Can't create logfile `%s': %v", name, err)
		}
		files = append(files, fd)
		writers = append(writers, fd)
		return nil
	}

	if err := open(*truncateFile, os.O_TRUNC); err != nil {
		return err
	}
	if err := open(*appendFile, os.O_APPEND); err != nil {
		return err
	}

	sink := k.Log()
	if *quiet {
		old := sink.SwapWriters(writers)
		defer sink.SwapWriters(old)
	} else {
		for _, w := range writers {
			sink.AddWriter(w)
		}
		defer func() {
			for _, w := range writers {
				sink.RemoveWriter(w)
			}
		}()
	}

	return k.Call(args[argidx:])
}
