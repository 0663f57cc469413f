package kernel

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"strings"
	"testing"

	"github.com/ldoolitt/yosys/core/rtlil"
	"github.com/spf13/afero"
)

type testPass struct {
	Descriptor
	run func(k *Kernel, args []string) error
}

func (p *testPass) Execute(k *Kernel, args []string) error {
	if p.run == nil {
		return nil
	}
	return p.run(k, args)
}

func newTestPass(name string, run func(k *Kernel, args []string) error) *testPass {
	return &testPass{Descriptor: NewPass(name, "test pass "+name), run: run}
}

// recordingPass appends every invocation to calls.
func recordingPass(name string, calls *[][]string) *testPass {
	return newTestPass(name, func(k *Kernel, args []string) error {
		*calls = append(*calls, args)
		return nil
	})
}

// testFrontend reads its whole input. A "-x" option is accepted and "-" ends
// the options.
type testFrontend struct {
	Descriptor

	argv      [][]string
	contents  []string
	filenames []string
}

func (f *testFrontend) ExecuteFrontend(ctx *FrontendContext, args []string) error {
	argidx := 1
	for ; argidx < len(args); argidx++ {
		if args[argidx] == "-" {
			argidx++
			break
		}
		if args[argidx] == "-x" {
			continue
		}
		break
	}

	if err := ctx.ExtraArgs(args, argidx); err != nil {
		return err
	}

	data, err := ioutil.ReadAll(ctx.Input())
	if err != nil {
		return err
	}

	f.argv = append(f.argv, args)
	f.contents = append(f.contents, string(data))
	f.filenames = append(f.filenames, ctx.Filename())
	return nil
}

// testBackend writes the module names, one per line.
type testBackend struct {
	Descriptor

	filenames []string
	push      bool
}

func (b *testBackend) ExecuteBackend(ctx *BackendContext, args []string) error {
	if err := ctx.ExtraArgs(args, 1); err != nil {
		return err
	}
	if b.push {
		ctx.Kernel().Design().PushSelection(rtlil.NewSelection(false))
	}

	b.filenames = append(b.filenames, ctx.Filename())
	for _, name := range ctx.Kernel().Design().ModuleNames() {
		fmt.Fprintln(ctx.Output(), name)
	}
	return nil
}

func newTestKernel(t *testing.T, cmds ...Command) (*Kernel, *bytes.Buffer) {
	t.Helper()

	var q Queue
	q.Add(cmds...)

	var out bytes.Buffer
	k := New(NewRegistry(&q), rtlil.NewDesign(), Options{
		Fs:     afero.NewMemMapFs(),
		Stdin:  strings.NewReader(""),
		Stdout: &out,
	})
	return k, &out
}

func addModules(t *testing.T, d *rtlil.Design, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := d.AddModule(rtlil.NewModule(name)); err != nil {
			t.Fatal(err)
		}
	}
}
