package kernel

import (
	"bufio"
	"io"
	"strings"

	"github.com/spf13/afero"
)

// Input is a readable source for frontends and scripts: a file, standard
// input or an in-memory here-document. Line and byte reads may be mixed.
type Input interface {
	io.Reader

	// ReadLine returns the next line including its terminator. The last line
	// may lack one. io.EOF is returned once no data remains.
	ReadLine() (string, error)

	// AtEnd reports whether the input is exhausted.
	AtEnd() bool

	// Name is the file name shown in messages.
	Name() string

	Close() error

	input()
}

type lineInput struct {
	name   string
	reader *bufio.Reader
	closer io.Closer
}

// OpenInput opens a file for reading.
func OpenInput(fs afero.Fs, path string) (Input, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	return &lineInput{name: path, reader: bufio.NewReader(fd), closer: fd}, nil
}

// NewStringInput creates an in-memory input.
func NewStringInput(name, text string) Input {
	return NewReaderInput(name, strings.NewReader(text))
}

// NewReaderInput wraps a reader. Closing the input closes r if it is an
// io.Closer.
func NewReaderInput(name string, r io.Reader) Input {
	in := &lineInput{name: name, reader: bufio.NewReader(r)}
	if closer, ok := r.(io.Closer); ok {
		in.closer = closer
	}
	return in
}

func (in *lineInput) Read(p []byte) (int, error) {
	return in.reader.Read(p)
}

func (in *lineInput) ReadLine() (string, error) {
	line, err := in.reader.ReadString('\n')
	if err == io.EOF && line != "" {
		return line, nil
	}
	return line, err
}

func (in *lineInput) AtEnd() bool {
	_, err := in.reader.Peek(1)
	return err != nil
}

func (in *lineInput) Name() string {
	return in.name
}

func (in *lineInput) Close() error {
	if in.closer == nil {
		return nil
	}
	closer := in.closer
	in.closer = nil
	return closer.Close()
}

func (*lineInput) input() {}

// nopCloseInput shields a shared stream such as standard input from Close.
type nopCloseInput struct {
	Input
}

func (nopCloseInput) Close() error {
	return nil
}
