package core

import (
	"context"
	"fmt"
	"io"
	"log"
	"net"
	"regexp"
	"strings"
	"sync/atomic"

	"github.com/gliderlabs/ssh"
	"github.com/juju/ratelimit"
	"github.com/ldoolitt/yosys/core/config"
	"github.com/ldoolitt/yosys/core/kernel"
	"github.com/ldoolitt/yosys/core/logger"
	"github.com/ldoolitt/yosys/core/rtlil"
	"github.com/spf13/afero"
)

type sshContextKey struct {
	name string
}

// ContextSessionID holds the event log session ID of the connection.
var ContextSessionID = sshContextKey{"session-id"}

// SessionID returns the event log session ID stored in ctx, if any.
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(ContextSessionID).(string)
	return id
}

// Server offers a synthesis shell over SSH. Every session gets its own
// design and kernel, the command registry is shared.
type Server struct {
	configuration *config.Configuration
	registry      *kernel.Registry
	events        *logger.Logger
	log           *log.Logger
	sshServer     *ssh.Server
}

func NewServer(configuration *config.Configuration, registry *kernel.Registry, events *logger.Logger, diag *log.Logger) (*Server, error) {
	server := &Server{
		configuration: configuration,
		registry:      registry,
		events:        events,
		log:           diag,
	}

	server.sshServer = &ssh.Server{
		Addr: fmt.Sprintf(":%d", configuration.SSHPort),
		Handler: func(s ssh.Session) {
			server.HandleConnection(s)
		},
		PasswordHandler: func(ctx ssh.Context, password string) bool {
			return configuration.CheckPassword(password)
		},
	}

	pem, err := configuration.PrivateKeyPem()
	if err != nil {
		return nil, fmt.Errorf("couldn't read host key: %w", err)
	}
	if err := server.sshServer.SetOption(ssh.HostKeyPEM(pem)); err != nil {
		return nil, fmt.Errorf("couldn't parse host key: %w", err)
	}

	return server, nil
}

// sessionFiles are the files a session may read from the configuration
// directory.
var sessionFiles = regexp.MustCompile(`\.(il|ilang|ys)$`)

// sessionFs lets sessions read designs and scripts from the configuration
// directory while keeping everything they write in memory.
func (srv *Server) sessionFs() afero.Fs {
	shared := afero.NewReadOnlyFs(afero.NewRegexpFs(srv.configuration.Fs(), sessionFiles))
	return afero.NewCopyOnWriteFs(shared, afero.NewMemMapFs())
}

// newKernel creates the kernel backing one session.
func (srv *Server) newKernel(events *logger.SessionLogger, stdin io.Reader, stdout io.Writer, isTerminal bool) *kernel.Kernel {
	cfg := srv.configuration

	if cfg.SSHOutputRate > 0 {
		bucket := ratelimit.NewBucketWithRate(float64(cfg.SSHOutputRate), cfg.SSHOutputRate)
		stdout = ratelimit.Writer(stdout, bucket)
	}

	sink := logger.NewSink(stdout)
	sink.SetColor(cfg.UseColor(isTerminal))

	return kernel.New(srv.registry, rtlil.NewDesign(), kernel.Options{
		Fs:           srv.sessionFs(),
		Log:          sink,
		Events:       events,
		Stdin:        stdin,
		Stdout:       stdout,
		Shell:        cfg.Shell,
		DisableShell: !cfg.SSHAllowShell,
		Prompt:       cfg.Prompt,
		Echo:         cfg.Echo,
	})
}

// HandleConnection runs one session: the requested command if the client
// sent one, an interactive shell otherwise.
func (srv *Server) HandleConnection(s ssh.Session) {
	events := srv.events.NewSession()
	if ctx, ok := s.Context().(ssh.Context); ok {
		ctx.SetValue(ContextSessionID, events.SessionID())
	}
	srv.log.Printf("Session %s opened by %s@%s", events.SessionID(), s.User(), s.RemoteAddr())
	defer srv.log.Printf("Session %s closed", events.SessionID())

	ptyInfo, winch, isPTY := s.Pty()
	k := srv.newKernel(events, s, s, isPTY)

	if command := s.RawCommand(); command != "" {
		if err := srv.runCommand(k, command); err != nil {
			fmt.Fprintf(s.Stderr(), "ERROR: %v\n", err)
			s.Exit(1)
			return
		}
		s.Exit(0)
		return
	}

	term := Terminal{
		Stdin:      s,
		Stdout:     k.Stdout(),
		Stderr:     s.Stderr(),
		IsTerminal: isPTY,
	}

	// Watch for window changes.
	if isPTY {
		width := int64(ptyInfo.Window.Width)
		go (func() {
			for window := range winch {
				atomic.StoreInt64(&width, int64(window.Width))
			}
		})()
		term.Width = func() int {
			return int(atomic.LoadInt64(&width))
		}
	}

	shell, err := NewShell(k, term)
	if err != nil {
		srv.log.Printf("Session %s: %v", events.SessionID(), err)
		s.Exit(1)
		return
	}
	defer shell.Close()

	if err := shell.Run(); err != nil {
		fmt.Fprintf(k.Stdout(), "ERROR: %v\n", err)
		s.Exit(1)
		return
	}
	s.Exit(0)
}

// runCommand runs a non-interactive session command. Fatal errors end only
// the session.
func (srv *Server) runCommand(k *kernel.Kernel, command string) (err error) {
	defer kernel.RecoverFatal(&err)

	for _, line := range strings.Split(command, "\n") {
		if err := k.CallString(line); err != nil {
			return err
		}
	}
	return nil
}

func (srv *Server) ListenAndServe() error {
	srv.log.Printf("- Starting SSH server on %s\n", srv.sshServer.Addr)
	return srv.sshServer.ListenAndServe()
}

// Serve accepts connections on l.
func (srv *Server) Serve(l net.Listener) error {
	return srv.sshServer.Serve(l)
}

func (srv *Server) Shutdown(ctx context.Context) error {
	return srv.sshServer.Shutdown(ctx)
}
