// Package commands is the terminal portal of the design library.
package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	libraryclient "github.com/Apurer/go-gin-design-library/internal/clients/http/library"
	"github.com/Apurer/go-gin-design-library/internal/portal/dashboard"
	"github.com/Apurer/go-gin-design-library/internal/portal/designs"
	"github.com/Apurer/go-gin-design-library/internal/portal/notify"
	"github.com/Apurer/go-gin-design-library/internal/portal/view"
)

const (
	baseURLEnv     = "LIBRARY_API_URL"
	defaultBaseURL = "http://127.0.0.1:8080"
)

// portal is the state shared by every subcommand of one invocation.
type portal struct {
	baseURL string
	timeout time.Duration
	verbose bool

	client   *libraryclient.Client
	stats    *dashboard.Store
	library  *designs.Library
	queue    *notify.Queue
	renderer *view.Renderer
}

func (p *portal) connect(cmd *cobra.Command) error {
	client, err := libraryclient.NewClient(p.baseURL)
	if err != nil {
		return err
	}
	level := slog.LevelWarn
	if p.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	p.client = client
	p.queue = notify.NewQueue(notify.NewWriterSink(cmd.ErrOrStderr()), 16)
	p.stats = dashboard.NewStore(client.Stats)
	p.library = designs.NewLibrary(client, p.stats, p.queue, designs.WithLogger(logger))
	p.renderer = view.NewRenderer()
	return nil
}

func (p *portal) close() {
	if p.queue != nil {
		p.queue.Close()
	}
}

// requestContext bounds every command by --timeout.
func (p *portal) requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(cmd.Context())
	}
	return context.WithTimeout(cmd.Context(), p.timeout)
}

// NewRootCommand builds the CLI. in feeds interactive confirmations. The returned func flushes
// pending notifications and must run after Execute.
func NewRootCommand(in io.Reader) (*cobra.Command, func()) {
	p := &portal{}
	root := &cobra.Command{
		Use:           "library",
		Short:         "Browse and manage the design library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return p.connect(cmd)
		},
	}
	root.SetIn(in)

	baseURL := os.Getenv(baseURLEnv)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	root.PersistentFlags().StringVar(&p.baseURL, "base-url", baseURL, "library API base URL (env "+baseURLEnv+")")
	root.PersistentFlags().DurationVar(&p.timeout, "timeout", 10*time.Second, "per-command request timeout")
	root.PersistentFlags().BoolVarP(&p.verbose, "verbose", "v", false, "log requests")

	root.AddCommand(listCmd(p), deleteCmd(p), statsCmd(p), meetingsCmd(p), dashboardCmd(p))
	return root, p.close
}

func Execute() error {
	root, flush := NewRootCommand(os.Stdin)
	err := root.Execute()
	flush()
	if err != nil {
		root.PrintErrln("Error:", err)
	}
	return err
}
