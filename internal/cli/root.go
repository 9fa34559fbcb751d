// Package cli implements rcctl, a command-line front end for the ResearchConnect API.
// Every command prints its result as JSON on stdout; logs and errors go to stderr.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/researchconnect/internal/apiclient"
	"github.com/yigit/researchconnect/internal/config"
	"github.com/yigit/researchconnect/internal/credentials"
	"github.com/yigit/researchconnect/internal/pkg/logger"
)

// Options lets callers replace the process streams and the credential store
type Options struct {
	Out    io.Writer
	ErrOut io.Writer
	// Store overrides the file-backed store named in the config
	Store credentials.Store
}

type app struct {
	opts       Options
	configPath string
	verbose    bool

	log    zerolog.Logger
	client *apiclient.Client
}

// NewRootCommand builds the rcctl command tree
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "rcctl",
		Short: "rcctl - ResearchConnect from the command line",
		Long: `rcctl drives the ResearchConnect API: accounts, projects, applications,
student profiles and roadmaps. Results are printed as JSON.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(opts.Out)
	root.SetErr(opts.ErrOut)

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "path to the YAML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.loginCmd(),
		a.logoutCmd(),
		a.signupCmd(),
		a.whoamiCmd(),
		a.refreshCmd(),
		a.verifyCmd(),
		a.passwordCmd(),
		a.projectsCmd(),
		a.applyCmd(),
		a.retractCmd(),
		a.applicationsCmd(),
		a.profileCmd(),
		a.roadmapCmd(),
		a.problemsCmd(),
	)
	return root
}

// Execute runs rcctl against the process arguments
func Execute(version string) error {
	root := NewRootCommand(Options{})
	root.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// setup loads the config and builds the API client before any subcommand runs
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateClient(); err != nil {
		return err
	}

	level := cfg.Logging.Level
	if a.verbose {
		level = string(logger.DebugLevel)
	}
	a.log = logger.Configure(logger.FromSettings(level, "text", a.opts.ErrOut))

	store := a.opts.Store
	if store == nil {
		fs, err := credentials.OpenFileStore(cfg.Client.TokenFile)
		if err != nil {
			return err
		}
		store = fs
	}

	// durations were checked by ValidateClient
	timeout, _ := time.ParseDuration(cfg.Client.Timeout)
	leeway, _ := time.ParseDuration(cfg.Client.ExpiryLeeway)

	a.client, err = apiclient.New(apiclient.Config{
		BaseURL:   cfg.Client.BaseURL,
		Timeout:   timeout,
		RateLimit: cfg.Client.RateLimit,
		Burst:     cfg.Client.Burst,
		UserAgent: cfg.Client.UserAgent,
	}, store,
		apiclient.WithLogger(logger.Component("apiclient")),
		apiclient.WithExpiryLeeway(leeway),
		apiclient.WithOnSessionExpired(func() {
			fmt.Fprintln(a.opts.ErrOut, "Session expired. Run `rcctl login` to sign in again.")
		}),
	)
	return err
}
