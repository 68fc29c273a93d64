package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"paramd/internal/catalog"
	"paramd/internal/config"
	"paramd/internal/httpapi"
	"paramd/internal/params"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

type serveOptions struct {
	configPath  string
	envFile     string
	addr        string
	logLevel    string
	corsOrigins string
}

func buildRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "paramd",
		Short:         "HTTP service demonstrating typed, validated request parameters",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(buildServeCmd(), buildRoutesCmd(), buildVersionCmd())
	return root
}

func buildServeCmd() *cobra.Command {
	var opts serveOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Example: "  paramd serve --addr :8000\n" +
			"  paramd serve --config ~/.config/paramd.yaml --log-level debug",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg, newLogger(cfg, cmd.ErrOrStderr()))
		},
	}
	bindServeFlags(cmd, &opts)
	return cmd
}

func bindServeFlags(cmd *cobra.Command, opts *serveOptions) {
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "Config file (.yaml, .yml, .json or .toml)")
	f.StringVar(&opts.envFile, "env-file", "", "Env file exported before reading PARAMD_* (default .env when present)")
	f.StringVar(&opts.addr, "addr", "", "HTTP listen address, e.g. :8000")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error|off")
	f.StringVar(&opts.corsOrigins, "cors-origins", "", "Comma separated allowed origins; enables CORS")
}

// resolveConfig layers the changed flags over config.Gather and validates
// the result.
func resolveConfig(cmd *cobra.Command, opts serveOptions) (config.Config, error) {
	cfg, err := config.Gather(opts.configPath, opts.envFile)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = opts.addr
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("cors-origins") {
		cfg.CORSEnabled = true
		cfg.CORSAllowedOrigins = config.SplitCSV(opts.corsOrigins)
	}
	return cfg, cfg.Validate()
}

func buildRoutesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the route table with parameter rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRoutes(cmd.OutOrStdout(), httpapi.Routes(catalog.New()))
		},
	}
}

func buildVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paramd %s\n", version)
		},
	}
}

func printRoutes(w io.Writer, routes []httpapi.Route) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH\tNAME\tPARAMETERS")
	for _, rt := range routes {
		var ps []string
		for _, p := range rt.Spec.Params() {
			ps = append(ps, describeParam(p))
		}
		if bp, ok := rt.Spec.BodyParam(); ok {
			ps = append(ps, fmt.Sprintf("%s(body %T)", bp.Name, bp.New()))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", rt.Method, rt.Pattern, rt.Name, strings.Join(ps, " "))
	}
	return tw.Flush()
}

// describeParam renders p as name(location type rules...).
func describeParam(p params.Param) string {
	typ := p.Type.String()
	if p.Multi {
		typ = "[]" + typ
	}
	rules := []string{p.In.String(), typ}
	if p.Required {
		rules = append(rules, "required")
	}
	if p.Default != nil {
		rules = append(rules, fmt.Sprintf("default=%v", p.Default))
	}
	if p.MinLength > 0 {
		rules = append(rules, fmt.Sprintf("min_length=%d", p.MinLength))
	}
	if p.MaxLength > 0 {
		rules = append(rules, fmt.Sprintf("max_length=%d", p.MaxLength))
	}
	if p.Pattern != "" {
		rules = append(rules, "pattern="+p.Pattern)
	}
	if len(p.Members) > 0 {
		rules = append(rules, "one_of="+strings.Join(p.Members, "|"))
	}
	if p.Ge != nil {
		rules = append(rules, fmt.Sprintf("ge=%g", *p.Ge))
	}
	if p.Le != nil {
		rules = append(rules, fmt.Sprintf("le=%g", *p.Le))
	}
	return fmt.Sprintf("%s(%s)", p.WireName(), strings.Join(rules, " "))
}
