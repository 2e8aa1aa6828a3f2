package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cli/browser"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Zachdehooge/loop-map/internal/app"
	"github.com/Zachdehooge/loop-map/internal/config"
	"github.com/Zachdehooge/loop-map/internal/freeway"
	"github.com/Zachdehooge/loop-map/internal/generator"
	"github.com/Zachdehooge/loop-map/internal/layers"
	"github.com/Zachdehooge/loop-map/internal/server"
)

// options are the command line overrides on top of config.Load
type options struct {
	cfg       *config.Config
	verbose   bool
	watchMode bool
	openPage  bool
	dataOut   string
	coloring  string
}

func main() {
	opts := &options{cfg: config.Load()}

	rootCmd := &cobra.Command{
		Use:   "loopmap",
		Short: "Generate the freeway loop incident map",
		Long: `loopmap reads road, junction and ramp GeoJSON for the I-10 / US-101 / I-110
loop and writes a static HTML map centred on the incident location.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.apply()
		},
		Run: func(cmd *cobra.Command, args []string) {
			session := app.Open(context.Background(), opts.cfg)

			if err := generatePage(cmd, opts, session); err != nil {
				cmd.PrintErrln(fmt.Errorf("failed to generate map: %w", err))
				os.Exit(1)
			}

			if opts.openPage {
				if err := browser.OpenFile(opts.cfg.OutputFile); err != nil {
					cmd.PrintErrln(fmt.Errorf("failed to open browser: %w", err))
				}
			}

			if opts.watchMode {
				if err := runWatchMode(cmd, opts); err != nil {
					cmd.PrintErrln(fmt.Errorf("watch failed: %w", err))
					os.Exit(1)
				}
			}
		},
	}

	// Flags
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.cfg.OutputFile, "output", "o", opts.cfg.OutputFile, "Output HTML file path")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	flags.StringVar(&opts.coloring, "coloring", string(opts.cfg.Coloring), "Junction colouring: uniform or per-highway")
	flags.StringVar(&opts.cfg.Sources.Roads, "roads", opts.cfg.Sources.Roads, "Roads GeoJSON path or URL")
	flags.StringVar(&opts.cfg.Sources.Junctions, "junctions", opts.cfg.Sources.Junctions, "Junctions GeoJSON path or URL")
	flags.StringVar(&opts.cfg.Sources.Links, "links", opts.cfg.Sources.Links, "Ramps GeoJSON path or URL")
	rootCmd.Flags().BoolVar(&opts.watchMode, "watch", false, "Regenerate the map when a local dataset changes")
	rootCmd.Flags().BoolVar(&opts.openPage, "open", false, "Open the generated map in a browser")
	rootCmd.Flags().StringVar(&opts.dataOut, "data-out", "", "Also write the page data as JSON to this path")

	// Additional commands
	addListCmd(rootCmd)
	addClassifyCmd(rootCmd)
	addLegendCmd(rootCmd, opts)
	addServeCmd(rootCmd, opts)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (o *options) apply() error {
	coloring, err := layers.ParseColoring(o.coloring)
	if err != nil {
		return err
	}
	o.cfg.Coloring = coloring
	return o.cfg.Validate()
}

// generatePage writes the HTML page and, when asked, the JSON payload
func generatePage(cmd *cobra.Command, opts *options, session *app.Session) error {
	if opts.verbose {
		cmd.Println(fmt.Sprintf("Generating map to %s...", opts.cfg.OutputFile))
	}

	if err := generator.GeneratePage(session, opts.cfg.OutputFile); err != nil {
		return err
	}
	if opts.dataOut != "" {
		if err := generator.WritePayload(session, opts.dataOut); err != nil {
			return fmt.Errorf("failed to write page data: %w", err)
		}
	}

	cmd.Println(fmt.Sprintf("Freeway loop map saved to %s", opts.cfg.OutputFile))
	return nil
}

// addListCmd adds a 'list' subcommand that prints the curated exits
func addListCmd(rootCmd *cobra.Command) {
	highwayColors := map[freeway.Highway]*color.Color{
		freeway.I10:   color.New(color.FgRed, color.Bold),
		freeway.US101: color.New(color.FgBlue, color.Bold),
		freeway.I110:  color.New(color.FgGreen, color.Bold),
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the exits around the loop",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Loop Exits:")
			for _, e := range freeway.Exits() {
				name := highwayColors[e.Highway].Sprint(e.Highway)
				ref := e.Ref
				if ref == "" {
					ref = "-"
				}
				cmd.Println(fmt.Sprintf("%2d  %-8s %-7s %s (%.6f, %.6f)", e.Number, name, ref, e.Name, e.Coord.Lon(), e.Coord.Lat()))
			}
		},
	}

	rootCmd.AddCommand(listCmd)
}

// addClassifyCmd adds 'classify REF [LON LAT]'
func addClassifyCmd(rootCmd *cobra.Command) {
	classifyCmd := &cobra.Command{
		Use:   "classify REF [LON LAT]",
		Short: "Show which highway a junction ref or coordinate belongs to",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 && len(args) != 3 {
				return fmt.Errorf("expected REF or REF LON LAT, got %d arguments", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var coord freeway.Coordinate
			if len(args) == 3 {
				lon, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("invalid longitude %q: %w", args[1], err)
				}
				lat, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return fmt.Errorf("invalid latitude %q: %w", args[2], err)
				}
				coord = freeway.Coordinate{lon, lat}
			}
			cmd.Println(freeway.Classify(args[0], coord))
			return nil
		},
	}

	rootCmd.AddCommand(classifyCmd)
}

// addLegendCmd adds 'legend' to preview the legend for a set of visible layers
func addLegendCmd(rootCmd *cobra.Command, opts *options) {
	var show, hide []string

	legendCmd := &cobra.Command{
		Use:   "legend",
		Short: "Print the legend for the given layer visibility",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := app.NewSession(opts.cfg, nil)
			for _, group := range []struct {
				names   []string
				visible bool
			}{{hide, false}, {show, true}} {
				for _, name := range group.names {
					l, err := layers.Parse(strings.TrimSpace(name))
					if err != nil {
						return err
					}
					if _, err := session.Toggle(l, group.visible); err != nil {
						return err
					}
				}
			}

			for _, e := range session.Legend() {
				if e.Layer == "" {
					cmd.Println(e.Label)
					continue
				}
				cmd.Println(fmt.Sprintf("%-10s %-7s %-8s %s", e.Layer, e.Symbol, e.Color, e.Label))
			}
			return nil
		},
	}
	legendCmd.Flags().StringSliceVar(&show, "show", nil, "Layers to show")
	legendCmd.Flags().StringSliceVar(&hide, "hide", nil, "Layers to hide")

	rootCmd.AddCommand(legendCmd)
}

// addServeCmd adds 'serve' to generate the page and preview it locally
func addServeCmd(rootCmd *cobra.Command, opts *options) {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Generate the map and serve it with a JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := app.Open(context.Background(), opts.cfg)
			if err := generatePage(cmd, opts, session); err != nil {
				return fmt.Errorf("failed to generate map: %w", err)
			}

			cmd.Println(fmt.Sprintf("Serving map at http://localhost%s/", opts.cfg.Addr))
			return server.New(session, opts.cfg.OutputFile).Run(opts.cfg.Addr)
		},
	}
	serveCmd.Flags().StringVar(&opts.cfg.Addr, "addr", opts.cfg.Addr, "Listen address")

	rootCmd.AddCommand(serveCmd)
}
