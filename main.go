package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Special values for --output
const (
	outputStdout = "-"
	outputNull   = "null"
)

// cliOptions holds every flag of the render command
type cliOptions struct {
	scene      string
	output     string
	configPath string
	logLevel   string
	texture    string
	mesh       string
	lambertian string
	aspect     float64

	// Applied over the config file only when set on the command line
	height   int
	samples  int
	depth    int
	gamma    bool
	workers  int
	parallel bool
	seed     int64
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the CLI. The root command renders; "scenes" lists presets.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &cliOptions{}
	defaults := renderer.DefaultRenderConfig()

	root := &cobra.Command{
		Use:           "pathtracer",
		Short:         "Render a scene preset with a stochastic path tracer",
		Long:          "Render a scene preset with a stochastic path tracer and write the image as plain PPM (P3) or PNG.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRender(cmd.Context(), cmd.Flags(), opts, stdout, stderr)
			if err != nil {
				fmt.Fprintf(stderr, "Error: %v\n", err)
			}
			return err
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.Flags()
	flags.StringVarP(&opts.scene, "scene", "s", "spheres", "scene preset ("+strings.Join(scene.Names(), ", ")+")")
	flags.StringVarP(&opts.output, "output", "o", "image.ppm", `output file (.png for PNG, otherwise PPM), "-" for stdout or "null" to discard`)
	flags.StringVar(&opts.configPath, "config", "", "YAML render config; flags given on the command line take precedence")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&opts.texture, "texture", "", "image file for the earth scene")
	flags.StringVar(&opts.mesh, "mesh", "", "glTF or GLB model for the mesh scene")
	flags.StringVar(&opts.lambertian, "lambertian", material.LambertianTrue.String(), "diffuse bounce sampling (true, approx, hemisphere)")
	flags.Float64Var(&opts.aspect, "aspect", 0, "override the scene's aspect ratio")

	flags.IntVar(&opts.height, "height", defaults.Height, "image height in pixels; width follows the aspect ratio")
	flags.IntVar(&opts.samples, "samples", defaults.Samples, "samples per pixel")
	flags.IntVar(&opts.depth, "depth", defaults.MaxDepth, "maximum bounces per path")
	flags.BoolVar(&opts.gamma, "gamma", defaults.Gamma, "apply gamma 2 correction")
	flags.IntVarP(&opts.workers, "workers", "j", defaults.Workers, "worker count, 0 for one per logical core")
	flags.BoolVar(&opts.parallel, "parallel", defaults.Parallel, "render rows in parallel; false renders on a single worker")
	flags.Int64Var(&opts.seed, "seed", 0, "seed for reproducible output and scene layout")

	root.AddCommand(newScenesCmd(stdout))
	return root
}

func newScenesCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the scene presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			for _, info := range scene.List() {
				fmt.Fprintf(tw, "%s\t%s\n", info.Name, info.Description)
			}
			return tw.Flush()
		},
	}
}

// resolveConfig layers defaults, the config file and the flags that were set
func resolveConfig(flags *pflag.FlagSet, opts *cliOptions) (renderer.RenderConfig, error) {
	config := renderer.DefaultRenderConfig()
	if opts.configPath != "" {
		loaded, err := renderer.LoadRenderConfig(opts.configPath, config)
		if err != nil {
			return config, err
		}
		config = loaded
	}

	if flags.Changed("height") {
		config.Height = opts.height
	}
	if flags.Changed("samples") {
		config.Samples = opts.samples
	}
	if flags.Changed("depth") {
		config.MaxDepth = opts.depth
	}
	if flags.Changed("gamma") {
		config.Gamma = opts.gamma
	}
	if flags.Changed("workers") {
		config.Workers = opts.workers
	}
	if flags.Changed("parallel") {
		config.Parallel = opts.parallel
	}
	if flags.Changed("seed") {
		config = config.WithSeed(opts.seed)
	}

	return config, config.Validate()
}

// sceneOptions maps the flags onto preset options. A fixed render seed also
// fixes the random scene layout.
func sceneOptions(opts *cliOptions, config renderer.RenderConfig) (scene.Options, error) {
	mode, err := material.ParseLambertianMode(opts.lambertian)
	if err != nil {
		return scene.Options{}, err
	}

	sceneOpts := scene.DefaultOptions()
	sceneOpts.TexturePath = opts.texture
	sceneOpts.MeshPath = opts.mesh
	sceneOpts.Lambertian = mode
	sceneOpts.AspectRatio = opts.aspect
	if config.Seed != nil {
		sceneOpts.Seed = *config.Seed
	}
	return sceneOpts, nil
}

// openSink resolves --output to an image sink
func openSink(output string, stdout io.Writer) (renderer.ImageSink, error) {
	switch output {
	case outputStdout:
		return renderer.NewPPMWriter(stdout), nil
	case outputNull:
		return renderer.NewNullSink(), nil
	case "":
		return nil, errors.New("output must not be empty")
	default:
		return renderer.CreateFileSink(output)
	}
}

func runRender(ctx context.Context, flags *pflag.FlagSet, opts *cliOptions, stdout, stderr io.Writer) error {
	level, err := core.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger := core.NewSlogLogger(stderr, level).With("scene", opts.scene)

	config, err := resolveConfig(flags, opts)
	if err != nil {
		return err
	}
	sceneOpts, err := sceneOptions(opts, config)
	if err != nil {
		return err
	}

	start := time.Now()
	selected, err := scene.New(opts.scene, sceneOpts)
	if err != nil {
		return err
	}
	world, err := selected.World(core.NewSeededSampler(sceneOpts.Seed))
	if err != nil {
		return err
	}
	logger.Infof("scene %s: %d objects, hierarchy depth %d, built in %v",
		selected.Name, world.Len(), world.Depth(), time.Since(start).Round(time.Millisecond))

	r, err := renderer.NewRenderer(world, selected.Camera, config, logger)
	if err != nil {
		return err
	}

	sink, err := openSink(opts.output, stdout)
	if err != nil {
		return err
	}

	stats, err := r.Render(ctx, sink)
	if err != nil {
		return err
	}

	if opts.output != outputStdout && opts.output != outputNull {
		logger.Infof("render saved as %s (%dx%d, %.1f samples per pixel)",
			opts.output, stats.Width, stats.Height, stats.AverageSamples())
	}
	return nil
}
