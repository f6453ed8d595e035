package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"gridforge/pkg/engine/logger"
	"gridforge/pkg/engine/terminal"
	"gridforge/pkg/game/config"
	"gridforge/pkg/game/devtools"
	"gridforge/pkg/game/layout"
	"gridforge/pkg/game/renderer"
	"gridforge/pkg/game/request"
)

// options holds the command line; zero values mean "not given"
type options struct {
	configPath    string
	logConfigPath string
	seed          int64
	width         int
	height        int
	profile       string
	pattern       string
	target        int
	actors        int
	connected     bool
	format        string
	color         string
	dump          string
	set           map[string]bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("gridforge", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "request file (YAML or JSON)")
	fs.StringVar(&opts.logConfigPath, "log-config", "", "separate logging config file")
	fs.Int64Var(&opts.seed, "seed", 0, "generation seed")
	fs.IntVar(&opts.width, "width", 0, "grid width including the border")
	fs.IntVar(&opts.height, "height", 0, "grid height including the border")
	fs.StringVar(&opts.profile, "profile", "", "shape profile: rectangular, rooms, sparse_islands, clustered_islands")
	fs.StringVar(&opts.pattern, "pattern", "", "pattern overlay: none, grid, diagonal, concentric")
	fs.IntVar(&opts.target, "target", 0, "exact walkable tile count")
	fs.IntVar(&opts.actors, "actors", 0, "actors that must fit on the layout")
	fs.BoolVar(&opts.connected, "connected", false, "require every walkable tile to be reachable")
	fs.StringVar(&opts.format, "format", "", "output format: ascii or json")
	fs.StringVar(&opts.color, "color", "", "colour mode: auto, always or never")
	fs.StringVar(&opts.dump, "dump", "", "write a debug dump of the result to this path")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadFile builds the request file from -config (or defaults) and overlays flags
func loadFile(opts *options) (*config.File, error) {
	file := config.DefaultFile()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}
	if opts.logConfigPath != "" {
		logCfg, err := logger.LoadConfig(opts.logConfigPath)
		if err != nil {
			return nil, err
		}
		file.Logging = logCfg
	}

	raw := &file.Request
	if opts.set["seed"] {
		raw.Seed = opts.seed
	}
	if opts.set["width"] {
		raw.Width = request.Int(opts.width)
	}
	if opts.set["height"] {
		raw.Height = request.Int(opts.height)
	}
	if opts.set["profile"] {
		raw.ShapeProfile = opts.profile
	}
	if opts.set["pattern"] {
		raw.ShapeParams.Pattern = opts.pattern
	}
	if opts.set["target"] {
		raw.WalkableTilesTarget = request.Int(opts.target)
	}
	if opts.set["actors"] {
		raw.ActorCount = request.Int(opts.actors)
	}
	if opts.set["connected"] {
		raw.RequireConnectedPath = opts.connected
	}
	if opts.set["format"] {
		file.Output.Format = opts.format
	}
	if opts.set["color"] {
		file.Output.Color = opts.color
	}
	if opts.set["dump"] {
		file.Output.DumpPath = opts.dump
	}
	if err := file.Output.Validate(); err != nil {
		return nil, err
	}
	return file, nil
}

func run(args []string, stdout, stderr *os.File) int {
	opts, err := parseFlags(args)
	if err != nil {
		return 2
	}
	file, err := loadFile(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := logger.Initialize(file.Logging, stderr); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	res := layout.GenerateRaw(file.Request)

	if file.Output.DumpPath != "" {
		path, err := devtools.DumpLayoutToFile(file.Output.DumpPath, res)
		if err != nil {
			logger.Error("layout dump failed", "error", err)
		} else {
			logger.Info("layout dumped", "path", path)
		}
	}

	switch file.Output.Format {
	case config.FormatJSON:
		if err := writeJSON(stdout, res); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	default:
		writeASCII(stdout, stderr, res, terminal.ColorEnabled(file.Output.Color, stdout))
	}

	if !res.OK {
		return 1
	}
	return 0
}

func writeJSON(w io.Writer, res layout.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func writeASCII(stdout, stderr *os.File, res layout.Result, colorEnabled bool) {
	for _, warning := range res.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", warning)
	}
	for _, issue := range res.Errors {
		fmt.Fprintf(stderr, "error: %s\n", issue)
	}
	if !res.OK {
		return
	}

	l := res.Layout
	if !terminal.FitsWidth(stdout, l.Width) && terminal.IsTerminal(stdout) {
		logger.Warning("layout is wider than the terminal", "width", l.Width)
	}
	fmt.Fprintln(stdout, renderer.Preview(renderer.Output{Tiles: l.Tiles, Kinds: l.Kinds}, colorEnabled))
	fmt.Fprintf(stdout, "seed %d  spawn %d,%d  exit %d,%d  walkable %d  path %d\n",
		l.Seed, l.Spawn.X, l.Spawn.Y, l.Exit.X, l.Exit.Y, l.Stats.WalkableTiles, l.Stats.PathLength)
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
