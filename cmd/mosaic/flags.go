// If you are AI: This file defines the command-line flags and applies them over the loaded config.
// Only flags given on the command line override configuration values.

package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"mosaic/internal/config"
	"mosaic/internal/render"
)

// folderList collects repeated -f flags.
type folderList []string

// String joins the folders for flag help output.
func (f *folderList) String() string {
	return strings.Join(*f, ", ")
}

// Set appends one folder argument.
func (f *folderList) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("empty folder")
	}
	*f = append(*f, v)
	return nil
}

// options holds the parsed command line.
type options struct {
	configPath string
	folders    folderList
	output     string
	layout     string
	width      int
	height     int
	fps        float64
	order      string
	seed       int64
	noAudio    bool
	amd        bool
	nvidia     bool
	h264       bool
	h265       bool
	av1        bool
	length     bool
	listing    bool
	keepTemp   bool
	noProgress bool
	logLevel   string
	logFormat  string

	set map[string]bool
}

// parseFlags parses args into options. Usage errors are written to out.
func parseFlags(args []string, out io.Writer) (*options, error) {
	o := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("mosaic", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&o.configPath, "config", "", "Path to configuration file")
	fs.Var(&o.folders, "f", "Source folder, repeat once per folder; '|' joins several paths into one")
	fs.StringVar(&o.output, "o", "", "Output file")
	fs.StringVar(&o.layout, "s", "", "Layout name")
	fs.IntVar(&o.width, "x", 0, "Canvas width")
	fs.IntVar(&o.height, "y", 0, "Canvas height")
	fs.Float64Var(&o.fps, "r", 0, "Frame rate")
	fs.StringVar(&o.order, "ord", "", "Clip order: as-input, random, seeded, seeded-reverse, shortest, longest, random-largest-last")
	fs.Int64Var(&o.seed, "ord-opt", 0, "Seed for the seeded orders")
	fs.BoolVar(&o.noAudio, "no-audio", false, "Skip the audio pass")
	fs.BoolVar(&o.amd, "amd", false, "Use the AMD hardware encoder")
	fs.BoolVar(&o.nvidia, "nvidia", false, "Use the Nvidia hardware encoder")
	fs.BoolVar(&o.h264, "h264", false, "Encode H.264")
	fs.BoolVar(&o.h265, "h265", false, "Encode H.265")
	fs.BoolVar(&o.av1, "av1", false, "Encode AV1")
	fs.BoolVar(&o.length, "l", false, "Print region lengths and exit")
	fs.BoolVar(&o.listing, "L", false, "Print region lengths with every clip and exit")
	fs.BoolVar(&o.keepTemp, "keep-temp", false, "Keep the temporary workspace")
	fs.BoolVar(&o.noProgress, "no-progress", false, "Disable the progress bar")
	fs.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "", "Log format: console or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.amd && o.nvidia {
		return nil, fmt.Errorf("-amd and -nvidia are mutually exclusive")
	}
	codecs := 0
	for _, b := range []bool{o.h264, o.h265, o.av1} {
		if b {
			codecs++
		}
	}
	if codecs > 1 {
		return nil, fmt.Errorf("choose at most one of -h264, -h265 and -av1")
	}
	return o, nil
}

// apply overrides cfg with every flag given on the command line.
func (o *options) apply(cfg *config.Config) {
	if len(o.folders) > 0 {
		cfg.Sources = append([]string(nil), o.folders...)
	}
	if o.set["o"] {
		cfg.Output = o.output
	}
	if o.set["s"] {
		cfg.Layout = o.layout
	}
	if o.set["x"] {
		cfg.Canvas.Width = o.width
	}
	if o.set["y"] {
		cfg.Canvas.Height = o.height
	}
	if o.set["r"] {
		cfg.Canvas.FPS = o.fps
	}
	if o.set["ord"] {
		cfg.Order.Mode = o.order
	}
	if o.set["ord-opt"] {
		cfg.SetSeed(o.seed)
	}
	if o.noAudio {
		cfg.SetAudio(false)
	}
	switch {
	case o.amd:
		cfg.Encoder.Hardware = "amd"
	case o.nvidia:
		cfg.Encoder.Hardware = "nvidia"
	}
	switch {
	case o.h264:
		cfg.Encoder.Codec = "h264"
	case o.h265:
		cfg.Encoder.Codec = "h265"
	case o.av1:
		cfg.Encoder.Codec = "av1"
	}
	if o.amd || o.nvidia || o.h264 || o.h265 || o.av1 {
		cfg.Encoder.Args = nil
	}
	if o.keepTemp {
		cfg.Workspace.KeepTemp = true
	}
	if o.noProgress {
		cfg.Telemetry.Progress = false
	}
	if o.set["log-level"] {
		cfg.Log.Level = o.logLevel
	}
	if o.set["log-format"] {
		cfg.Log.Format = o.logFormat
	}
}

// report returns the length report selected by -l or -L.
func (o *options) report() render.Report {
	switch {
	case o.listing:
		return render.ReportListing
	case o.length:
		return render.ReportLength
	}
	return render.ReportNone
}
