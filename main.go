package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"go_qoistream/internal/archive"
	"go_qoistream/internal/config"
	"go_qoistream/internal/logging"
	"go_qoistream/pkg/qoi"
)

const usage = `Usage: go_qoistream [flags] <file>...

Images (png, jpeg, gif) are encoded to .qoi, .qoi and .qoi.zst files are
decoded to .png. Files are converted concurrently.

Flags:
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logging.Error("%v", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var (
		opts                    config.LoadOptions
		linear, zstd, overwrite bool
		info                    bool
	)
	fs := flag.NewFlagSet("go_qoistream", flag.ContinueOnError)
	fs.SetOutput(stdout)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.ConfigFile, "config", "", "YAML config file")
	fs.StringVar(&opts.Alpha, "alpha", "", "channels of encoded images: auto, rgb or rgba")
	fs.BoolVar(&linear, "linear", false, "mark encoded images as linear instead of sRGB")
	fs.StringVar(&opts.OutDir, "out", "", "output directory, defaults to the directory of each input")
	fs.BoolVar(&zstd, "zstd", false, "wrap encoded images in a zstd frame (.qoi.zst)")
	fs.StringVar(&opts.ZstdLevel, "zstd-level", "", "zstd level: fastest, default, better or best")
	fs.BoolVar(&overwrite, "f", false, "overwrite existing output files")
	fs.StringVar(&opts.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.IntVar(&opts.Workers, "workers", 0, "files converted at once, defaults to the number of CPUs")
	fs.BoolVar(&info, "info", false, "print the header of .qoi files instead of converting")
	if err := fs.Parse(args); err != nil {
		return err
	}
	// boolean flags only override the config file and env when given
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "linear":
			opts.Linear = &linear
		case "zstd":
			opts.Zstd = &zstd
		case "f":
			opts.Overwrite = &overwrite
		}
	})

	cfg, err := config.LoadWithOverrides(opts)
	if err != nil {
		return err
	}
	logging.SetLevelFromString(cfg.Logging.Level)

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no input files")
	}

	if info {
		for _, path := range fs.Args() {
			if err := printInfo(stdout, path); err != nil {
				return err
			}
		}
		return nil
	}

	jobs, err := plan(fs.Args(), cfg)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(cfg.Workers)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return convert(j, cfg)
		})
	}
	return g.Wait()
}

// job is a single conversion from in to out.
type job struct {
	in, out string
}

// plan resolves the output of every input before anything is written. Two
// inputs may not share an output, and no output may replace an input of the
// same batch.
func plan(paths []string, cfg *config.Config) ([]job, error) {
	inputs := make(map[string]bool, len(paths))
	for _, path := range paths {
		inputs[filepath.Clean(path)] = true
	}

	jobs := make([]job, 0, len(paths))
	owners := make(map[string]string, len(paths))
	for _, path := range paths {
		out := outputPath(path, cfg)
		key := filepath.Clean(out)
		if prev, ok := owners[key]; ok {
			return nil, fmt.Errorf("%s and %s both convert to %s", prev, path, out)
		}
		if inputs[key] {
			return nil, fmt.Errorf("%s converts to %s, which is also an input", path, out)
		}
		if !cfg.Output.Overwrite {
			if _, err := os.Stat(out); err == nil {
				return nil, fmt.Errorf("%s already exists, use -f to overwrite", out)
			}
		}
		logging.Debug("output for %s is %s", path, out)
		owners[key] = path
		jobs = append(jobs, job{in: path, out: out})
	}
	return jobs, nil
}

// isQOI reports whether the file name has a .qoi or .qoi.zst extension.
func isQOI(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".qoi") || strings.HasSuffix(lower, archive.Extension)
}

func convert(j job, cfg *config.Config) error {
	if isQOI(j.in) {
		return decodeFile(j.in, j.out)
	}
	return encodeFile(j.in, j.out, cfg)
}

func encodeFile(path, out string, cfg *config.Config) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	img, format, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	var opts []qoi.EncodeOption
	switch cfg.Codec.Alpha {
	case config.AlphaRGB:
		if !qoi.IsOpaque(img) {
			logging.Warn("%s has transparent pixels, dropping the alpha channel", path)
		}
		opts = append(opts, qoi.WithAlpha(false))
	case config.AlphaRGBA:
		opts = append(opts, qoi.WithAlpha(true))
	}
	if cfg.Codec.Linear {
		opts = append(opts, qoi.WithLinear())
	}

	var buf bytes.Buffer
	if err := qoi.EncodeImage(&buf, img, opts...); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	data := buf.Bytes()

	if cfg.Output.Zstd {
		level, err := archive.ParseLevel(cfg.Output.ZstdLevel)
		if err != nil {
			return err
		}
		if data, err = archive.Compress(data, level); err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	logging.Info("encoded %s (%s, %dx%d) -> %s, %d bytes", path, format, img.Bounds().Dx(), img.Bounds().Dy(), out, len(data))
	return nil
}

func decodeFile(path, out string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if data, err = archive.Decompress(data); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	img, err := qoi.DecodeImage(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	logging.Info("decoded %s -> %s", path, out)
	return nil
}

// outputPath replaces the extension of path with the one of the target
// format, placing the file in the configured output directory if there is one.
func outputPath(path string, cfg *config.Config) string {
	ext := ".png"
	if !isQOI(path) {
		ext = ".qoi"
		if cfg.Output.Zstd {
			ext = archive.Extension
		}
	}

	base := path
	if lower := strings.ToLower(base); strings.HasSuffix(lower, archive.Extension) {
		base = base[:len(base)-len(archive.Extension)]
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	out := base + ext
	if cfg.Output.Dir != "" {
		out = filepath.Join(cfg.Output.Dir, filepath.Base(out))
	}
	return out
}

func printInfo(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	size := len(data)
	if data, err = archive.Decompress(data); err != nil {
		return fmt.Errorf("info %s: %w", path, err)
	}

	header, err := qoi.DecodeHeader(data)
	if err != nil {
		return fmt.Errorf("info %s: %w", path, err)
	}

	channels, colorspace := "rgb", "linear"
	if header.HasAlpha {
		channels = "rgba"
	}
	if header.SRGB {
		colorspace = "srgb"
	}
	_, err = fmt.Fprintf(w, "%s: %dx%d %s %s, %d bytes\n", path, header.Width, header.Height, channels, colorspace, size)
	return err
}
