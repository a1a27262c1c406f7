package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/klauspost/compress/zlib"

	"github.com/oza6ut0ne/qrc"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

type config struct {
	text      string
	format    string
	layout    string
	output    string
	width     int
	chunkSize int
	delay     int
	padding   int
	margin    int
	dark      string
	light     string
	ecl       string
	watermark string
	logo      string
	compress  bool
	decode    bool
	debug     bool
}

func parseFlags(args []string) (*config, []string, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("qrc", flag.ContinueOnError)
	fs.StringVar(&cfg.text, "text", "", "encode this text instead of an input file")
	fs.StringVar(&cfg.format, "format", "png", "output format: png, jpg, gif or svg")
	fs.StringVar(&cfg.layout, "layout", "apng", "layout for multi-frame output: apng, grid or row")
	fs.StringVar(&cfg.output, "o", "", "output file (default qr_<input>.<ext>)")
	fs.IntVar(&cfg.width, "width", 512, "output size in pixels (minimum size for svg)")
	fs.IntVar(&cfg.chunkSize, "chunksize", 0, "split input into frames of this many bytes, 0 disables")
	fs.IntVar(&cfg.delay, "delay", 500, "frame delay in milliseconds for apng")
	fs.IntVar(&cfg.padding, "padding", 20, "padding in pixels for grid layout")
	fs.IntVar(&cfg.margin, "margin", 4, "quiet zone in modules around raster output")
	fs.StringVar(&cfg.dark, "dark", "black", "dark module colour: name, #rrggbb, #rrggbbaa or transparent")
	fs.StringVar(&cfg.light, "light", "white", "light module colour")
	fs.StringVar(&cfg.ecl, "ecl", "M", "error correction level: L, M, Q or H")
	fs.StringVar(&cfg.watermark, "watermark", "", "image blended onto the bottom-right corner")
	fs.StringVar(&cfg.logo, "logo", "", "image drawn over the centre of the symbol")
	fs.BoolVar(&cfg.compress, "compress", false, "zlib-compress the payload (decompress when decoding)")
	fs.BoolVar(&cfg.decode, "decode", false, "decode QR codes from the input image")
	fs.BoolVar(&cfg.debug, "debug", false, "enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n  qrc [flags] <input-file>\n  qrc -text <text> [flags]\n  qrc -decode [flags] <image>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func main() {
	cfg, args, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	level := slog.LevelInfo
	if cfg.debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	qrc.SetLogger(logger)

	if cfg.decode {
		if len(args) != 1 {
			fatal("decode mode needs exactly one input image")
		}
		err = decodeMode(cfg, args[0])
	} else {
		err = encodeMode(cfg, args)
	}
	if err != nil {
		fatal(err.Error())
	}
}

func fatal(msg string) {
	logger.Error(msg)
	os.Exit(1)
}

func decodeMode(cfg *config, path string) error {
	data, frames, err := decodeFile(path)
	if err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if cfg.compress {
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
		if data, err = io.ReadAll(zr); err != nil {
			return fmt.Errorf("decompress: %w", err)
		}
	}
	logger.Info("decoded", "file", path, "frames", frames, "bytes", len(data))
	if cfg.output == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(cfg.output, data, 0o644)
}

func encodeMode(cfg *config, args []string) error {
	var data []byte
	name := "text"
	switch {
	case cfg.text != "" && len(args) == 0:
		data = []byte(cfg.text)
	case cfg.text == "" && len(args) == 1:
		b, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if len(b) == 0 {
			return fmt.Errorf("input file %s is empty", args[0])
		}
		data, name = b, filepath.Base(args[0])
	default:
		return fmt.Errorf("need either -text or exactly one input file")
	}

	if cfg.compress {
		before := len(data)
		data = qrc.Compress(data)
		logger.Debug("compressed payload", "before", before, "after", len(data))
	}

	palette, err := parsePalette(cfg.dark, cfg.light)
	if err != nil {
		return err
	}
	ecl, err := parseErrorCorrection(cfg.ecl)
	if err != nil {
		return err
	}

	chunks, err := splitFrames(data, cfg.chunkSize)
	if err != nil {
		return err
	}
	symbols := make([]*qrc.Symbol, len(chunks))
	for i, c := range chunks {
		symbols[i] = qrc.New(c, qrc.WithErrorCorrection(ecl))
	}

	out := cfg.output
	if len(symbols) > 1 {
		if out == "" {
			out = "qr_" + name + ".png"
		}
		fmt.Printf("Input is %d bytes, generating %d frames as %s.\n", len(data), len(symbols), cfg.layout)
		return writeFrames(cfg, symbols, palette, out)
	}

	if cfg.format == "svg" {
		if out == "" {
			out = "qr_" + name + ".svg"
		}
		return writeSVG(symbols[0], cfg.width, palette, out)
	}
	f, err := qrc.ParseFormat(cfg.format)
	if err != nil {
		return err
	}
	if out == "" {
		out = "qr_" + name + "." + f.String()
	}
	img, err := renderSymbol(cfg, symbols[0], palette)
	if err != nil {
		return err
	}
	if err := writeImage(out, img, f); err != nil {
		return err
	}
	fmt.Printf("Successfully created QR code file %s.\n", out)
	return nil
}

// renderSymbol rasterizes s and applies the optional logo and watermark.
func renderSymbol(cfg *config, s *qrc.Symbol, palette qrc.Palette) (*image.NRGBA, error) {
	g, err := s.Grid()
	if err != nil {
		return nil, err
	}
	img, err := qrc.Rasterize(g, cfg.width, cfg.width, palette)
	if err != nil {
		return nil, err
	}

	if cfg.logo != "" {
		logo, err := imaging.Open(cfg.logo)
		if err != nil {
			return nil, fmt.Errorf("open logo: %w", err)
		}
		// Centred and kept to a fifth of the side, clear of the finder patterns.
		side := max(1, cfg.width/5)
		logo = imaging.Fit(logo, side, side, imaging.Lanczos)
		img = imaging.OverlayCenter(img, logo, 1.0)
	}

	if cfg.watermark != "" {
		wm, err := imaging.Open(cfg.watermark)
		if err != nil {
			return nil, fmt.Errorf("open watermark: %w", err)
		}
		if err := qrc.OverlayWatermark(img, wm); err != nil {
			return nil, err
		}
	}
	return addMargin(img, marginPixels(cfg.margin, cfg.width, g.Width()), palette.Light), nil
}

// renderRow lays symbols out left to right with Combine, then recolours the
// strip with palette, separates the symbols by a quiet gap and scales it so
// the tallest symbol is about cfg.width pixels high.
func renderRow(cfg *config, symbols []*qrc.Symbol, palette qrc.Palette) (*image.NRGBA, error) {
	row, err := qrc.Combine(symbols)
	if err != nil {
		return nil, err
	}
	layout, err := qrc.LayoutRow(symbols)
	if err != nil {
		return nil, err
	}

	gap := max(4, 2*cfg.margin)
	tallest := 0
	for _, p := range layout.Placements {
		tallest = max(tallest, p.Grid.Width())
	}
	strip := imaging.New(layout.Width+gap*(len(layout.Placements)-1), tallest, palette.Light)
	for i, p := range layout.Placements {
		n := p.Grid.Width()
		tile := imaging.AdjustFunc(imaging.Crop(row, image.Rect(p.X, 0, p.X+n, n)), func(c color.NRGBA) color.NRGBA {
			// Combine paints dark modules transparent and light ones opaque.
			if c.A == 0 {
				return palette.Dark
			}
			return palette.Light
		})
		strip = imaging.Paste(strip, tile, image.Pt(p.X+i*gap, 0))
	}

	scale := max(1, cfg.width/tallest)
	b := strip.Bounds()
	img := imaging.Resize(strip, b.Dx()*scale, b.Dy()*scale, imaging.NearestNeighbor)
	return addMargin(img, max(0, cfg.margin)*scale, palette.Light), nil
}

// marginPixels converts a quiet zone in modules to pixels for an n-module
// symbol rendered width pixels wide.
func marginPixels(modules, width, n int) int {
	if modules <= 0 {
		return 0
	}
	return max(1, modules*width/n)
}

// addMargin surrounds img with pad pixels of colour c.
func addMargin(img *image.NRGBA, pad int, c color.NRGBA) *image.NRGBA {
	if pad <= 0 {
		return img
	}
	b := img.Bounds()
	bg := imaging.New(b.Dx()+2*pad, b.Dy()+2*pad, c)
	return imaging.Paste(bg, img, image.Pt(pad, pad))
}

func writeFrames(cfg *config, symbols []*qrc.Symbol, palette qrc.Palette, out string) error {
	if cfg.layout == "row" {
		img, err := renderRow(cfg, symbols, palette)
		if err != nil {
			return err
		}
		if err := writeImage(out, img, qrc.PNG); err != nil {
			return err
		}
		fmt.Printf("Successfully created %s.\n", out)
		return nil
	}

	rendered, err := qrc.RenderBatch(symbols, cfg.width, palette)
	if err != nil {
		return err
	}
	// Frames share one canvas size, so the quiet zone follows the largest symbol.
	n := 1
	for _, s := range symbols {
		w, err := s.Width()
		if err != nil {
			return err
		}
		n = max(n, w)
	}
	pad := marginPixels(cfg.margin, cfg.width, n)
	frames := make([]image.Image, len(rendered))
	for i, r := range rendered {
		frames[i] = addMargin(r, pad, palette.Light)
	}

	switch cfg.layout {
	case "apng":
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := qrc.EncodeAnimation(f, frames, cfg.delay); err != nil {
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", out, err)
		}
	case "grid":
		img, err := qrc.LayoutGrid(frames, cfg.padding)
		if err != nil {
			return err
		}
		if err := writeImage(out, img, qrc.PNG); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid layout %q, use apng, grid or row", cfg.layout)
	}
	fmt.Printf("Successfully created %s.\n", out)
	return nil
}

func writeSVG(s *qrc.Symbol, minDimension int, p qrc.Palette, out string) error {
	g, err := s.Grid()
	if err != nil {
		return err
	}
	doc, err := qrc.RenderVector(g, minDimension, p.Dark, p.Light)
	if err != nil {
		return err
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := doc.WriteSVG(f); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", out, err)
	}
	fmt.Printf("Successfully created QR code file %s.\n", out)
	return nil
}

func writeImage(path string, img image.Image, f qrc.Format) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if err := qrc.EncodeImage(out, img, f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}

func parseErrorCorrection(s string) (qrc.ErrorCorrection, error) {
	switch strings.ToUpper(s) {
	case "L":
		return qrc.ErrorCorrectionL, nil
	case "M":
		return qrc.ErrorCorrectionM, nil
	case "Q":
		return qrc.ErrorCorrectionQ, nil
	case "H":
		return qrc.ErrorCorrectionH, nil
	}
	return 0, fmt.Errorf("invalid error correction level %q", s)
}
