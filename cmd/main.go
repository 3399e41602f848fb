package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/BLAZED-sh/ndscan/pkg/codec"
	"github.com/BLAZED-sh/ndscan/pkg/config"
	"github.com/BLAZED-sh/ndscan/pkg/json"
	"github.com/BLAZED-sh/ndscan/pkg/ndjson"
	"github.com/BLAZED-sh/ndscan/pkg/source"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/theory/jsonpath"
)

const version = "0.1.0"

const usage = `Usage: ndscan [flags] <validate|count|cat|select> [file...]

Reads newline-delimited JSON from the given files, or stdin when none or "-"
is given.

  validate  scan every record and report the first error
  count     print the number of records
  cat       re-emit every record in compact form
  select    emit the nodes matched by -path in every record

Flags:
`

var errUsage = errors.New("usage error")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ndscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	// Input options
	configPath := fs.String("config", "", "YAML config file; flags given explicitly override it")
	strict := fs.Bool("strict", false, "Validate the full JSON grammar and reject comments")
	charset := fs.String("charset", "", "Input charset: utf-8, auto, or any WHATWG label")
	path := fs.String("path", "", "JSONPath expression for select")

	// Performance options
	stream := fs.Bool("stream", false, "Decode incrementally instead of reading whole inputs")
	bufferSize := fs.Int("buffer", 16384, "Initial buffer size for the stream lexer")
	maxRead := fs.Int("max-read", 4096, "Maximum read size per operation")
	maxRecord := fs.Int("max-record", 0, "Maximum size of one streamed record, 0 for no limit")

	// Logging options
	logLevel := fs.String("log-level", "info", "Log level (trace, debug, info, warn, error, fatal)")
	prettyLogs := fs.Bool("pretty", false, "Enable pretty logging output")

	showVersion := fs.Bool("version", false, "Show version and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "ndscan version %s\n", version)
		return 0
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "strict":
			cfg.Strict = *strict
		case "charset":
			cfg.Charset = *charset
		case "path":
			cfg.Path = *path
		case "stream":
			cfg.Stream = *stream
		case "buffer":
			cfg.BufferSize = *bufferSize
		case "max-read":
			cfg.MaxRead = *maxRead
		case "max-record":
			cfg.MaxRecordSize = *maxRecord
		case "log-level":
			cfg.LogLevel = *logLevel
		case "pretty":
			cfg.Pretty = *prettyLogs
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	setupLogging(cfg.LogLevel, cfg.Pretty, stderr)

	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	out := bufio.NewWriter(stdout)
	a := &app{
		ctx:     ctx,
		cfg:     cfg,
		command: fs.Arg(0),
		stdin:   stdin,
		out:     out,
		sink:    json.NewSink(4096),
		logger:  log.Logger.With().Str("component", "ndscan").Logger(),
	}
	err := a.run(fs.Args()[1:])
	if ferr := out.Flush(); err == nil {
		err = ferr
	}

	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return 2
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

type app struct {
	ctx     context.Context
	cfg     config.Config
	command string
	stdin   io.Reader
	out     *bufio.Writer
	sink    *json.Sink
	path    *jsonpath.Path
	logger  zerolog.Logger

	records int
	emitted int
}

func (a *app) run(inputs []string) error {
	switch a.command {
	case "validate", "count", "cat":
	case "select":
		if a.cfg.Path == "" {
			return fmt.Errorf("%w: select needs -path", errUsage)
		}
		p, err := jsonpath.Parse(a.cfg.Path)
		if err != nil {
			return fmt.Errorf("%w: invalid JSONPath %s: %v", errUsage, a.cfg.Path, err)
		}
		a.path = p
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, a.command)
	}

	if len(inputs) == 0 {
		inputs = []string{"-"}
	}
	for _, name := range inputs {
		if err := a.scan(name); err != nil {
			return err
		}
	}

	a.logger.Info().
		Str("command", a.command).
		Int("inputs", len(inputs)).
		Int("records", a.records).
		Bool("strict", a.cfg.Strict).
		Bool("stream", a.cfg.Stream).
		Msg("Scan complete")

	switch a.command {
	case "count":
		fmt.Fprintf(a.out, "%d\n", a.records)
	case "cat", "select":
		if a.emitted > 0 {
			return a.out.WriteByte('\n')
		}
	}
	return nil
}

func (a *app) options(name string) []ndjson.Option {
	return []ndjson.Option{
		ndjson.WithStrict(a.cfg.Strict),
		ndjson.WithCharset(a.cfg.Charset),
		ndjson.WithFile(name),
		ndjson.WithBuffer(a.cfg.BufferSize, a.cfg.MaxRead),
		ndjson.WithMaxRecordSize(a.cfg.MaxRecordSize),
		ndjson.WithLogger(a.logger),
	}
}

func (a *app) scan(name string) error {
	a.logger.Debug().Str("input", name).Msg("Scanning input")
	if a.cfg.Stream {
		return a.scanStream(name)
	}

	buf, err := a.load(name)
	if err != nil {
		return err
	}
	var values []any
	if err := ndjson.Read(ndjson.Grow(&values), buf, a.options(name)...); err != nil {
		return err
	}
	a.records += len(values)

	var projected []any
	for _, v := range values {
		projected = append(projected, a.project(v)...)
	}
	if len(projected) == 0 {
		return nil
	}

	a.sink.Reset()
	if a.emitted > 0 {
		_ = a.sink.WriteByte('\n')
	}
	if err := ndjson.Write(ndjson.Fixed(projected), a.sink); err != nil {
		return err
	}
	a.emitted += len(projected)
	_, err = a.out.Write(a.sink.Bytes())
	return err
}

func (a *app) scanStream(name string) error {
	r := a.stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	d := ndjson.NewDecoder(a.ctx, r, a.options(name)...)
	err := ndjson.DecodeStream(d, func(v any) error {
		a.records++
		return a.emit(a.project(v))
	})
	if err != nil {
		return fmt.Errorf("%s: record %d: %w", name, a.records+1, err)
	}
	return nil
}

func (a *app) load(name string) ([]byte, error) {
	if name != "-" {
		return source.ReadFile(name, a.cfg.Charset)
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, err
	}
	data, err = source.Transcode(data, a.cfg.Charset)
	if err != nil {
		return nil, err
	}
	return json.Pad(data), nil
}

// project maps a record to the values the command prints.
func (a *app) project(v any) []any {
	switch a.command {
	case "cat":
		return []any{v}
	case "select":
		return []any(a.path.Select(v))
	}
	return nil
}

func (a *app) emit(values []any) error {
	for _, v := range values {
		a.sink.Reset()
		if a.emitted > 0 {
			_ = a.sink.WriteByte('\n')
		}
		var ctx json.Context
		codec.Default.EncodeValue(&ctx, v, a.sink, json.Options{})
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := a.out.Write(a.sink.Bytes()); err != nil {
			return err
		}
		a.emitted++
	}
	return nil
}

func setupLogging(level string, pretty bool, out io.Writer) {
	// Validated by config, so the error is never set here
	logLevel, _ := config.ParseLevel(level)
	zerolog.SetGlobalLevel(logLevel)

	// Configure output format
	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: out})
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}
}
