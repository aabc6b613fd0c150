package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/faiface/mainthread"

	"github.com/cbegin/audio8-go"
	"github.com/cbegin/audio8-go/internal/analysis"
	intaudio "github.com/cbegin/audio8-go/internal/audio"
	"github.com/cbegin/audio8-go/internal/script"
)

const usage = `usage: audio8 <command> [flags]

commands:
  tone      play one tone on a voice
  notes     play a note string on voice 0
  render    render tones or notes to a WAV file
  script    run a Lua script
  demo      run an embedded demo (%s)
  backends  list compiled audio backends
`

func main() {
	log.SetFlags(0)
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, strings.Join(script.Demos(), "|"))
		os.Exit(2)
	}
	var err error
	// SDL needs its calls on the main thread; the other backends do not care.
	mainthread.Run(func() {
		err = run(os.Args[1], os.Args[2:])
	})
	if err != nil {
		var devErr *intaudio.DeviceError
		if errors.As(err, &devErr) {
			log.Fatalf("audio8: could not open %s: %v (try -backend null)", devErr.Backend, devErr.Err)
		}
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		log.Fatal(err)
	}
}

func run(cmd string, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case "tone":
		return runTone(ctx, args)
	case "notes":
		return runNotes(ctx, args)
	case "render":
		return runRender(args)
	case "script":
		return runScript(ctx, args)
	case "demo":
		return runDemo(ctx, args)
	case "backends":
		for _, name := range intaudio.Backends() {
			marker := " "
			if name == intaudio.DefaultBackend() {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, name)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q (expected tone|notes|render|script|demo|backends)", cmd)
	}
}

type engineFlags struct {
	backend    *string
	sampleRate *int
	buffer     *int
	debug      *bool
}

func addEngineFlags(fs *flag.FlagSet) engineFlags {
	return engineFlags{
		backend:    fs.String("backend", "", "audio backend ("+strings.Join(intaudio.Backends(), "|")+"), empty for default"),
		sampleRate: fs.Int("sample-rate", audio8.DefaultSampleRate, "output sample rate"),
		buffer:     fs.Int("buffer", audio8.DefaultBufferSize, "samples per device buffer"),
		debug:      fs.Bool("debug", false, "log applied tones"),
	}
}

func (f engineFlags) open() (*audio8.Engine, error) {
	opts := []audio8.Option{
		audio8.WithBackend(*f.backend),
		audio8.WithSampleRate(*f.sampleRate),
		audio8.WithBufferSize(*f.buffer),
	}
	if *f.debug {
		opts = append(opts, audio8.WithLogger(log.New(os.Stderr, "", log.Lmicroseconds)))
	}
	return audio8.New(opts...)
}

type toneFlags struct {
	voice    *int
	hz       *int
	duration *int
	volume   *int
	effect   *string
	level    *int
	low      *int
}

func addToneFlags(fs *flag.FlagSet, duration int) toneFlags {
	return toneFlags{
		voice:    fs.Int("voice", 0, "voice 0-3"),
		hz:       fs.Int("hz", 440, "frequency in Hz"),
		duration: fs.Int("duration", duration, "duration in ms"),
		volume:   fs.Int("volume", 5, "volume 0-10"),
		effect:   fs.String("effect", "none", "effect: none|fixed|up|down|bounce"),
		level:    fs.Int("level", 0, "effect level"),
		low:      fs.Int("low", 0, "bounce low level"),
	}
}

func (f toneFlags) tone() (audio8.Tone, error) {
	effect, err := audio8.ParseEffect(*f.effect)
	if err != nil {
		return audio8.Tone{}, err
	}
	return audio8.Tone{
		Voice:    *f.voice,
		Hz:       *f.hz,
		Duration: *f.duration,
		Volume:   *f.volume,
		Effect:   effect,
		Level:    *f.level,
		Low:      *f.low,
	}, nil
}

func runTone(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tone", flag.ExitOnError)
	ef := addEngineFlags(fs)
	tf := addToneFlags(fs, 1000)
	fs.Parse(args)

	t, err := tf.tone()
	if err != nil {
		return err
	}
	if t.Duration == 0 {
		return errors.New("tone: -duration 0 would play until interrupted; use a positive duration")
	}
	e, err := ef.open()
	if err != nil {
		return err
	}
	defer e.Close()
	return e.PlayTone(ctx, t)
}

func runNotes(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("notes", flag.ExitOnError)
	ef := addEngineFlags(fs)
	inc := fs.Int("inc", 200, "length of one note in ms")
	volume := fs.Int("volume", 5, "volume 0-10")
	fs.Parse(args)

	notes := strings.Join(fs.Args(), " ")
	if notes == "" {
		return errors.New(`notes: missing note string, e.g. audio8 notes "CDEFG^ABC"`)
	}
	e, err := ef.open()
	if err != nil {
		return err
	}
	defer e.Close()
	return e.PlayNotes(ctx, *inc, *volume, notes)
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	tf := addToneFlags(fs, 1000)
	sampleRate := fs.Int("sample-rate", audio8.DefaultSampleRate, "output sample rate")
	notes := fs.String("notes", "", "render a note string instead of a single tone")
	inc := fs.Int("inc", 200, "length of one note in ms, with -notes")
	out := fs.String("o", "audio8.wav", "output WAV path")
	analyze := fs.Bool("analyze", false, "print the dominant frequency of the render")
	fs.Parse(args)

	var samples []byte
	if *notes != "" {
		samples = audio8.RenderNotes(*sampleRate, *inc, *tf.volume, *notes)
	} else {
		t, err := tf.tone()
		if err != nil {
			return err
		}
		count := t.Duration * *sampleRate / 1000
		samples = audio8.RenderTones(*sampleRate, count, t)
	}
	if len(samples) == 0 {
		return errors.New("render: nothing to render")
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := audio8.EncodeWAV(f, samples, *sampleRate); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %d samples to %s\n", len(samples), *out)

	if *analyze {
		hz, err := analysis.DominantFrequency(samples, *sampleRate, intaudio.SilenceU8)
		if err != nil {
			return err
		}
		fmt.Printf("dominant frequency %.1f Hz\n", hz)
	}
	return nil
}

func runScript(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	ef := addEngineFlags(fs)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("script: expected one script path, or - for stdin")
	}

	path := fs.Arg(0)
	var (
		src []byte
		err error
	)
	if path == "-" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return err
	}
	e, err := ef.open()
	if err != nil {
		return err
	}
	defer e.Close()
	return script.Run(ctx, e, path, string(src))
}

func runDemo(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	ef := addEngineFlags(fs)
	fs.Parse(args)
	names := fs.Args()
	if len(names) == 0 {
		names = script.Demos()
	}

	e, err := ef.open()
	if err != nil {
		return err
	}
	defer e.Close()
	for _, name := range names {
		src, err := script.Demo(name)
		if err != nil {
			return err
		}
		if err := script.Run(ctx, e, name, src); err != nil {
			return err
		}
	}
	return nil
}
