// Command tone_tester prompts for tone parameters and plays them, so effect
// settings can be tried out by ear. A continuous tone with an effect enters
// a loop where the effect level can be changed while the tone keeps playing.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/faiface/mainthread"
	"golang.org/x/term"

	"github.com/cbegin/audio8-go"
)

// prompter reads one answer per prompt.
type prompter interface {
	ask(prompt string) (string, error)
	Close() error
}

// termPrompter gives line editing on an interactive terminal.
type termPrompter struct {
	fd    int
	state *term.State
	t     *term.Terminal
}

func newTermPrompter(fd int) (*termPrompter, error) {
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	rw := struct {
		io.Reader
		io.Writer
	}{os.Stdin, os.Stdout}
	return &termPrompter{fd: fd, state: state, t: term.NewTerminal(rw, "")}, nil
}

func (p *termPrompter) ask(prompt string) (string, error) {
	p.t.SetPrompt(prompt)
	return p.t.ReadLine()
}

func (p *termPrompter) println(s string) {
	fmt.Fprintf(p.t, "%s\n", s)
}

func (p *termPrompter) Close() error {
	return term.Restore(p.fd, p.state)
}

type linePrompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *linePrompter) ask(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return p.in.Text(), nil
}

func (p *linePrompter) Close() error { return nil }

type tester struct {
	p   prompter
	out func(string)
	e   *audio8.Engine
	ctx context.Context
}

func (t *tester) readInt(prompt string, def int) (int, error) {
	line, err := t.p.ask(fmt.Sprintf("%s (default %d): ", prompt, def))
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		t.out(strconv.Itoa(def))
		return def, nil
	}
	return v, nil
}

func (t *tester) loop() error {
	for {
		voice, err := t.readInt("Voice 0-3, or -1 to quit", 0)
		if err != nil || voice == -1 {
			return err
		}
		hz, err := t.readInt("Tone", 0)
		if err != nil {
			return err
		}
		volume, err := t.readInt("Volume", 5)
		if err != nil {
			return err
		}
		ev, err := t.readInt("Effect type (none=0,fixed=1,up=2,down=3,bounce=4)", 0)
		if err != nil {
			return err
		}
		tone := audio8.Tone{Voice: voice, Hz: hz, Volume: volume, Effect: audio8.Effect(ev)}
		if !tone.Effect.Valid() {
			t.out(fmt.Sprintf("unknown effect %d, using none", ev))
			tone.Effect = audio8.EffectNone
		}
		if tone.Effect != audio8.EffectNone {
			if tone.Level, err = t.readInt("Effect level", 1); err != nil {
				return err
			}
			if tone.Effect == audio8.EffectBounce {
				if tone.Low, err = t.readInt("Effect level low", 0); err != nil {
					return err
				}
			}
		}
		if tone.Duration, err = t.readInt("Duration in ms, 0 for continuous", 200); err != nil {
			return err
		}

		if tone.Hz == 0 || tone.Effect == audio8.EffectNone || tone.Duration != 0 {
			if err := t.e.PlayTone(t.ctx, tone); err != nil {
				return err
			}
			continue
		}
		if err := t.modifyLevel(tone); err != nil {
			return err
		}
	}
}

// modifyLevel replays a continuous tone each time a new effect level is
// entered. 0 stops the tone, -1 leaves it playing.
func (t *tester) modifyLevel(tone audio8.Tone) error {
	t.out("------------- Modify Effect Level ----------------")
	t.out("Enter 0 to stop modifying and stop tone")
	t.out("     -1 to stop modifying and leave tone playing")
	t.out("--------------------------------------------------")
	for {
		if err := t.e.PlayTone(t.ctx, tone); err != nil {
			return err
		}
		level, err := t.readInt(fmt.Sprintf("Current effect level %d, enter next level", tone.Level), tone.Level-1)
		if err != nil {
			return err
		}
		switch level {
		case 0:
			t.e.Stop(tone.Voice)
			return nil
		case -1:
			return nil
		}
		tone.Level = level
	}
}

func main() {
	backend := flag.String("backend", "", "audio backend, empty for default")
	debug := flag.Bool("debug", false, "log applied tones")
	flag.Parse()

	var err error
	mainthread.Run(func() {
		err = run(*backend, *debug)
	})
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
	fmt.Println("\nFinished")
}

func run(backend string, debug bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []audio8.Option{audio8.WithBackend(backend)}
	if debug {
		opts = append(opts, audio8.WithLogger(log.New(os.Stderr, "", log.Lmicroseconds)))
	}
	e, err := audio8.New(opts...)
	if err != nil {
		return err
	}
	defer e.Close()

	t := &tester{e: e, ctx: ctx}
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		tp, err := newTermPrompter(fd)
		if err != nil {
			return err
		}
		defer tp.Close()
		t.p, t.out = tp, tp.println
	} else {
		t.p = &linePrompter{in: bufio.NewScanner(os.Stdin), out: os.Stdout}
		t.out = func(s string) { fmt.Println(s) }
	}
	return t.loop()
}
