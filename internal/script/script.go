package script

import (
	"context"
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/cbegin/audio8-go"
)

//go:embed demos/*.lua
var demoFS embed.FS

// Player is the part of the engine a script can drive.
type Player interface {
	PlayTone(ctx context.Context, t audio8.Tone) error
	PlayNotes(ctx context.Context, increment, volume int, notes string) error
	PlayChord(ctx context.Context, tones ...audio8.Tone) error
	Stop(voice int)
	StopAll()
}

// Run executes a Lua script against p. The script sees
//
//	play_tone(voice, hz, duration, volume [, effect [, level [, low]]])
//	play_notes(increment, volume, notes)
//	play_chord({voice=, hz=, duration=, volume=, effect=, level=, low=}, ...)
//	sleep(ms)  stop(voice)  stop_all()
//	NONE FIXED UP DOWN BOUNCE
//
// Cancelling ctx aborts the script and any tone it is waiting on.
func Run(ctx context.Context, p Player, name, src string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	for n, e := range map[string]audio8.Effect{
		"NONE":   audio8.EffectNone,
		"FIXED":  audio8.EffectFixed,
		"UP":     audio8.EffectUp,
		"DOWN":   audio8.EffectDown,
		"BOUNCE": audio8.EffectBounce,
	} {
		L.SetGlobal(n, lua.LNumber(e))
	}

	b := &bindings{ctx: ctx, p: p}
	L.SetGlobal("play_tone", L.NewFunction(b.playTone))
	L.SetGlobal("play_notes", L.NewFunction(b.playNotes))
	L.SetGlobal("play_chord", L.NewFunction(b.playChord))
	L.SetGlobal("sleep", L.NewFunction(b.sleep))
	L.SetGlobal("stop", L.NewFunction(b.stop))
	L.SetGlobal("stop_all", L.NewFunction(b.stopAll))

	if err := L.DoString(src); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("script %s: %w", name, err)
	}
	return nil
}

type bindings struct {
	ctx context.Context
	p   Player
}

func (b *bindings) playTone(L *lua.LState) int {
	t := audio8.Tone{
		Voice:    L.CheckInt(1),
		Hz:       L.CheckInt(2),
		Duration: L.CheckInt(3),
		Volume:   L.CheckInt(4),
		Effect:   audio8.Effect(L.OptInt(5, int(audio8.EffectNone))),
		Level:    L.OptInt(6, 0),
		Low:      L.OptInt(7, 0),
	}
	b.check(L, b.p.PlayTone(b.ctx, t))
	return 0
}

func (b *bindings) playNotes(L *lua.LState) int {
	err := b.p.PlayNotes(b.ctx, L.CheckInt(1), L.CheckInt(2), L.CheckString(3))
	b.check(L, err)
	return 0
}

func (b *bindings) playChord(L *lua.LState) int {
	tones := make([]audio8.Tone, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		tbl := L.CheckTable(i)
		field := func(key string) int {
			return int(lua.LVAsNumber(tbl.RawGetString(key)))
		}
		tones = append(tones, audio8.Tone{
			Voice:    field("voice"),
			Hz:       field("hz"),
			Duration: field("duration"),
			Volume:   field("volume"),
			Effect:   audio8.Effect(field("effect")),
			Level:    field("level"),
			Low:      field("low"),
		})
	}
	b.check(L, b.p.PlayChord(b.ctx, tones...))
	return 0
}

func (b *bindings) sleep(L *lua.LState) int {
	d := time.Duration(L.CheckInt(1)) * time.Millisecond
	select {
	case <-b.ctx.Done():
		b.check(L, b.ctx.Err())
	case <-time.After(d):
	}
	return 0
}

func (b *bindings) stop(L *lua.LState) int {
	b.p.Stop(L.CheckInt(1))
	return 0
}

func (b *bindings) stopAll(L *lua.LState) int {
	b.p.StopAll()
	return 0
}

func (b *bindings) check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

// Demos lists the embedded demo scripts by name.
func Demos() []string {
	entries, err := demoFS.ReadDir("demos")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".lua"))
	}
	sort.Strings(names)
	return names
}

// Demo returns the source of an embedded demo.
func Demo(name string) (string, error) {
	data, err := demoFS.ReadFile(path.Join("demos", name+".lua"))
	if err != nil {
		return "", fmt.Errorf("unknown demo %q (have %s)", name, strings.Join(Demos(), ", "))
	}
	return string(data), nil
}
