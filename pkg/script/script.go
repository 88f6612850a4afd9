/*
   R16 - fantasy console
   Copyright (c) 2023, The R16 Authors

   This file is part of R16.

   R16 is free software: you can redistribute it and/or modify
   it under the terms of the GNU General Public License as published by
   the Free Software Foundation, either version 3 of the License, or
   (at your option) any later version.

   R16 is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
   GNU General Public License for more details.

   You should have received a copy of the GNU General Public License
   along with R16. If not, see <http://www.gnu.org/licenses/>.
*/

package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"

	lua "github.com/yuin/gopher-lua"

	log "github.com/sirupsen/logrus"

	"github.com/rainbow16/r16/pkg/display"
	"github.com/rainbow16/r16/pkg/input"
)

// ErrStop is returned by Call when the script invoked stop()
var ErrStop = errors.New("script stopped")

// Host is the machine a script runs on
type Host interface {
	Peek(addr int) byte
	Poke(addr int, v byte)
	Sfx(idx int)
	Time() float64
	Display() *display.Display
	Input() *input.Input
}

// VM runs a cartridge script
type VM struct {
	state   *lua.LState
	host    Host
	rnd     *rand.Rand
	stopped bool
}

// New creates a VM with the standard Lua libraries and the console API
// installed as globals.
func New(host Host, seed int64) *VM {
	ret := &VM{
		state: lua.NewState(),
		host:  host,
		rnd:   rand.New(rand.NewSource(seed)),
	}
	ret.install()
	return ret
}

// Load runs a script chunk, defining its globals
func (v *VM) Load(code string) error {
	if err := v.state.DoString(code); err != nil {
		return fmt.Errorf("error loading script: %v", err)
	}
	return nil
}

// Has reports whether the script defines a global function
func (v *VM) Has(name string) bool {
	return v.state.GetGlobal(name).Type() == lua.LTFunction
}

// Call invokes a global function without arguments. A missing function is
// not an error.
func (v *VM) Call(ctx context.Context, name string) error {

	fn := v.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}

	v.state.SetContext(ctx)
	defer v.state.RemoveContext()

	err := v.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true})
	if v.stopped {
		return ErrStop
	}
	if err != nil {
		return fmt.Errorf("error in %s: %v", name, err)
	}
	return nil
}

//
func (v *VM) Close() {
	v.state.Close()
}

//
func (v *VM) install() {
	for name, fn := range map[string]lua.LGFunction{
		"peek":     v.peek,
		"poke":     v.poke,
		"sfx":      v.sfx,
		"btn":      v.btn,
		"btnp":     v.btnp,
		"time":     v.time,
		"stop":     v.stop,
		"print":    v.print,
		"setp":     v.setp,
		"pget":     v.pget,
		"cls":      v.cls,
		"pal":      v.pal,
		"palt":     v.palt,
		"setpal":   v.setpal,
		"camera":   v.camera,
		"clip":     v.clip,
		"rect":     v.rect,
		"rectfill": v.rectfill,
		"line":     v.line,
		"circle":   v.circle,
		"spr":      v.spr,
		"sspr":     v.sspr,
		"add":      add,
		"del":      del,
		"flr":      math1(math.Floor),
		"sqrt":     math1(math.Sqrt),
		"sin":      math1(math.Sin),
		"cos":      math1(math.Cos),
		"rnd":      v.random,
	} {
		v.state.SetGlobal(name, v.state.NewFunction(fn))
	}
}

//
func color(L *lua.LState, n int) byte {
	return byte(L.CheckInt(n))
}

//
func (v *VM) peek(L *lua.LState) int {
	L.Push(lua.LNumber(v.host.Peek(L.CheckInt(1))))
	return 1
}

//
func (v *VM) poke(L *lua.LState) int {
	v.host.Poke(L.CheckInt(1), byte(L.CheckInt(2)))
	return 0
}

//
func (v *VM) sfx(L *lua.LState) int {
	v.host.Sfx(L.CheckInt(1))
	return 0
}

//
func (v *VM) btn(L *lua.LState) int {
	L.Push(lua.LBool(v.host.Input().ButtonDown(input.ButtonFromIndex(L.CheckInt(1)))))
	return 1
}

//
func (v *VM) btnp(L *lua.LState) int {
	L.Push(lua.LBool(v.host.Input().ButtonPressed(input.ButtonFromIndex(L.CheckInt(1)))))
	return 1
}

//
func (v *VM) time(L *lua.LState) int {
	L.Push(lua.LNumber(v.host.Time()))
	return 1
}

//
func (v *VM) stop(L *lua.LState) int {
	v.stopped = true
	L.RaiseError("stop")
	return 0
}

//
func (v *VM) print(L *lua.LState) int {
	log.WithField("source", "script").Info(L.ToStringMeta(L.Get(1)).String())
	return 0
}

//
func (v *VM) setp(L *lua.LState) int {
	v.host.Display().SetPixel(L.CheckInt(1), L.CheckInt(2), color(L, 3))
	return 0
}

//
func (v *VM) pget(L *lua.LState) int {
	L.Push(lua.LNumber(v.host.Display().Pixel(L.CheckInt(1), L.CheckInt(2))))
	return 1
}

//
func (v *VM) cls(L *lua.LState) int {
	v.host.Display().Clear(byte(L.OptInt(1, 0)))
	return 0
}

// pal() resets, pal(c) maps c to itself, pal(c1, c2) draws c1 as c2
func (v *VM) pal(L *lua.LState) int {
	d := v.host.Display()
	if L.GetTop() == 0 {
		d.ResetPal()
		return 0
	}
	c1 := color(L, 1)
	d.Pal(c1, byte(L.OptInt(2, int(c1))))
	return 0
}

// palt() makes all colours opaque, palt(c) makes only colour 0 transparent
// when c is 0, palt(c, t) sets transparency of c.
func (v *VM) palt(L *lua.LState) int {
	d := v.host.Display()
	if L.GetTop() == 0 {
		d.ResetPalt()
		return 0
	}
	c := color(L, 1)
	d.Palt(c, L.OptBool(2, c == 0))
	return 0
}

//
func (v *VM) setpal(L *lua.LState) int {
	v.host.Display().SetPalette(color(L, 1))
	return 0
}

//
func (v *VM) camera(L *lua.LState) int {
	v.host.Display().Camera(L.OptInt(1, 0), L.OptInt(2, 0))
	return 0
}

//
func (v *VM) clip(L *lua.LState) int {
	d := v.host.Display()
	if L.GetTop() == 0 {
		d.ResetClip()
		return 0
	}
	d.Clip(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4))
	return 0
}

//
func (v *VM) rect(L *lua.LState) int {
	v.host.Display().Rect(
		L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), color(L, 5))
	return 0
}

//
func (v *VM) rectfill(L *lua.LState) int {
	v.host.Display().RectFill(
		L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), color(L, 5))
	return 0
}

//
func (v *VM) line(L *lua.LState) int {
	v.host.Display().Line(
		L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), color(L, 5))
	return 0
}

//
func (v *VM) circle(L *lua.LState) int {
	v.host.Display().Circle(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), color(L, 4))
	return 0
}

//
func (v *VM) spr(L *lua.LState) int {
	v.host.Display().Spr(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3))
	return 0
}

//
func (v *VM) sspr(L *lua.LState) int {
	v.host.Display().Sspr(L.CheckInt(1), L.CheckInt(2),
		L.CheckInt(3), L.CheckInt(4), L.CheckInt(5), L.CheckInt(6))
	return 0
}

// rnd() returns a number in [0, 1), rnd(n) one in [0, n), rnd(t) a random
// element of sequence t.
func (v *VM) random(L *lua.LState) int {

	if L.GetTop() == 0 {
		L.Push(lua.LNumber(v.rnd.Float64()))
		return 1
	}

	switch arg := L.Get(1).(type) {
	case lua.LNumber:
		L.Push(lua.LNumber(v.rnd.Float64() * float64(arg)))
	case *lua.LTable:
		if n := arg.Len(); n > 0 {
			L.Push(arg.RawGetInt(v.rnd.Intn(n) + 1))
		} else {
			L.Push(lua.LNil)
		}
	default:
		L.Push(lua.LNil)
	}
	return 1
}

// add appends a value to a sequence
func add(L *lua.LState) int {
	L.CheckTable(1).Append(L.CheckAny(2))
	return 0
}

// del removes the first occurrence of a value from a sequence
func del(L *lua.LState) int {
	t := L.CheckTable(1)
	val := L.CheckAny(2)
	for ix := 1; ix <= t.Len(); ix++ {
		if t.RawGetInt(ix) == val {
			t.Remove(ix)
			L.Push(val)
			return 1
		}
	}
	return 0
}

//
func math1(fn func(float64) float64) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LNumber(fn(float64(L.CheckNumber(1)))))
		return 1
	}
}
