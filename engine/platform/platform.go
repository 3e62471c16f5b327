package platform

import (
	"runtime"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/rtscam/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Platform owns the window and forwards its input to the engine.
type Platform struct {
	Window *glfw.Window

	input     *core.InputState
	startTime float64
	onResize  func(width, height uint32)
}

func New(input *core.InputState) *Platform {
	return &Platform{
		Window: nil,
		input:  input,
	}
}

func (p *Platform) Startup(applicationName string, x uint32, y uint32, width uint32, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogFatal("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // The camera only needs input, nothing is drawn.

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogFatal("failed to create window: %s", err)
		return err
	}
	p.Window = window

	p.Window.SetKeyCallback(p.keyCallback)
	p.Window.SetCursorPosCallback(p.cursorPosCallback)
	p.Window.SetCursorEnterCallback(p.cursorEnterCallback)
	p.Window.SetScrollCallback(p.scrollCallback)
	p.Window.SetSizeCallback(p.sizeCallback)
	p.Window.SetPos(int(x), int(y))
	p.Window.Show()

	// The enter callback only fires on transitions.
	p.input.ProcessMouseEnter(p.Window.GetAttrib(glfw.Hovered) == glfw.True)
	cx, cy := p.Window.GetCursorPos()
	p.cursorPosCallback(p.Window, cx, cy)

	p.startTime = glfw.GetTime()

	return nil
}

func (p *Platform) Shutdown() error {
	if p.Window != nil {
		p.Window.Destroy()
		p.Window = nil
	}
	glfw.Terminate()
	return nil
}

// PumpMessages processes pending window events. It returns false once the
// window has been asked to close.
func (p *Platform) PumpMessages() bool {
	glfw.PollEvents()
	return !p.Window.ShouldClose()
}

// RequestClose asks the window to close; the next PumpMessages returns false.
func (p *Platform) RequestClose() {
	if p.Window != nil {
		p.Window.SetShouldClose(true)
	}
}

// OnResize registers the function called when the window size changes.
func (p *Platform) OnResize(fn func(width, height uint32)) {
	p.onResize = fn
}

// WindowSize returns the window size in the units of the cursor position.
func (p *Platform) WindowSize() (float32, float32) {
	w, h := p.Window.GetSize()
	return float32(w), float32(h)
}

// GetAbsoluteTime returns the seconds elapsed since Startup.
func (p *Platform) GetAbsoluteTime() float64 {
	return glfw.GetTime() - p.startTime
}

func (p *Platform) Sleep(ms float64) {
	time.Sleep(time.Duration(ms * float64(time.Millisecond)))
}

func (p *Platform) keyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	code, ok := TranslateKey(key)
	if !ok {
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		p.input.ProcessKey(code, true)
	case glfw.Release:
		p.input.ProcessKey(code, false)
	}
}

// glfw reports the cursor from the top-left corner, the camera expects the
// bottom-left one.
func (p *Platform) cursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	_, height := w.GetSize()
	p.input.ProcessMouseMove(float32(xpos), flipY(float32(ypos), float32(height)))
}

func (p *Platform) cursorEnterCallback(w *glfw.Window, entered bool) {
	p.input.ProcessMouseEnter(entered)
}

func (p *Platform) scrollCallback(w *glfw.Window, xoff, yoff float64) {
	if yoff != 0 {
		p.input.ProcessMouseWheel(float32(yoff))
	}
}

func (p *Platform) sizeCallback(w *glfw.Window, width, height int) {
	if p.onResize != nil {
		p.onResize(uint32(width), uint32(height))
	}
}

func flipY(y, height float32) float32 {
	return height - y
}
