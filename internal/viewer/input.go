package viewer

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a viewer command bound to a key.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionDenser
	ActionCoarser
	ActionTangents
	ActionFrame
	ActionWireframe
	ActionShowFrames
)

var keyActions = map[sdl.Keycode]Action{
	sdl.K_ESCAPE:   ActionQuit,
	sdl.K_EQUALS:   ActionDenser,
	sdl.K_KP_PLUS:  ActionDenser,
	sdl.K_MINUS:    ActionCoarser,
	sdl.K_KP_MINUS: ActionCoarser,
	sdl.K_t:        ActionTangents,
	sdl.K_f:        ActionFrame,
	sdl.K_w:        ActionWireframe,
	sdl.K_n:        ActionShowFrames,
}

// frameInput collects one frame of input.
type frameInput struct {
	quit         bool
	actions      []Action
	dragX, dragY float32
	zoom         float32
	resized      bool
}

// input tracks mouse state across frames.
type input struct {
	dragging bool
	frame    frameInput
}

// poll drains the SDL event queue.
func (in *input) poll() *frameInput {
	in.frame = frameInput{actions: in.frame.actions[:0]}

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			in.frame.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				in.frame.resized = true
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			if action, ok := keyActions[e.Keysym.Sym]; ok {
				if action == ActionQuit {
					in.frame.quit = true
				}
				in.frame.actions = append(in.frame.actions, action)
			}

		case *sdl.MouseButtonEvent:
			if e.Button == sdl.BUTTON_LEFT {
				in.dragging = e.State == sdl.PRESSED
			}

		case *sdl.MouseMotionEvent:
			if in.dragging {
				in.frame.dragX += float32(e.XRel)
				in.frame.dragY += float32(e.YRel)
			}

		case *sdl.MouseWheelEvent:
			in.frame.zoom += float32(e.Y)
		}
	}
	return &in.frame
}
