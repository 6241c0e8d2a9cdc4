package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"golang.org/x/term"

	"tracescope/internal/audio"
	"tracescope/internal/render"
	"tracescope/internal/scope"
	"tracescope/internal/web"
)

// Config configures the application runtime.
type Config struct {
	DeviceName       string
	Width            int
	Height           int
	TargetFPS        float64
	SamplesPerSecond int
	HorizontalLines  int
	DisableAudio     bool
	UseSDL           bool
	WebPort          int
	Title            string
	Log              *log.Logger
}

type inputEvent int

const (
	inputEventQuit inputEvent = iota
	inputEventSmallBack
	inputEventSmallForward
	inputEventLargeBack
	inputEventLargeForward
	inputEventHome
	inputEventEnd
)

// App is the scope's host: it owns the sample buffer, appends one sample per
// frame, forwards input and drives render passes. All mutation happens
// between passes on the single run loop goroutine; external sources (web,
// pointer events) queue closures that the loop applies at the start of the
// next step.
type App struct {
	cfg     Config
	scope   *scope.Scope
	surface render.Surface
	termSrf *render.Terminal

	capture *audio.Capture
	bands   *audio.BandExtractor
	gen     *generator

	inputEvents chan inputEvent
	pending     chan func()

	last    time.Time
	started time.Time
	fps     float64
	log     *log.Logger

	statusMu sync.RWMutex
	status   web.Status
}

// New constructs the application using the provided configuration.
func New(cfg Config) (*App, error) {
	if cfg.TargetFPS <= 0 {
		cfg.TargetFPS = 30
	}
	if cfg.SamplesPerSecond <= 0 {
		cfg.SamplesPerSecond = int(cfg.TargetFPS)
	}
	if cfg.HorizontalLines <= 0 {
		cfg.HorizontalLines = 5
	}
	if cfg.Title == "" {
		cfg.Title = "tracescope"
	}
	if cfg.Log == nil {
		cfg.Log = log.New(os.Stderr, "[tracescope] ", log.LstdFlags)
	}

	a := &App{
		cfg:     cfg,
		log:     cfg.Log,
		pending: make(chan func(), 64),
	}

	var channels []scope.Channel
	if cfg.DisableAudio {
		a.gen = newGenerator()
		channels = a.gen.Channels()
		a.log.Println("audio disabled, using synthetic generator")
	} else {
		capture, err := audio.NewCapture(audio.Config{
			DeviceName: cfg.DeviceName,
			Channels:   2,
		})
		if err != nil {
			return nil, fmt.Errorf("audio capture: %w", err)
		}
		a.capture = capture
		a.bands = audio.NewBandExtractor(capture.SampleRate())
		channels = bandChannels()
		if info := capture.Device(); info != nil {
			a.log.Printf("audio capture started on %q @ %.0f Hz", info.Name, capture.SampleRate())
		}
	}

	s, err := scope.New(scope.Config{
		Channels:         channels,
		SamplesPerSecond: cfg.SamplesPerSecond,
		HorizontalLines:  cfg.HorizontalLines,
		Title:            cfg.Title,
		Log:              cfg.Log,
	}, scope.NewBuffer(cfg.SamplesPerSecond*60))
	if err != nil {
		a.closeCapture()
		return nil, err
	}
	a.scope = s

	if err := a.initSurface(); err != nil {
		a.closeCapture()
		return nil, err
	}

	a.started = time.Now()
	a.last = a.started
	return a, nil
}

func bandChannels() []scope.Channel {
	return []scope.Channel{
		{MinDisplay: 0, MaxDisplay: 1, Color: render.TraceColor(0), LabelFormat: "low=%.2f"},
		{MinDisplay: 0, MaxDisplay: 1, Color: render.TraceColor(1), LabelFormat: "mid=%.2f"},
		{MinDisplay: 0, MaxDisplay: 1, Color: render.TraceColor(2), LabelFormat: "high=%.2f"},
	}
}

func (a *App) initSurface() error {
	if a.cfg.UseSDL {
		srf, err := render.NewSDL(a.cfg.Width, a.cfg.Height, a.cfg.Title)
		if err != nil {
			return err
		}
		srf.SetPointerHandler(func(x, y int) {
			a.enqueue(func() { a.scope.PointerMoved(x, y) })
		})
		srf.SetClickHandler(func(x, y int) {
			a.enqueue(func() { a.scope.PointerMoved(x, y) })
		})
		a.surface = srf
		return nil
	}

	width, height := a.cfg.Width, a.cfg.Height
	if fd := int(os.Stdout.Fd()); fd >= 0 {
		if w, h, err := term.GetSize(fd); err == nil && w > 0 && h > 0 {
			width, height = w, h-1
		}
	}
	srf, err := render.NewTerminal(width, height, os.Stdout)
	if err != nil {
		return err
	}
	a.termSrf = srf
	a.surface = srf
	return nil
}

// Run starts the render loop until context cancellation, window close or a
// quit key.
func (a *App) Run(ctx context.Context) error {
	frameDuration := time.Duration(float64(time.Second) / a.cfg.TargetFPS)
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	if a.termSrf != nil {
		enterAltScreen()
		hideCursor()
		defer func() {
			showCursor()
			exitAltScreen()
		}()
	}

	if a.cfg.WebPort > 0 {
		srv := web.NewServer(a, a.log)
		go func() {
			if err := srv.Start(a.cfg.WebPort); err != nil {
				a.log.Printf("web server stopped: %v", err)
			}
		}()
	}

	inputCtx, cancelInput := context.WithCancel(ctx)
	defer cancelInput()
	a.startInputListener(inputCtx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-a.inputEvents:
			if !ok {
				a.inputEvents = nil
				continue
			}
			if quit := a.handleInput(evt); quit {
				return nil
			}
		case <-ticker.C:
			if err := a.step(); err != nil {
				if errors.Is(err, render.ErrSurfaceClosed) {
					return nil
				}
				return err
			}
		}
	}
}

// Close releases held resources.
func (a *App) Close() error {
	a.closeCapture()
	if a.surface != nil {
		return a.surface.Close()
	}
	return nil
}

func (a *App) closeCapture() {
	if a.capture != nil {
		if err := a.capture.Close(); err != nil {
			a.log.Printf("capture close: %v", err)
		}
		a.capture = nil
	}
}

func (a *App) step() error {
	a.drainPending()
	a.ensureDimensions()

	now := time.Now()
	delta := now.Sub(a.last).Seconds()
	if delta <= 0 {
		delta = 1.0 / a.cfg.TargetFPS
	}
	a.last = now
	a.fps = 1.0 / delta

	a.appendSample(delta)

	elapsed := now.Sub(a.started)
	a.scope.SetTimeString(fmt.Sprintf("%02d:%02d", int(elapsed.Minutes()), int(elapsed.Seconds())%60))

	if err := a.scope.Render(a.surface); err != nil {
		return err
	}

	a.publishStatus()
	return nil
}

func (a *App) appendSample(delta float64) {
	buf := a.scope.Buffer()
	switch {
	case a.capture != nil:
		appendBands(buf, a.bands.Extract(a.capture.Samples()))
	case a.gen != nil:
		buf.Append(a.gen.Next(delta))
	}
}

// appendBands records one frame of band energies. A nil extraction means the
// capture produced no input yet; an absent slot keeps the time axis intact.
func appendBands(buf *scope.Buffer, vals []float64) {
	if vals == nil {
		buf.AppendAbsent()
		return
	}
	buf.Append(scope.Sample(vals))
}

func (a *App) ensureDimensions() {
	if a.termSrf == nil {
		return
	}
	fd := int(os.Stdout.Fd())
	if fd < 0 {
		return
	}
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return
	}
	a.termSrf.Resize(w, h-1)
}

func (a *App) handleInput(evt inputEvent) (quit bool) {
	vp := a.scope.Viewport()
	small, large := vp.Steps()
	switch evt {
	case inputEventQuit:
		return true
	case inputEventSmallBack:
		a.scope.ScrollBy(-small)
	case inputEventSmallForward:
		a.scope.ScrollBy(small)
	case inputEventLargeBack:
		a.scope.ScrollBy(-large)
	case inputEventLargeForward:
		a.scope.ScrollBy(large)
	case inputEventHome:
		a.scope.ScrollChanged(0, false)
	case inputEventEnd:
		a.scope.ScrollChanged(vp.EffectiveMax(), false)
	}
	return false
}

func (a *App) enqueue(fn func()) {
	select {
	case a.pending <- fn:
	default:
	}
}

func (a *App) drainPending() {
	for {
		select {
		case fn := <-a.pending:
			fn()
		default:
			return
		}
	}
}

func (a *App) startInputListener(ctx context.Context) {
	if err := keyboard.Open(); err != nil {
		a.log.Printf("keyboard input disabled: %v", err)
		a.inputEvents = nil
		return
	}

	events := make(chan inputEvent, 16)
	a.inputEvents = events

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer close(events)
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			var evt inputEvent
			switch {
			case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q' || char == 'Q':
				evt = inputEventQuit
			case key == keyboard.KeyArrowLeft:
				evt = inputEventSmallBack
			case key == keyboard.KeyArrowRight:
				evt = inputEventSmallForward
			case key == keyboard.KeyPgup:
				evt = inputEventLargeBack
			case key == keyboard.KeyPgdn:
				evt = inputEventLargeForward
			case key == keyboard.KeyHome:
				evt = inputEventHome
			case key == keyboard.KeyEnd:
				evt = inputEventEnd
			default:
				continue
			}
			if evt == inputEventQuit {
				events <- evt
				return
			}
			select {
			case events <- evt:
			default:
			}
		}
	}()
}

// publishStatus refreshes the snapshot served to the web control surface.
func (a *App) publishStatus() {
	labels := a.scope.Readout(func(s string) int { return len(s) })
	texts := make([]string, len(labels))
	for i, l := range labels {
		texts[i] = l.Text
	}
	vp := a.scope.Viewport()

	a.statusMu.Lock()
	a.status = web.Status{
		CursorIndex:   a.scope.CursorIndex(),
		TimePosition:  a.scope.TimePosition(),
		ScrollValue:   vp.Value(),
		ScrollMaximum: vp.Maximum(),
		BufferLen:     a.scope.Buffer().Len(),
		FPS:           a.fps,
		Tooltip:       a.scope.TooltipText(),
		Labels:        texts,
	}
	a.statusMu.Unlock()
}

// Status implements web.Controller.
func (a *App) Status() web.Status {
	a.statusMu.RLock()
	defer a.statusMu.RUnlock()
	return a.status
}

// SetScrollSeconds implements web.Controller; applied between render passes.
func (a *App) SetScrollSeconds(seconds float64) {
	a.enqueue(func() { a.scope.SetTimePosition(seconds) })
}

// SetCursorIndex implements web.Controller; applied between render passes.
func (a *App) SetCursorIndex(index int) {
	a.enqueue(func() { a.scope.SetCursorIndex(index) })
}

func enterAltScreen() { fmt.Print("\x1b[?1049h\x1b[2J\x1b[H") }
func exitAltScreen()  { fmt.Print("\x1b[?1049l\x1b[0m") }
func hideCursor()     { fmt.Print("\x1b[?25l") }
func showCursor()     { fmt.Print("\x1b[?25h") }
