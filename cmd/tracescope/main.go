package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"tracescope/internal/app"
	"tracescope/internal/audio"
	"tracescope/internal/render"
)

func main() {
	var (
		deviceName = flag.String("audio-device", "", "Optional PortAudio device name (substring match)")
		width      = flag.Int("width", 800, "Viewport width in pixels (SDL) or cells (terminal)")
		height     = flag.Int("height", 300, "Viewport height in pixels (SDL) or cells (terminal)")
		targetFPS  = flag.Float64("fps", 30, "Target frames per second")
		sps        = flag.Int("sps", 0, "Samples per second of scroll time (default: fps)")
		hlines     = flag.Int("hlines", 5, "Horizontal grid line count")
		noAudio    = flag.Bool("no-audio", false, "Run with synthetic traces instead of audio input")
		useSDL     = flag.Bool("sdl", false, "Render to an SDL window instead of the terminal")
		webPort    = flag.Int("web", 0, "Serve the web control surface on this port (0 disables)")
		title      = flag.String("title", "tracescope", "Window and readout title")
		debug      = flag.Bool("debug", false, "Enable verbose logging")
		listDevs   = flag.Bool("list-audio-devices", false, "List available audio input devices and exit")
	)

	flag.Parse()

	if *width <= 0 || *height <= 0 {
		log.Fatalf("invalid dimensions: width=%d height=%d", *width, *height)
	}

	if *targetFPS <= 0 {
		log.Fatalf("fps must be positive (got %.2f)", *targetFPS)
	}

	if *useSDL && !render.SupportsSDL() {
		log.Fatalf("this build has no SDL backend; rebuild with -tags sdl")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stdout, "[tracescope] ", log.LstdFlags)
	if !*debug {
		logger.SetOutput(os.Stderr)
		logger.SetFlags(0)
	}

	needAudio := !*noAudio || *listDevs
	if needAudio {
		if err := audio.Initialize(); err != nil {
			logger.Fatalf("failed to initialize PortAudio: %v", err)
		}
		defer audio.Terminate()
	}

	if *listDevs {
		devices, err := audio.ListDevices()
		if err != nil {
			logger.Fatalf("list devices: %v", err)
		}
		fmt.Printf("\n=== Audio Input Devices ===\n\n")
		for _, dev := range devices {
			if dev.MaxInput == 0 {
				continue
			}
			markers := ""
			if dev.IsDefaultInput {
				markers += " (default)"
			}
			fmt.Printf("- %s [%s]%s\n    inputs:%d outputs:%d sample:%.0f Hz\n",
				dev.Name, dev.HostAPI, markers, dev.MaxInput, dev.MaxOutput, dev.DefaultSampleHz)
		}
		return
	}

	appConfig := app.Config{
		DeviceName:       *deviceName,
		Width:            *width,
		Height:           *height,
		TargetFPS:        *targetFPS,
		SamplesPerSecond: *sps,
		HorizontalLines:  *hlines,
		DisableAudio:     *noAudio,
		UseSDL:           *useSDL,
		WebPort:          *webPort,
		Title:            *title,
		Log:              logger,
	}

	a, err := app.New(appConfig)
	if err != nil {
		if render.IsSetup(err) {
			logger.Fatalf("display setup failed: %v", err)
		}
		logger.Fatalf("failed to create app: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "cleanup error: %v\n", err)
		}
	}()

	if err := a.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExiting...")
			return
		}
		logger.Fatalf("runtime error: %v", err)
	}
}
