package cli

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/screenpilot-dev/screenpilot/pkg/adb"
	"github.com/screenpilot-dev/screenpilot/pkg/config"
	"github.com/screenpilot-dev/screenpilot/pkg/device"
	"github.com/screenpilot-dev/screenpilot/pkg/logger"
	"github.com/screenpilot-dev/screenpilot/pkg/ocr"
	"github.com/screenpilot-dev/screenpilot/pkg/resolver"
	"github.com/screenpilot-dev/screenpilot/pkg/screenshot"
	"github.com/screenpilot-dev/screenpilot/pkg/uitree"
	"github.com/screenpilot-dev/screenpilot/pkg/vision"
)

// session wires the full collaborator graph for one command invocation.
type session struct {
	cfg      *config.Config
	device   *device.Controller
	tree     *uitree.Analyzer
	screens  *screenshot.Cache
	vision   *vision.Client
	resolver *resolver.Resolver
}

// newSession loads config, applies flag overrides, and connects the device.
func newSession(c *cli.Context) (*session, error) {
	cfgDir := c.String("config")
	if cfgDir == "" {
		cfgDir = config.GetHome()
	}
	cfg, err := config.LoadFromDir(cfgDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// Flags override config
	if serial := c.String("device"); serial != "" {
		cfg.Device = serial
	}
	if path := c.String("adb-path"); path != "" {
		cfg.ADBPath = path
	}

	if err := logger.Init(config.GetLogPath()); err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	logger.SetVerbose(c.Bool("verbose"))

	adbClient, err := adb.New(cfg.ADBPath, cfg.Device)
	if err != nil {
		return nil, err
	}

	controller := device.New(adbClient)
	tree := uitree.NewAnalyzer(adbClient)
	screens := screenshot.NewCache(
		controller.CaptureScreenshot,
		time.Duration(cfg.CacheTTLSeconds)*time.Second,
	)

	ocrEngine := ocr.New(cfg.OCRLanguage)
	visionClient := vision.NewClient(cfg.OllamaURL, cfg.OllamaModel, screens)
	if w, h, err := controller.ScreenSize(); err == nil {
		visionClient.SetScreenSize(w, h)
	}

	knowledge := resolver.DefaultKnowledge()
	knowledge.Merge(cfg.Knowledge)

	return &session{
		cfg:     cfg,
		device:  controller,
		tree:    tree,
		screens: screens,
		vision:  visionClient,
		resolver: resolver.New(resolver.Options{
			Device:    controller,
			Tree:      tree,
			OCR:       ocrEngine,
			Vision:    visionClient,
			Screens:   screens,
			Knowledge: knowledge,
		}),
	}, nil
}

func (s *session) close() {
	s.screens.StopWatcher()
	logger.Close()
}
