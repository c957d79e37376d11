package main

import (
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/sirupsen/logrus"

	"github.com/gcslaoli/text-watermark-go/internal/app"
	"github.com/gcslaoli/text-watermark-go/internal/config"
	"github.com/gcslaoli/text-watermark-go/internal/gui"
)

func main() {
	log := logrus.StandardLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.ConfigureLogger(log); err != nil {
		log.Fatalf("configure logger: %v", err)
	}

	ctl := app.New(cfg, nil, log)

	fa := fyneapp.NewWithID("io.github.gcslaoli.text-watermark")
	w := gui.NewWindow(fa, ctl, cfg.Preview.Width, cfg.Preview.Height, log)

	log.WithField("font", ctl.Engine().FontSource()).Debug("font resolved")
	log.Info("App Started")
	w.ShowAndRun()
	log.Info("App Shutting Down")
}
