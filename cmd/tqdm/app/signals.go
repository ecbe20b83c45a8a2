package app

import (
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/mevatron/gotqdm/internal/config"
	"github.com/mevatron/gotqdm/pkg/logger"
)

// exitInterrupted is the conventional exit status after SIGINT
const exitInterrupted = 130

// signalState tracks the state of signal handling
type signalState struct {
	shutdownInitiated atomic.Bool
}

// exit is replaced in tests
var exit = os.Exit

// setupSignalHandling initializes signal handling for graceful shutdown
func (a *App) setupSignalHandling() {
	a.log.Debug("Initializing signal handlers")

	signal.Notify(a.signals,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)

	go a.handleSignals(a.signals, &signalState{})
}

func (a *App) stopSignalHandling() {
	if a.signals == nil {
		return
	}
	signal.Stop(a.signals)
}

// handleSignals processes incoming system signals until the app shuts down
func (a *App) handleSignals(sigChan <-chan os.Signal, state *signalState) {
	for {
		var sig os.Signal
		select {
		case <-a.ctx.Done():
			if !state.shutdownInitiated.Load() {
				return
			}
			// Keep listening so a second interrupt can still force the exit
			sig = <-sigChan
		case sig = <-sigChan:
		}

		a.log.WithFields(logger.Fields{
			"signal": sig.String(),
		}).Debug("Received system signal")

		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			if !state.shutdownInitiated.CompareAndSwap(false, true) {
				a.handleForcedShutdown()
				return
			}
			a.handleGracefulShutdown()

		case syscall.SIGHUP:
			a.handleHangup()
		}
	}
}

// handleGracefulShutdown cancels the running loop. The loop finishes its
// line and returns on its own.
func (a *App) handleGracefulShutdown() {
	a.log.Info("Interrupted, stopping after the current item (interrupt again to force)")
	a.cancel()
}

// handleForcedShutdown exits immediately
func (a *App) handleForcedShutdown() {
	a.log.Warn("Received second interrupt, forcing exit")
	_ = a.log.Sync()
	exit(exitInterrupted)
}

// handleHangup handles SIGHUP signal
func (a *App) handleHangup() {
	a.log.Info("Received SIGHUP signal")

	if err := a.reloadConfiguration(); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to reload configuration")
	}
}

// reloadConfiguration reloads the configuration and custom themes. Reporters
// created afterwards use the new settings.
func (a *App) reloadConfiguration() error {
	a.log.Debug("Reloading configuration")

	newConfig, err := config.LoadFs(a.fs, a.configPath)
	if err != nil {
		return fmt.Errorf("failed to reload configuration: %w", err)
	}
	themes, err := newConfig.LoadThemes(a.fs)
	if err != nil {
		return fmt.Errorf("failed to reload themes: %w", err)
	}

	a.mu.Lock()
	// Verbosity comes from the command line and stays as is
	newConfig.Verbose = a.config.Verbose
	a.config = &newConfig
	a.themes = themes
	a.mu.Unlock()

	a.log.WithFields(logger.Fields{
		"theme":  newConfig.Theme,
		"themes": len(themes),
	}).Info("Configuration reloaded successfully")
	return nil
}
