package main

import (
  "context"
  "net/http"
  "os"
  "os/signal"
  "syscall"
  "time"

  "github.com/prometheus/client_golang/prometheus"
  "github.com/prometheus/client_golang/prometheus/promhttp"
  "github.com/rs/zerolog"
  "github.com/rs/zerolog/log"
  "github.com/spf13/cobra"
  "golang.org/x/sync/errgroup"

  "github.com/robertof/go-pybricks-observer/ble"
  "github.com/robertof/go-pybricks-observer/metrics"
  "github.com/robertof/go-pybricks-observer/observer"
  "github.com/robertof/go-pybricks-observer/render"
)

func main() {
  zerolog.DurationFieldUnit = time.Second
  zerolog.TimeFieldFormat = time.RFC3339Nano

  log.Logger = log.Output(zerolog.ConsoleWriter{
    Out: os.Stderr,
    TimeFormat: "15:04:05.000",
  })

  var cfg config

  rootCmd := &cobra.Command{
    Use:   "pybricks-observer",
    Short: "Passive observer for Pybricks BLE broadcast data",
    Long: `pybricks-observer listens for BLE advertisements broadcast by LEGO hubs
running Pybricks firmware and prints each unique observed value as one
line, tagging every hub with a stable letter and color for the session.

Requires access to the HCI device (root or CAP_NET_ADMIN).`,
    SilenceUsage: true,
    RunE: func(cmd *cobra.Command, args []string) error {
      return run(cfg)
    },
  }

  bindFlags(rootCmd, &cfg)

  if err := rootCmd.Execute(); err != nil {
    os.Exit(1)
  }
}

func run(cfg config) error {
  if cfg.Trace || os.Getenv("TRACE") != "" {
    zerolog.SetGlobalLevel(zerolog.TraceLevel)
  } else if cfg.Debug || os.Getenv("DEBUG") != "" {
    zerolog.SetGlobalLevel(zerolog.DebugLevel)
  } else {
    zerolog.SetGlobalLevel(zerolog.InfoLevel)
  }

  theme := render.Theme(cfg.Theme)

  if theme != render.ThemeDark && theme != render.ThemeLight {
    log.Fatal().Str("Theme", cfg.Theme).Msg("Theme must be 'dark' or 'light'")
  }

  handle, err := ble.Init(cfg.BluetoothDeviceId, cfg.scanParams())

  if err != nil {
    log.Fatal().Err(err).Msg("Failed to initialize Bluetooth device")
  }

  defer handle.Close()

  if cfg.DiscoverDevices {
    doDeviceDiscovery(handle)
    return nil
  }

  log.Info().
    Bool("Dedup", cfg.Dedup).
    Str("Theme", cfg.Theme).
    Dur("ScanInterval", cfg.ScanInterval).
    Dur("ScanWindow", cfg.ScanWindow).
    Dur("Watchdog", cfg.WatchdogTimeout).
    Uint64("PreventiveRestartEvents", cfg.PreventiveRestartEvents).
    Msg("Scanning for Pybricks BLE advertisements (Ctrl-C to stop)")

  obs := observer.New(handle, observer.Options{
    QueueCapacity:    cfg.QueueCapacity,
    Dedup:            cfg.Dedup,
    Theme:            theme,
    SmoothingAlpha:   cfg.SmoothingAlpha,
    WatchdogTimeout:  cfg.WatchdogTimeout,
    PreventiveEvents: cfg.PreventiveRestartEvents,
    HeartbeatEvery:   cfg.HeartbeatInterval,
    Out:              os.Stdout,
  })

  handle.SetHandler(obs)

  ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
  defer stop()

  g, ctx := errgroup.WithContext(ctx)

  g.Go(func() error {
    return obs.Run(ctx)
  })

  if cfg.MetricsBind != "" {
    registry := prometheus.NewRegistry()
    metrics.Register(registry, obs)

    mux := http.NewServeMux()
    mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

    server := &http.Server{
      Addr: cfg.MetricsBind,
      Handler: mux,
    }

    log.Info().
      Str("ListenAddress", cfg.MetricsBind).
      Msg("Starting Prometheus server")

    g.Go(func() error {
      err := server.ListenAndServe()

      if err == http.ErrServerClosed {
        return nil
      }

      return err
    })

    g.Go(func() error {
      <-ctx.Done()

      shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
      defer cancel()

      return server.Shutdown(shutdownCtx)
    })
  }

  if err := g.Wait(); err != nil {
    log.Error().Err(err).Msg("Observer exited with error")
    return err
  }

  return nil
}
