// Command launchd runs the launch-and-catch rig: it brings up the three
// axes, then loops launch cycles until the operator enters the shutdown
// angle or the process is interrupted.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gantrylab/catchpoint/internal/cancel"
	"github.com/gantrylab/catchpoint/internal/config"
	"github.com/gantrylab/catchpoint/internal/dio"
	"github.com/gantrylab/catchpoint/internal/drivelink"
	"github.com/gantrylab/catchpoint/internal/motion"
	"github.com/gantrylab/catchpoint/internal/operator"
	"github.com/gantrylab/catchpoint/internal/sequencer"
	"github.com/gantrylab/catchpoint/internal/timeutil"
	"github.com/gantrylab/catchpoint/internal/version"
)

var (
	devMode     = flag.Bool("dev", false, "Run against a simulated drive bridge")
	portFlag    = flag.String("port", "", "Serial port for the drive bridge (overrides config)")
	configPath  = flag.String("config", "", "Path to rig config JSON")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("launchd %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	cfg := config.Empty()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	var (
		ctrl         motion.Controller
		gate1, gate2 dio.Input
	)
	if *devMode {
		// Simulated rig: commands are recorded in memory and the gates
		// trigger a short while after each wait begins.
		ctrl = motion.NewRecorder()
		gate1 = dio.TriggerAfter(120)
		gate2 = dio.TriggerAfter(135)
		log.Printf("dev mode: simulated drive bridge")
	} else {
		path := cfg.GetSerialPort()
		if *portFlag != "" {
			path = *portFlag
		}
		opts := drivelink.DefaultPortOptions()
		opts.BaudRate = cfg.GetBaudRate()
		link, err := drivelink.Open(path, opts)
		if err != nil {
			log.Fatalf("failed to open drive bridge at %s: %v", path, err)
		}
		ctrl = link
		gate1 = link.Input(1)
		gate2 = link.Input(2)
		log.Printf("drive bridge up on %s", path)
	}

	set := motion.NewSet(ctrl)
	if err := set.InitAll(); err != nil {
		ctrl.Close()
		log.Fatalf("axis bring-up failed: %v", err)
	}

	// The signal path sets the token and fires the emergency disable; the
	// sequencer observes the token at its next poll or transition.
	tok := cancel.New(set.DisableAll)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sig
		log.Printf("received %v, requesting shutdown", s)
		tok.RequestShutdown()
	}()

	clock := timeutil.RealClock{}
	seq := sequencer.New(sequencer.Params{
		Controller: ctrl,
		Actuators:  set,
		Monitor:    dio.NewMonitor(clock, cfg.GetPollInterval()),
		Gate1:      gate1,
		Gate2:      gate2,
		Angles:     operator.NewConsole(os.Stdin, os.Stdout),
		Cancel:     tok,
		Clock:      clock,
		Config:     cfg,
	})
	if err := seq.Run(); err != nil {
		log.Fatalf("sequencer: %v", err)
	}
}
