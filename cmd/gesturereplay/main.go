// Command gesturereplay plays a scripted input sequence through a gesture
// dispatcher on a virtual surface and prints every gesture it emits.
//
// Usage:
//
//	gesturereplay -script taps.yaml [-config gesture.toml] [-watch] [-debug]
//
// With -watch the script is replayed again whenever the script or config file
// changes.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/phanxgames/gesture"
)

func main() {
	scriptPath := flag.String("script", "", "path to a JSON or YAML replay script (required)")
	configPath := flag.String("config", "", "path to a YAML or TOML config file (defaults if empty)")
	watch := flag.Bool("watch", false, "replay again when the script or config changes")
	debug := flag.Bool("debug", false, "trace dispatcher mode changes to stderr")
	maxFrames := flag.Int("max-frames", 100000, "stop a replay after this many frames")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("gesture: ")

	if *scriptPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	job := replayJob{
		scriptPath: *scriptPath,
		configPath: *configPath,
		debug:      *debug,
		maxFrames:  *maxFrames,
	}

	if err := job.run(os.Stdout); err != nil {
		if !*watch {
			log.Fatal(err)
		}
		log.Print(err)
	}
	if !*watch {
		return
	}

	paths := []string{*scriptPath}
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	w, err := newWatcher(paths...)
	if err != nil {
		log.Fatalf("failed to watch files: %v", err)
	}
	w.OnChange(func(path string) {
		log.Printf("%s changed, replaying", path)
		if err := job.run(os.Stdout); err != nil {
			log.Print(err)
		}
	})
	w.Start()
	defer w.Stop()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
}

type replayJob struct {
	scriptPath string
	configPath string
	debug      bool
	maxFrames  int
}

// run loads the script and config fresh and replays them.
func (j replayJob) run(out io.Writer) error {
	cfg := gesture.DefaultConfig()
	if j.configPath != "" {
		var err error
		if cfg, err = gesture.LoadConfig(j.configPath); err != nil {
			return err
		}
	}
	if j.debug {
		cfg.Debug = true
	}
	script, err := gesture.LoadScript(j.scriptPath)
	if err != nil {
		return err
	}
	frames, done := replay(out, cfg, script, j.maxFrames)
	if !done {
		return fmt.Errorf("replay did not finish within %d frames", j.maxFrames)
	}
	fmt.Fprintf(out, "-- %d frames\n", frames)
	return nil
}

// replay runs script on a fresh virtual surface and writes one line per
// gesture to out. Frames keep running after the last step until coasting
// and pending timeouts have drained.
func replay(out io.Writer, cfg gesture.Config, script *gesture.Script, maxFrames int) (frames int, done bool) {
	start := time.Unix(0, 0).UTC()
	surface := gesture.NewVirtualSurface(start)
	d := gesture.New(surface, cfg)
	defer d.Dispose()
	d.SetRecorder(&printer{out: out, start: start})

	runner := gesture.NewScriptRunner(script, surface)
	frames = runner.Run(maxFrames)
	for frames < maxFrames {
		if f, t := surface.Pending(); f == 0 && t == 0 {
			break
		}
		surface.Frame()
		frames++
	}
	f, t := surface.Pending()
	return frames, runner.Done() && f == 0 && t == 0
}
