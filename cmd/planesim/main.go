// planesim is an interactive sandbox for the plane detection core: a
// scripted depth scene driven through a real tick loop, with a terminal
// status view. No sensor hardware required.
//
// Keys: f detect floor, space place at center, c clear, p pause,
// j toggle jitter, n sensor dropout, q quit.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/mrdk/planekit/engine"
	"github.com/mrdk/planekit/source"
	"github.com/mrdk/planekit/vmath"
)

const frameInterval = 33 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "optional YAML config path")
	logPath := flag.String("log", "planesim.log", "log file path")
	flag.Parse()

	if err := run(*configPath, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, logPath string) error {
	cfg := engine.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = engine.LoadConfig(configPath); err != nil {
			return err
		}
	}

	log, err := fileLogger(logPath)
	if err != nil {
		return err
	}
	defer log.Sync()

	src := demoScene()
	session, err := engine.NewSession(cfg, src, log)
	if err != nil {
		return err
	}
	defer session.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("planesim: creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("planesim: initializing screen: %w", err)
	}
	defer screen.Fini()

	cue := newCommitCue(log)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := engine.NewTicker(engine.NewMonotonicTimeProvider())
	frames := time.NewTicker(frameInterval)
	defer frames.Stop()

	pose := vmath.Pose{Position: vmath.Vec3{Y: 1.6}, Rotation: vmath.QIdentity}
	jitter := false
	lastCount := 0

	for {
		select {
		case ev := <-events:
			key, ok := ev.(*tcell.EventKey)
			if !ok {
				continue
			}
			switch {
			case key.Key() == tcell.KeyEscape || key.Rune() == 'q':
				return nil
			case key.Rune() == 'f':
				session.DetectFloorPlane(false, pose)
			case key.Rune() == ' ':
				session.DetectPlaneAtHit(pose, vmath.Vec2{X: 0.5, Y: 0.5})
			case key.Rune() == 'c':
				session.DestroyAllPlanes()
				lastCount = 0
			case key.Rune() == 'p':
				session.SetPaused(!session.IsPaused())
			case key.Rune() == 'j':
				jitter = !jitter
				src.SetJitter(jitterSigma(jitter))
			case key.Rune() == 'n':
				src.FailNext(30)
			}
		case <-frames.C:
			session.Tick(pose, ticker.Delta())
			if n := session.HitCount(); n > lastCount {
				cue.Play()
				lastCount = n
			} else if n < lastCount {
				lastCount = n
			}
			draw(screen, session, jitter)
		}
	}
}

func fileLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

func jitterSigma(on bool) float64 {
	if on {
		return 0.01
	}
	return 0
}

// demoScene is a small room: a floor, a facing wall under the screen
// center, and a table surface off to the right
func demoScene() *source.ScriptedSource {
	src := source.NewScriptedSource(uint64(time.Now().UnixNano()), 0)
	src.AddSurface(source.Surface{
		Kind:       source.KindFloor,
		Center:     vmath.Vec3{Y: -1.6, Z: 2.5},
		Normal:     vmath.Vec3{Y: 1},
		HalfWidth:  4,
		HalfHeight: 4,
		ScreenMin:  vmath.Vec2{X: 0, Y: 0.75},
		ScreenMax:  vmath.Vec2{X: 1, Y: 1},
		Subdiv:     8,
	})
	src.AddSurface(source.Surface{
		Kind:       source.KindHitVertical,
		Center:     vmath.Vec3{Z: 3.5},
		Normal:     vmath.Vec3{Z: -1},
		HalfWidth:  1.5,
		HalfHeight: 1,
		ScreenMin:  vmath.Vec2{X: 0.35, Y: 0.25},
		ScreenMax:  vmath.Vec2{X: 0.65, Y: 0.65},
		Subdiv:     4,
	})
	src.AddSurface(source.Surface{
		Kind:       source.KindHitHorizontal,
		Center:     vmath.Vec3{X: 1.2, Y: -0.8, Z: 2},
		Normal:     vmath.Vec3{Y: 1},
		HalfWidth:  0.6,
		HalfHeight: 0.4,
		ScreenMin:  vmath.Vec2{X: 0.7, Y: 0.45},
		ScreenMax:  vmath.Vec2{X: 0.95, Y: 0.7},
		Subdiv:     2,
	})
	return src
}
