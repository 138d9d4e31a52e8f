// Package record renders the choreography headless to numbered WebP frames.
package record

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/charmbracelet/log"
	"github.com/philipparndt/showcase/internal/app"
	"github.com/philipparndt/showcase/pkg/render"
	"github.com/philipparndt/showcase/pkg/scene"
)

// Config holds the settings for one recording
type Config struct {
	OutputDir   string
	Width       int
	Height      int
	Supersample int
	Workers     int
}

type job struct {
	index int
	scene render.Scene
}

// Recorder is a Surface that renders and encodes frames on a worker pool
type Recorder struct {
	cfg    Config
	logger *log.Logger

	jobs chan job
	wg   sync.WaitGroup
	next int

	mu  sync.Mutex
	err error
}

// NewRecorder creates the output directory and starts the workers.
// A nil logger discards output.
func NewRecorder(cfg Config, logger *log.Logger) (*Recorder, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	r := &Recorder{
		cfg:    cfg,
		logger: logger,
		jobs:   make(chan job, cfg.Workers*2),
	}

	for w := 0; w < cfg.Workers; w++ {
		r.wg.Add(1)
		go func() {
			defer r.wg.Done()
			renderer := render.NewRenderer(cfg.Width, cfg.Height)
			renderer.Supersample = cfg.Supersample
			for j := range r.jobs {
				if err := r.writeFrame(renderer, j); err != nil {
					r.fail(err)
				}
			}
		}()
	}

	return r, nil
}

// Draw queues a frame. The object is copied so the driver may keep mutating its own.
func (r *Recorder) Draw(s render.Scene) {
	if s.Object != nil {
		obj := *s.Object
		s.Object = &obj
	}
	r.jobs <- job{index: r.next, scene: s}
	r.next++
}

// Frames returns the number of frames queued so far
func (r *Recorder) Frames() int { return r.next }

// Close waits for all queued frames and returns the first error
func (r *Recorder) Close() error {
	close(r.jobs)
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

// FramePath returns the file name of frame index
func (r *Recorder) FramePath(index int) string {
	return filepath.Join(r.cfg.OutputDir, fmt.Sprintf("frame_%05d.webp", index))
}

func (r *Recorder) writeFrame(renderer *render.Renderer, j job) error {
	img := renderer.Render(j.scene)

	path := r.FramePath(j.index)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	return encode(f, img, path)
}

// encode writes img as WebP and closes w. A failed close is reported since
// it can hide a failed flush of the frame.
func encode(w io.WriteCloser, img image.Image, path string) error {
	if err := nativewebp.Encode(w, img, nil); err != nil {
		w.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Run shows obj on d and records duration worth of frames at the driver's frame rate
func Run(d *app.Driver, obj *scene.Object, duration time.Duration, cfg Config, logger *log.Logger) (int, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rec, err := NewRecorder(cfg, logger)
	if err != nil {
		return 0, err
	}
	d.SetSurface(rec)

	step := d.Config().FrameInterval()
	start := time.Now()

	d.Show(obj, 0)
	for now := time.Duration(0); now <= duration; now += step {
		d.Tick(now)
		if f := d.LastFrame(); f.Transitioned {
			logger.Info("mode", "mode", f.Mode, "at", now, "frame", rec.Frames()-1)
		}
	}

	if err := rec.Close(); err != nil {
		return rec.Frames(), err
	}

	logger.Info("recording complete",
		"frames", rec.Frames(),
		"dir", cfg.OutputDir,
		"took", time.Since(start).Round(time.Millisecond),
	)
	return rec.Frames(), nil
}
