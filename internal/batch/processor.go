package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"a51-stream/internal/a51"
	"a51-stream/internal/bits"
)

// Suffix is appended to encrypted file names and stripped on the way back.
const Suffix = ".a51"

// Config holds all shared resources for a batch run.
type Config struct {
	Geometry  a51.Geometry
	Key       bits.Seq
	OutputDir string
	Workers   int
	Decrypt   bool      // strip Suffix instead of appending it
	Progress  io.Writer // nil disables the progress ticker
}

// Job is one file and the frame number it is keyed with.
type Job struct {
	Path  string
	Frame uint64
}

// Result holds the outcome of processing one job.
type Result struct {
	Path    string
	Frame   uint64
	Output  string
	Bytes   int
	Success bool
	Error   string
}

// Jobs numbers paths with consecutive frames starting at first.
func Jobs(paths []string, first uint64) []Job {
	jobs := make([]Job, len(paths))
	for i, p := range paths {
		jobs[i] = Job{Path: p, Frame: first + uint64(i)}
	}
	return jobs
}

// Run processes all jobs using a worker pool. Every job builds its own
// cipher; nothing is shared between workers except the read-only config.
func Run(cfg Config, jobs []Job) []Result {
	total := len(jobs)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	outputs := outputNames(jobs, cfg.Decrypt)
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f files/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				results[idx] = processJob(cfg, jobs[idx], outputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	wg.Wait()
	close(done)

	return results
}

func processJob(cfg Config, job Job, output string) Result {
	res := Result{Path: job.Path, Frame: job.Frame}

	if output == "" {
		res.Error = fmt.Sprintf("output name of %s collides with another job", job.Path)
		return res
	}

	if cfg.Geometry.FrameBits < 64 && job.Frame >= uint64(1)<<cfg.Geometry.FrameBits {
		res.Error = fmt.Sprintf("frame %d does not fit in %d bits", job.Frame, cfg.Geometry.FrameBits)
		return res
	}

	data, err := os.ReadFile(job.Path)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	c, err := a51.New(cfg.Geometry, cfg.Key, bits.FromUint(job.Frame, cfg.Geometry.FrameBits))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	out := make([]byte, len(data))
	a51.NewStream(c).XORKeyStream(out, data)

	res.Output = filepath.Join(cfg.OutputDir, output)
	if err := os.MkdirAll(filepath.Dir(res.Output), 0755); err != nil {
		res.Error = err.Error()
		return res
	}
	if err := os.WriteFile(res.Output, out, 0644); err != nil {
		res.Error = err.Error()
		return res
	}

	res.Bytes = len(out)
	res.Success = true
	return res
}

// outputNames picks one output file name per job. Jobs whose names collide
// are told apart by a "<frame>-" prefix; a name that still collides after
// that is left empty so its job fails instead of overwriting another.
func outputNames(jobs []Job, decrypt bool) []string {
	names := make([]string, len(jobs))
	count := make(map[string]int, len(jobs))
	for i, job := range jobs {
		names[i] = outputName(job.Path, decrypt)
		count[names[i]]++
	}
	for i, job := range jobs {
		if count[names[i]] > 1 {
			names[i] = fmt.Sprintf("%d-%s", job.Frame, names[i])
		}
	}
	seen := make(map[string]bool, len(jobs))
	for i, name := range names {
		if seen[name] {
			names[i] = ""
			continue
		}
		seen[name] = true
	}
	return names
}

func outputName(path string, decrypt bool) string {
	name := filepath.Base(path)
	if !decrypt {
		return name + Suffix
	}
	if strings.HasSuffix(name, Suffix) && len(name) > len(Suffix) {
		return strings.TrimSuffix(name, Suffix)
	}
	return name + ".plain"
}
