// Package batch runs integration jobs described in TOML or YAML files.
//
// Jobs run concurrently on a bounded worker pool. A failing job records its
// error in its own Outcome and never cancels its siblings; outcomes keep the
// order of the input file.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/GriffinCanCode/quadrature/internal/integration"
	"github.com/GriffinCanCode/quadrature/internal/shared/id"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/sync/errgroup"
)

// ErrUnsupportedFormat indicates a job file extension other than toml/yaml.
var ErrUnsupportedFormat = errors.New("batch: unsupported file format")

// Job is one named integration request.
type Job struct {
	Name      string   `json:"name" yaml:"name" toml:"name"`
	Integrand string   `json:"integrand" yaml:"integrand" toml:"integrand"`
	Low       float64  `json:"low" yaml:"low" toml:"low"`
	High      float64  `json:"high" yaml:"high" toml:"high"`
	Tolerance *float64 `json:"tol,omitempty" yaml:"tol,omitempty" toml:"tol,omitempty"`
	MaxDepth  *int     `json:"max_depth,omitempty" yaml:"max_depth,omitempty" toml:"max_depth,omitempty"`
	Compare   bool     `json:"compare,omitempty" yaml:"compare,omitempty" toml:"compare,omitempty"`
}

// Request converts the job into a service request.
func (j Job) Request() integration.Request {
	return integration.Request{
		Integrand: j.Integrand,
		Low:       j.Low,
		High:      j.High,
		Tolerance: j.Tolerance,
		MaxDepth:  j.MaxDepth,
		Compare:   j.Compare,
	}
}

// File is the on-disk job list.
type File struct {
	Jobs []Job `json:"jobs" yaml:"jobs" toml:"jobs"`
}

// Outcome is the result of one job.
type Outcome struct {
	Job      string                `json:"job" yaml:"job"`
	Response *integration.Response `json:"response,omitempty" yaml:"response,omitempty"`
	Error    string                `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the job returned an error.
func (o Outcome) Failed() bool {
	return o.Error != ""
}

// Load reads a job file, choosing the decoder from the extension.
func Load(path string) ([]Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", path, err)
	}
	return Parse(data, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Parse decodes job definitions in the given format ("toml", "yaml", "yml").
func Parse(data []byte, format string) ([]Job, error) {
	var file File
	switch format {
	case "toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("batch: parse toml: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("batch: parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	for i := range file.Jobs {
		if file.Jobs[i].Name == "" {
			file.Jobs[i].Name = id.NewJobID().String()
		}
	}
	return file.Jobs, nil
}

// Runner executes jobs through an integration service.
type Runner struct {
	svc     *integration.Service
	workers int
}

// NewRunner creates a runner with at most workers concurrent jobs.
func NewRunner(svc *integration.Service, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{svc: svc, workers: workers}
}

// Run executes all jobs. The returned error is non-nil only when ctx ends
// before every job finished.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			out := Outcome{Job: job.Name}
			resp, err := r.svc.Integrate(gctx, job.Request())
			if err != nil {
				out.Error = err.Error()
			} else {
				out.Response = resp
			}
			outcomes[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, fmt.Errorf("batch: %w", err)
	}
	return outcomes, nil
}
