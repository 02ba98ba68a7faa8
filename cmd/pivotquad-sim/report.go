package main

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/plus3/pivotquad/ecs"
	"github.com/plus3/pivotquad/internal/bounce"
	"github.com/plus3/pivotquad/internal/config"
)

type Report struct {
	Config config.Config

	TotalTime time.Duration
	FrameTime Stats
	Counters  bounce.Counters
	Final     bounce.Pose
	Systems   []ecs.SystemStats
}

// Stats keeps running frame time figures without storing every sample.
type Stats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int

	total time.Duration
}

func (s *Stats) Add(sample time.Duration) {
	if s.Count == 0 {
		s.Min, s.Max = sample, sample
	}
	s.Min = min(s.Min, sample)
	s.Max = max(s.Max, sample)
	s.total += sample
	s.Count++
}

func (s *Stats) Finalize() {
	if s.Count == 0 {
		return
	}
	s.Avg = s.total / time.Duration(s.Count)
}

const reportTemplate = `
# pivotquad simulation

## Configuration
- **Mode:** {{mode .Config.Mode}}
- **Size:** {{.Config.Size}} in a ±{{.Config.HalfExtent}} viewport
- **Angle Step:** {{.Config.AngleStep}} rad/frame
- **Scale:** {{.Config.MinScale}}..{{.Config.MaxScale}} step {{.Config.ScaleStep}}
- **Nudge:** {{.Config.Nudge}}

## Results
- **Frames:** {{.Counters.Frames}} in {{.TotalTime}}
- **Pivot Switches:** {{.Counters.PivotSwitches}}
- **Reversals:** {{.Counters.Reversals}}
- **Nudges:** {{.Counters.Nudges}}
- **Max Corner Excess:** {{printf "%.4f" .Counters.MaxExcess}}
- **Final Pose:** pivot {{.Final.Corner}}, angle {{printf "%.3f" .Final.Angle}}, scale {{printf "%.3f" .Final.Scale}}
- **Frame Time:** avg {{.FrameTime.Avg}}, min {{.FrameTime.Min}}, max {{.FrameTime.Max}}

## Systems
{{range .Systems}}- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}`

var reportFuncs = template.FuncMap{
	"mode": func(m int) string {
		switch m {
		case config.ModeReanchor:
			return "re-anchor"
		case config.ModeReverse:
			return "reverse"
		}
		return fmt.Sprintf("unknown (%d)", m)
	},
}

func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
