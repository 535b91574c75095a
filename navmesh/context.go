package navmesh

import (
	"fmt"
	"time"
)

// TimerLabel identifies one of the named build-timing slots a
// BuildContext accumulates, one per pipeline stage.
type TimerLabel int

const (
	TimerTotal TimerLabel = iota
	TimerRasterizeTriangles
	TimerFilter
	TimerBuildOpenHeightfield
	TimerErodeArea
	TimerBuildDistanceField
	TimerBuildRegions
	TimerBuildContours
	TimerBuildContoursTrace
	TimerBuildContoursSimplify
	TimerBuildPolyMesh
	TimerMaxTimers
)

// LogCategory tags one logged message.
type LogCategory int

const (
	LogProgress LogCategory = iota + 1
	LogWarning
	LogError
)

const maxMessages = 1000

// BuildContext carries per-build logging and timing state through every
// stage of the pipeline. The timed stage functions take one as their
// first argument; MarkWalkableTriangles, MarkConvexPolyArea and the
// low-height span filter take none.
type BuildContext struct {
	LogEnabled   bool
	TimerEnabled bool

	startTime [TimerMaxTimers]time.Time
	accTime   [TimerMaxTimers]time.Duration

	messages []string
}

// NewBuildContext returns a BuildContext with logging and timing enabled.
func NewBuildContext() *BuildContext {
	return &BuildContext{LogEnabled: true, TimerEnabled: true}
}

func (ctx *BuildContext) log(cat LogCategory, format string, v ...interface{}) {
	if !ctx.LogEnabled {
		return
	}
	if len(ctx.messages) >= maxMessages {
		return
	}
	prefix := "PROG"
	switch cat {
	case LogWarning:
		prefix = "WARN"
	case LogError:
		prefix = "ERR "
	}
	ctx.messages = append(ctx.messages, prefix+" "+fmt.Sprintf(format, v...))
}

// Progressf logs a progress message.
func (ctx *BuildContext) Progressf(format string, v ...interface{}) { ctx.log(LogProgress, format, v...) }

// Warningf logs a non-fatal warning (e.g. a skipped region).
func (ctx *BuildContext) Warningf(format string, v ...interface{}) { ctx.log(LogWarning, format, v...) }

// Errorf logs a fatal-to-the-caller error message.
func (ctx *BuildContext) Errorf(format string, v ...interface{}) { ctx.log(LogError, format, v...) }

// StartTimer begins accumulating time for label.
func (ctx *BuildContext) StartTimer(label TimerLabel) {
	if ctx.TimerEnabled {
		ctx.startTime[label] = time.Now()
	}
}

// StopTimer stops accumulating time for label, adding the elapsed
// duration since the matching StartTimer to its running total.
func (ctx *BuildContext) StopTimer(label TimerLabel) {
	if ctx.TimerEnabled {
		ctx.accTime[label] += time.Since(ctx.startTime[label])
	}
}

// AccumulatedTime returns the total time spent in label across the
// build, or zero if timers are disabled.
func (ctx *BuildContext) AccumulatedTime(label TimerLabel) time.Duration {
	if !ctx.TimerEnabled {
		return 0
	}
	return ctx.accTime[label]
}

// DumpLog prints a header followed by every logged message.
func (ctx *BuildContext) DumpLog(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
	for _, msg := range ctx.messages {
		fmt.Println(msg)
	}
}

// Messages returns every message logged so far, oldest first.
func (ctx *BuildContext) Messages() []string { return ctx.messages }
