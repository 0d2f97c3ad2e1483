package orion

import (
	"log/slog"
	"time"
)

// frames between two reports of the frame stats
const statsInterval = 60

// FrameTimes keeps a moving average and the maximum of the frame durations.
type FrameTimes struct {
	FrameCount uint64

	// Delta is the duration of the last frame
	Delta time.Duration

	AverageDuration time.Duration
	MaxDuration     time.Duration
}

// Tick records a frame that took dt seconds. The very first frame is only
// counted, its delta reaches back to the creation of the driver. Returns
// true whenever the stats should be reported.
func (t *FrameTimes) Tick(dt float32) bool {
	if t.FrameCount > 0 {
		t.record(time.Duration(float64(dt) * float64(time.Second)))
	}

	t.FrameCount++

	return t.FrameCount%statsInterval == 0
}

func (t *FrameTimes) record(d time.Duration) {
	// weight of the newest frame in the average, once warmed up
	const smoothing = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < smoothing/2 {
		t.AverageDuration = d
		return
	}

	t.AverageDuration += (d - t.AverageDuration) / smoothing
}

func (t *FrameTimes) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return float64(time.Second) / float64(t.AverageDuration)
}

func (t *FrameTimes) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frames", t.FrameCount),
		slog.Float64("fps", t.FPS()),
		slog.Duration("avg", t.AverageDuration),
		slog.Duration("max", t.MaxDuration),
	)
}
