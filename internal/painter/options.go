package painter

import (
	"moss-painter/internal/batch"
	"moss-painter/internal/brush"
	"moss-painter/internal/config"
	"moss-painter/internal/inflate"
	"moss-painter/internal/job"
)

// Options configures a Painter.
type Options struct {
	// MossDistance scales the summed normal when displacing vertices.
	MossDistance float64
	NormalMode   inflate.NormalMode
	Pool         batch.Config
	// ProbeThreshold is the candidate×accumulator triangle product above which
	// duplicate detection runs on the worker pool. Zero disables the probe.
	ProbeThreshold int

	// Loop drives job polling. Required.
	Loop  *job.Loop
	Sink  Sink
	Debug brush.DebugDrawer
}

// OptionsFromConfig maps a resolved config onto Options.
func OptionsFromConfig(cfg config.Config, loop *job.Loop, sink Sink) (Options, error) {
	mode, err := inflate.ParseNormalMode(cfg.NormalMode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		MossDistance:   cfg.MossDistance,
		NormalMode:     mode,
		Pool:           cfg.Pool(),
		ProbeThreshold: cfg.ProbeThreshold,
		Loop:           loop,
		Sink:           sink,
	}, nil
}

// BrushFromConfig returns the stroke parameters and mode the config describes.
// Direction is left zero; strokes supply it per frame or the caller sets it.
func BrushFromConfig(cfg config.Config, add bool) (brush.Params, brush.Mode, error) {
	mode, err := brush.ParseMode(cfg.StrokeMode)
	if err != nil {
		return brush.Params{}, mode, err
	}
	return brush.Params{
		Radius:         cfg.BrushSize,
		Add:            add,
		AngleTolerance: cfg.BrushAngle,
	}, mode, nil
}
