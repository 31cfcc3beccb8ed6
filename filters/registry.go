package filters

import (
	"fmt"
	"slices"

	"github.com/soypat/pixfilter"
	"github.com/soypat/pixfilter/kernel"
)

// Config holds the parameters hosts may set when building a filter by name.
// Fields not used by the selected filter are ignored.
type Config struct {
	Radius    int     // Gaussian kernel radius.
	Sigma     float64 // Gaussian standard deviation.
	Reference pixfilter.Color
	Mode      CorrectionMode
	Gray      GrayscaleMode
	Amplitude float64 // Wave displacement.
	Period    float64 // Wave length.
	Offset    int     // Shift distance.
	Curve     []pixfilter.CurvePoint
}

// DefaultConfig returns the parameters of the classic filter set.
func DefaultConfig() Config {
	return Config{
		Radius:    kernel.DefaultGaussianRadius,
		Sigma:     kernel.DefaultGaussianSigma,
		Reference: pixfilter.RGB(255, 255, 255),
		Mode:      CorrectionLegacy,
		Gray:      GrayscaleLuminance,
		Amplitude: DefaultWaveAmplitude,
		Period:    DefaultWavePeriod,
		Offset:    DefaultShiftOffset,
		Curve:     IdentityCurve(),
	}
}

type constructor func(cfg Config) (pixfilter.Filter, error)

var registry = map[string]constructor{
	"invert":    func(Config) (pixfilter.Filter, error) { return NewInverted(), nil },
	"grayscale": func(cfg Config) (pixfilter.Filter, error) { return NewGrayscale(cfg.Gray), nil },
	"blur":      func(Config) (pixfilter.Filter, error) { return NewBlur(), nil },
	"gaussian": func(cfg Config) (pixfilter.Filter, error) {
		return NewGaussian(cfg.Radius, cfg.Sigma)
	},
	"sharpen": func(Config) (pixfilter.Filter, error) { return NewSharpen(), nil },
	"edge":    func(Config) (pixfilter.Filter, error) { return NewEdgeDetect(), nil },
	"correction": func(cfg Config) (pixfilter.Filter, error) {
		return NewColorCorrection(cfg.Reference, cfg.Mode), nil
	},
	"stretch": func(Config) (pixfilter.Filter, error) { return NewStretch(), nil },
	"wave": func(cfg Config) (pixfilter.Filter, error) {
		return NewWave(cfg.Amplitude, cfg.Period)
	},
	"shift":  func(cfg Config) (pixfilter.Filter, error) { return NewShift(cfg.Offset), nil },
	"curves": func(cfg Config) (pixfilter.Filter, error) { return NewCurves(cfg.Curve) },
}

// New builds the filter registered under name.
func New(name string, cfg Config) (pixfilter.Filter, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("filter not found: %s", name)
	}
	f, err := ctor(cfg)
	if err != nil {
		return nil, fmt.Errorf("filter %s: %w", name, err)
	}
	return f, nil
}

// Names returns the registered filter names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
