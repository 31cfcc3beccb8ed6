package filters

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/soypat/pixfilter"
	"github.com/soypat/pixfilter/kernel"
)

// GenerateRandomSquares creates an image with random colored squares on a black background.
func GenerateRandomSquares(rng *rand.Rand, width, height, numSquares, minSize, maxSize int) *pixfilter.RGBA {
	img := pixfilter.NewRGBA(width, height)
	fillRect(img, 0, 0, width, height, pixfilter.Black)

	for i := 0; i < numSquares; i++ {
		size := minSize + rng.Intn(maxSize-minSize+1)
		x := rng.Intn(width)
		y := rng.Intn(height)

		// Random color (avoid very dark so squares are visible)
		c := pixfilter.Color{
			R: uint8(64 + rng.Intn(192)),
			G: uint8(64 + rng.Intn(192)),
			B: uint8(64 + rng.Intn(192)),
			A: uint8(128 + rng.Intn(128)),
		}
		fillRect(img, x, y, size, size, c)
	}
	return img
}

func fillRect(img *pixfilter.RGBA, x, y, w, h int, c pixfilter.Color) {
	d := img.Dims()
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			px, py := x+dx, y+dy
			if px < d.Width && py < d.Height {
				img.SetColor(px, py, c)
			}
		}
	}
}

func apply(t *testing.T, f pixfilter.Filter, src pixfilter.Image) *pixfilter.RGBA {
	t.Helper()
	dst, err := f.Apply(src, nil, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	sd, dd := src.Dims(), dst.Dims()
	if sd.Width != dd.Width || sd.Height != dd.Height {
		t.Fatalf("result %dx%d, source %dx%d", dd.Width, dd.Height, sd.Width, sd.Height)
	}
	return dst
}

func fromPixels(width int, pixels ...pixfilter.Color) *pixfilter.RGBA {
	img := pixfilter.NewRGBA(width, len(pixels)/width)
	for i, c := range pixels {
		img.SetColor(i%width, i/width, c)
	}
	return img
}

func TestInvert(t *testing.T) {
	src := fromPixels(2,
		pixfilter.Color{R: 10, G: 20, B: 30, A: 255},
		pixfilter.Color{R: 200, G: 100, B: 50, A: 255},
		pixfilter.Color{R: 0, G: 0, B: 0, A: 255},
		pixfilter.Color{R: 255, G: 255, B: 255, A: 255},
	)
	want := fromPixels(2,
		pixfilter.Color{R: 245, G: 235, B: 225, A: 255},
		pixfilter.Color{R: 55, G: 155, B: 205, A: 255},
		pixfilter.Color{R: 255, G: 255, B: 255, A: 255},
		pixfilter.Color{R: 0, G: 0, B: 0, A: 255},
	)
	got := apply(t, NewInverted(), src)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got.Buffer(), want.Buffer())
	}
}

func TestInvertTwice(t *testing.T) {
	rng := rand.New(rand.NewSource(999))
	src := GenerateRandomSquares(rng, 64, 48, 10, 8, 20)
	f := NewInverted()
	restored := apply(t, f, apply(t, f, src))
	if !restored.Equal(src) {
		t.Error("double inversion did not restore the source")
	}
}

func TestGrayscale(t *testing.T) {
	src := fromPixels(1, pixfilter.Color{R: 100, G: 150, B: 200, A: 77})
	f := NewGrayscale(GrayscaleLuminance)
	// 0.299*100 + 0.587*150 + 0.114*200 = 140.75, truncated.
	if got := apply(t, f, src).ColorAt(0, 0); got != (pixfilter.Color{R: 140, G: 140, B: 140, A: 77}) {
		t.Errorf("luminance: got %v", got)
	}
	if err := f.Controls()[0].ChangeValue(GrayscaleLightness); err != nil {
		t.Fatal(err)
	}
	if got := apply(t, f, src).ColorAt(0, 0); got.R != 150 {
		t.Errorf("lightness: got %v", got)
	}
	if err := f.Controls()[0].ChangeValue(GrayscaleMode(42)); err == nil {
		t.Error("invalid mode accepted")
	}
}

func TestGrayscaleChannelsEqual(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	src := GenerateRandomSquares(rng, 96, 64, 20, 10, 40)
	for _, mode := range []GrayscaleMode{GrayscaleLuminance, GrayscaleAverage, GrayscaleLightness} {
		dst := apply(t, NewGrayscale(mode), src)
		for y := 0; y < 64; y++ {
			for x := 0; x < 96; x++ {
				c := dst.ColorAt(x, y)
				if c.R != c.G || c.G != c.B {
					t.Fatalf("%s: pixel (%d,%d) not grayscale: %v", mode, x, y, c)
				}
				if c.A != src.ColorAt(x, y).A {
					t.Fatalf("%s: pixel (%d,%d) alpha changed", mode, x, y)
				}
			}
		}
	}
}

func TestColorCorrection(t *testing.T) {
	ref, err := ParseColor("#6400ff")
	if err != nil {
		t.Fatal(err)
	}
	if ref != pixfilter.RGB(100, 0, 255) {
		t.Fatalf("parsed %v", ref)
	}
	src := fromPixels(2,
		pixfilter.Color{R: 60, G: 77, B: 200, A: 9},
		pixfilter.Color{R: 200, G: 255, B: 255, A: 255},
	)
	tests := []struct {
		mode CorrectionMode
		want [2]pixfilter.Color
	}{
		{CorrectionLegacy, [2]pixfilter.Color{{R: 120, G: 77, B: 200, A: 9}, {R: 255, G: 255, B: 255, A: 255}}},
		{CorrectionExact, [2]pixfilter.Color{{R: 153, G: 77, B: 200, A: 9}, {R: 255, G: 255, B: 255, A: 255}}},
	}
	for _, tc := range tests {
		dst := apply(t, NewColorCorrection(ref, tc.mode), src)
		for x, want := range tc.want {
			if got := dst.ColorAt(x, 0); got != want {
				t.Errorf("%s x=%d: got %v, want %v", tc.mode, x, got, want)
			}
		}
	}
	if _, err := ParseColor("orange"); err == nil {
		t.Error("invalid hex accepted")
	}
}

func TestColorCorrectionControls(t *testing.T) {
	f := NewColorCorrection(pixfilter.RGB(255, 255, 255), CorrectionLegacy)
	src := fromPixels(1, pixfilter.RGB(50, 50, 50))
	if got := apply(t, f, src).ColorAt(0, 0); got != pixfilter.RGB(50, 50, 50) {
		t.Fatalf("white reference changed pixel: %v", got)
	}
	if err := f.Controls()[0].ChangeValue(pixfilter.RGB(50, 85, 0)); err != nil {
		t.Fatal(err)
	}
	if got := apply(t, f, src).ColorAt(0, 0); got != pixfilter.RGB(250, 150, 50) {
		t.Errorf("got %v", got)
	}
}

func TestStretchMapsRangeToFull(t *testing.T) {
	src := fromPixels(3,
		pixfilter.Color{R: 50, G: 10, B: 200, A: 255},
		pixfilter.Color{R: 100, G: 20, B: 210, A: 128},
		pixfilter.Color{R: 150, G: 30, B: 220, A: 0},
	)
	dst := apply(t, NewStretch(), src)
	want := []pixfilter.Color{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 127, G: 127, B: 127, A: 128},
		{R: 255, G: 255, B: 255, A: 0},
	}
	for x, w := range want {
		if got := dst.ColorAt(x, 0); got != w {
			t.Errorf("x=%d: got %v, want %v", x, got, w)
		}
	}
}

func TestStretchRandomExtremes(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	src := GenerateRandomSquares(rng, 40, 30, 12, 4, 12)
	dst := apply(t, NewStretch(), src)
	r, err := ScanRange(dst, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	for ch := 0; ch < 3; ch++ {
		if r.Min[ch] != 0 || r.Max[ch] != 255 {
			t.Errorf("channel %d range after stretch [%d,%d]", ch, r.Min[ch], r.Max[ch])
		}
	}
}

func TestStretchConstantChannel(t *testing.T) {
	src := fromPixels(2,
		pixfilter.Color{R: 90, G: 10, B: 33, A: 255},
		pixfilter.Color{R: 90, G: 20, B: 33, A: 255},
	)
	dst := apply(t, NewStretch(), src)
	if got := dst.ColorAt(0, 0); got != (pixfilter.Color{R: 90, G: 0, B: 33, A: 255}) {
		t.Errorf("x=0: %v", got)
	}
	if got := dst.ColorAt(1, 0); got != (pixfilter.Color{R: 90, G: 255, B: 33, A: 255}) {
		t.Errorf("x=1: %v", got)
	}
}

func TestStretchReuse(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := GenerateRandomSquares(rng, 20, 20, 5, 3, 8)
	b := pixfilter.NewRGBA(20, 20)
	fillRect(b, 0, 0, 20, 20, pixfilter.RGB(100, 100, 100))
	fillRect(b, 5, 5, 5, 5, pixfilter.RGB(120, 140, 160))

	f := NewStretch()
	apply(t, f, a)
	reused := apply(t, f, b)
	fresh := apply(t, NewStretch(), b)
	if !reused.Equal(fresh) {
		t.Error("statistics leaked from previous image")
	}
}

func TestStretchProgressAndCancel(t *testing.T) {
	src := pixfilter.NewRGBA(2, 2)
	var progress []int
	_, err := NewStretch().Apply(src, func(p int) { progress = append(progress, p) }, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 50, 0, 50}
	if len(progress) != len(want) {
		t.Fatalf("progress %v, want %v", progress, want)
	}
	for i := range want {
		if progress[i] != want[i] {
			t.Errorf("progress[%d]=%d, want %d", i, progress[i], want[i])
		}
	}

	polls := 0
	dst, err := NewStretch().Apply(src, nil, func() bool {
		polls++
		return polls > 3 // Cancel during the mapping pass.
	})
	if !errors.Is(err, pixfilter.ErrAborted) || dst != nil {
		t.Errorf("got %v, %v; want nil, ErrAborted", dst, err)
	}
}

func TestShiftNarrowImage(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	src := GenerateRandomSquares(rng, 40, 10, 5, 2, 6)
	dst := apply(t, NewShift(DefaultShiftOffset), src)
	for y := 0; y < 10; y++ {
		for x := 0; x < 40; x++ {
			if c := dst.ColorAt(x, y); c != pixfilter.Black {
				t.Fatalf("pixel (%d,%d)=%v, want opaque black", x, y, c)
			}
		}
	}
}

func TestShift(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	src := GenerateRandomSquares(rng, 60, 4, 8, 2, 10)
	dst := apply(t, NewShift(DefaultShiftOffset), src)
	for y := 0; y < 4; y++ {
		for x := 0; x < 60; x++ {
			want := pixfilter.Black
			if x < 10 {
				want = src.ColorAt(x+50, y)
			}
			if got := dst.ColorAt(x, y); got != want {
				t.Errorf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestWave(t *testing.T) {
	const width = 100
	src := pixfilter.NewRGBA(width, 2)
	for x := 0; x < width; x++ {
		for y := 0; y < 2; y++ {
			src.SetColor(x, y, pixfilter.Color{R: uint8(x), G: uint8(y), A: 200})
		}
	}
	wave, err := NewWave(DefaultWaveAmplitude, DefaultWavePeriod)
	if err != nil {
		t.Fatal(err)
	}
	dst := apply(t, wave, src)
	// Expected source columns from x + round(20*sin(2*pi*x/30)), clamped.
	wantSrc := map[int]int{0: 0, 7: 27, 15: 15, 22: 2, 99: 99}
	for x, sx := range wantSrc {
		for y := 0; y < 2; y++ {
			if got, want := dst.ColorAt(x, y), src.ColorAt(sx, y); got != want {
				t.Errorf("(%d,%d): got %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestWaveInvalidParams(t *testing.T) {
	tests := []struct {
		amplitude, period float64
		wantErr           error
	}{
		{20, 0, errWavePeriod},
		{20, -30, errWavePeriod},
		{20, math.NaN(), errWavePeriod},
		{20, math.Inf(1), errWavePeriod},
		{math.NaN(), 30, errWaveAmplitude},
		{math.Inf(-1), 30, errWaveAmplitude},
	}
	for _, tc := range tests {
		f, err := NewWave(tc.amplitude, tc.period)
		if !errors.Is(err, tc.wantErr) || f != nil {
			t.Errorf("NewWave(%v, %v): got %v, %v; want nil, %v", tc.amplitude, tc.period, f, err, tc.wantErr)
		}
	}
	cfg := DefaultConfig()
	cfg.Period = 0
	if _, err := New("wave", cfg); !errors.Is(err, errWavePeriod) {
		t.Errorf("registry wave with zero period: %v", err)
	}
}

// columnImage is an accessor-only image: it has no buffer and reports no stride.
type columnImage struct{ w, h int }

func (m columnImage) Dims() pixfilter.Dims { return pixfilter.Dims{Width: m.w, Height: m.h} }
func (m columnImage) ColorAt(x, y int) pixfilter.Color {
	return pixfilter.Color{R: uint8(10 * x), G: uint8(10 * y), B: 7, A: 200}
}

func TestStretchUnbufferedImage(t *testing.T) {
	src := columnImage{w: 3, h: 2}
	r, err := ScanRange(src, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if r.Min != [3]int{0, 0, 7} || r.Max != [3]int{20, 10, 7} {
		t.Errorf("range %+v", r)
	}
	dst := apply(t, NewStretch(), src)
	if got := dst.ColorAt(2, 1); got != (pixfilter.Color{R: 255, G: 255, B: 7, A: 200}) {
		t.Errorf("got %v", got)
	}
}

func TestConvolutionIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	src := GenerateRandomSquares(rng, 32, 32, 10, 2, 9)
	dst := apply(t, NewConvolution(kernel.Identity()), src)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			s, d := src.ColorAt(x, y), dst.ColorAt(x, y)
			if s.R != d.R || s.G != d.G || s.B != d.B || d.A != 255 {
				t.Fatalf("(%d,%d): got %v, source %v", x, y, d, s)
			}
		}
	}
}

func TestConvolutionFilters(t *testing.T) {
	src := pixfilter.NewRGBA(5, 5)
	fillRect(src, 0, 0, 5, 5, pixfilter.RGB(80, 80, 80))
	fillRect(src, 3, 0, 2, 5, pixfilter.RGB(200, 200, 200))

	edge := apply(t, NewEdgeDetect(), src)
	// Columns 2 and 3 straddle the step; elsewhere the derivative is zero.
	for x, want := range []uint8{0, 0, 255, 255, 0} {
		if got := edge.ColorAt(x, 2).R; got != want {
			t.Errorf("edge x=%d: got %d, want %d", x, got, want)
		}
	}
	sharp := apply(t, NewSharpen(), src)
	if got := sharp.ColorAt(2, 2).R; got != 0 {
		t.Errorf("sharpen dark side of step: %d", got)
	}
	if got := sharp.ColorAt(0, 0).R; got != 80 {
		t.Errorf("sharpen flat region: %d", got)
	}
	blur := apply(t, NewBlur(), src)
	if got := blur.ColorAt(2, 2).R; got < 119 || got > 120 {
		t.Errorf("blur across step: %d", got)
	}
	if _, err := (&Convolution{}).Apply(src, nil, nil); err == nil {
		t.Error("zero value Convolution applied")
	}
}

func TestGaussianControls(t *testing.T) {
	if _, err := NewGaussian(-1, 2); err == nil {
		t.Error("negative radius accepted")
	}
	f, err := NewGaussian(kernel.DefaultGaussianRadius, kernel.DefaultGaussianSigma)
	if err != nil {
		t.Fatal(err)
	}
	if w, _ := f.Kernel().Size(); w != 7 {
		t.Fatalf("default kernel width %d", w)
	}
	radius, sigma := f.Controls()[0], f.Controls()[1]
	if err := radius.ChangeValue(1); err != nil {
		t.Fatal(err)
	}
	if w, _ := f.Kernel().Size(); w != 3 {
		t.Errorf("kernel width %d after radius change, want 3", w)
	}
	if err := sigma.ChangeValue(0.0); err == nil {
		t.Error("zero sigma accepted")
	}
	if err := sigma.ChangeValue(0.5); err != nil || sigma.ActualValue() != 0.5 {
		t.Errorf("sigma change: err=%v value=%v", err, sigma.ActualValue())
	}
	if w, _ := f.Kernel().Size(); w != 3 {
		t.Errorf("sigma change altered radius: width %d", w)
	}
}

func TestCurves(t *testing.T) {
	rng := rand.New(rand.NewSource(77))
	src := GenerateRandomSquares(rng, 16, 16, 6, 2, 6)
	id, err := NewCurves(IdentityCurve())
	if err != nil {
		t.Fatal(err)
	}
	if !apply(t, id, src).Equal(src) {
		t.Error("identity curve changed image")
	}
	if err := id.Controls()[0].ChangeValue([]pixfilter.CurvePoint{{X: 0, Y: 1}, {X: 1, Y: 0}}); err != nil {
		t.Fatal(err)
	}
	if !apply(t, id, src).Equal(apply(t, NewInverted(), src)) {
		t.Error("descending curve differs from inversion")
	}
	if _, err := NewCurves([]pixfilter.CurvePoint{{X: 1, Y: 0}, {X: 0, Y: 1}}); err == nil {
		t.Error("unordered curve accepted")
	}
}

func TestRegistry(t *testing.T) {
	names := Names()
	if len(names) != 11 {
		t.Errorf("registered %d filters: %v", len(names), names)
	}
	rng := rand.New(rand.NewSource(1))
	src := GenerateRandomSquares(rng, 12, 9, 4, 2, 5)
	for _, name := range names {
		f, err := New(name, DefaultConfig())
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		apply(t, f, src)
	}
	if _, err := New("sepia", DefaultConfig()); err == nil {
		t.Error("unknown filter built")
	}
}

func TestPointFilterNilFunc(t *testing.T) {
	if _, err := (&PointFilter{}).Apply(pixfilter.NewRGBA(1, 1), nil, nil); err == nil {
		t.Error("nil PointFunc applied")
	}
}
