package rembg

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"

	"github.com/oneimage/oneimage/internal/logging"
)

var (
	ortOnce sync.Once
	ortErr  error
)

// ensureRuntime initializes the ONNX runtime environment once per
// process. libPath overrides the shared library location when non-empty.
func ensureRuntime(libPath string) error {
	ortOnce.Do(func() {
		if libPath != "" {
			ort.SetSharedLibraryPath(libPath)
		}
		ortErr = ort.InitializeEnvironment()
	})
	return errors.Wrap(ortErr, "initializing onnxruntime environment")
}

// Registry owns the model sessions for a process run. Sessions are
// created on first use per model name and reused until Close. The
// registry serializes access with a mutex; it is not meant for
// concurrent inference.
type Registry struct {
	modelDir string
	libPath  string

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a session registry reading model files from
// modelDir. libPath optionally points at the onnxruntime shared library.
func NewRegistry(modelDir, libPath string) *Registry {
	return &Registry{
		modelDir: modelDir,
		libPath:  libPath,
		sessions: make(map[string]*Session),
	}
}

// Session returns the cached session for the named model, creating it if
// necessary.
func (r *Registry) Session(name string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[name]; ok {
		return s, nil
	}

	model, ok := Lookup(name)
	if !ok {
		return nil, errors.Errorf("unknown model: %s (available: %s)",
			name, strings.Join(ModelNames(), ", "))
	}

	modelPath := filepath.Join(r.modelDir, model.File)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, errors.Errorf("model file not found: %s (place %s in %s)",
			modelPath, model.File, r.modelDir)
	}

	if err := ensureRuntime(r.libPath); err != nil {
		return nil, err
	}

	s, err := newSession(model, modelPath)
	if err != nil {
		return nil, err
	}

	r.sessions[name] = s
	logging.L().Debug("model session created", zap.String("model", name))
	return s, nil
}

// Close destroys all cached sessions.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for name, s := range r.sessions {
		s.Close()
		delete(r.sessions, name)
	}
}

// Session wraps an ONNX session with its pre-allocated input and output
// tensors.
type Session struct {
	model  Model
	sess   *ort.AdvancedSession
	input  *ort.Tensor[float32]
	output *ort.Tensor[float32]
}

func newSession(model Model, modelPath string) (*Session, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model metadata from %s", modelPath)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, errors.Errorf("model %s declares no inputs or outputs", model.Name)
	}

	size := int64(model.InputSize)

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, size, size))
	if err != nil {
		return nil, errors.Wrap(err, "creating input tensor")
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1, size, size))
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "creating session options")
	}
	defer options.Destroy()

	options.SetIntraOpNumThreads(4)
	options.SetInterOpNumThreads(2)
	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	sess, err := ort.NewAdvancedSession(
		modelPath,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrapf(err, "creating session for %s", model.Name)
	}

	return &Session{
		model:  model,
		sess:   sess,
		input:  inputTensor,
		output: outputTensor,
	}, nil
}

// Close releases the session and its tensors.
func (s *Session) Close() {
	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.sess != nil {
		s.sess.Destroy()
		s.sess = nil
	}
}

// predict runs the model on img and returns the raw saliency map, one
// float per pixel of the model's input grid.
func (s *Session) predict(img image.Image) ([]float32, error) {
	prepareInput(img, s.input.GetData(), s.model.InputSize)

	if err := s.sess.Run(); err != nil {
		return nil, errors.Wrapf(err, "running %s session", s.model.Name)
	}

	out := s.output.GetData()
	mask := make([]float32, len(out))
	copy(mask, out)
	return mask, nil
}

// u2net normalization constants (ImageNet mean and std per channel).
var (
	channelMean = [3]float32{0.485, 0.456, 0.406}
	channelStd  = [3]float32{0.229, 0.224, 0.225}
)

// prepareInput resizes img to the model grid and writes planar,
// normalized RGB float data into dst.
func prepareInput(img image.Image, dst []float32, size int) {
	scaled := resize.Resize(uint(size), uint(size), img, resize.Lanczos3)

	channelSize := size * size
	red := dst[0:channelSize]
	green := dst[channelSize : channelSize*2]
	blue := dst[channelSize*2 : channelSize*3]

	i := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r, g, b, _ := scaled.At(x, y).RGBA()
			red[i] = (float32(r>>8)/255.0 - channelMean[0]) / channelStd[0]
			green[i] = (float32(g>>8)/255.0 - channelMean[1]) / channelStd[1]
			blue[i] = (float32(b>>8)/255.0 - channelMean[2]) / channelStd[2]
			i++
		}
	}
}
