package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrUnknownScene is returned by New for a name no preset uses
var ErrUnknownScene = errors.New("unknown scene")

// ErrMissingAsset is returned when a preset needs a file that was not supplied
var ErrMissingAsset = errors.New("missing scene asset")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Camera       *geometry.Camera
	CameraConfig geometry.CameraConfig
	Objects      []geometry.Hittable
	Background   geometry.BackgroundFunc // nil means the sky gradient
}

// World builds the acceleration structure over the scene's objects for the
// camera's shutter interval
func (s *Scene) World(sampler core.Sampler) (*geometry.World, error) {
	world, err := geometry.NewWorld(s.Objects, s.Background, 0, s.CameraConfig.Shutter, sampler)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.Name, err)
	}
	return world, nil
}

// Options customize how presets are built
type Options struct {
	Seed        int64                   // Seeds the random placement of objects
	TexturePath string                  // Image for the earth preset
	MeshPath    string                  // glTF or GLB model for the mesh preset
	Lambertian  material.LambertianMode // Bounce sampling for every diffuse material
	AspectRatio float64                 // Overrides the preset's aspect ratio when positive
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{Seed: 1, Lambertian: material.LambertianTrue}
}

// lambertian creates a diffuse material using the configured sampling mode
func (o Options) lambertian(albedo core.Color) *material.Lambertian {
	return material.NewLambertian(albedo).WithMode(o.Lambertian)
}

// camera finishes a camera config with the aspect ratio override
func (o Options) camera(config geometry.CameraConfig) (*geometry.Camera, geometry.CameraConfig, error) {
	if o.AspectRatio > 0 {
		config.AspectRatio = o.AspectRatio
	}
	camera, err := geometry.NewCamera(config)
	if err != nil {
		return nil, config, err
	}
	return camera, config, nil
}

// SceneInfo describes a preset
type SceneInfo struct {
	Name        string
	Description string
}

type preset struct {
	info  SceneInfo
	build func(opts Options) (*Scene, error)
}

var presets = map[string]preset{}

func register(name, description string, build func(opts Options) (*Scene, error)) {
	presets[name] = preset{info: SceneInfo{Name: name, Description: description}, build: build}
}

func init() {
	register("simple", "A diffuse sphere resting on a large ground sphere", NewSimpleScene)
	register("spheres", "Random field of small diffuse, metal and glass spheres around three large ones", func(opts Options) (*Scene, error) {
		return NewSpheresScene(opts, false)
	})
	register("motion-blur", "The sphere field on a checkered ground with bouncing spheres and a thrown ball", func(opts Options) (*Scene, error) {
		return NewSpheresScene(opts, true)
	})
	register("checker", "Two large checkered spheres", NewCheckerScene)
	register("perlin", "Marble noise on a sphere and the ground", NewPerlinScene)
	register("earth", "A sphere wrapped in an image texture (needs a texture path)", NewEarthScene)
	register("cornell", "Cornell box with two rotated boxes and an area light", NewCornellScene)
	register("cornell-smoke", "Cornell box whose boxes are filled with smoke", NewCornellSmokeScene)
	register("next-week", "Every primitive, texture and medium together", NewNextWeekScene)
	register("mesh", "A glTF model on a ground sphere (needs a mesh path)", NewMeshScene)
}

// List returns every preset sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(presets))
	for _, p := range presets {
		infos = append(infos, p.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Names returns the preset names sorted alphabetically
func Names() []string {
	infos := List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

// New builds the named preset
func New(name string, opts Options) (*Scene, error) {
	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := p.build(opts)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return s, nil
}

// NewSimpleScene creates a single diffuse sphere on a ground sphere under the sky
func NewSimpleScene(opts Options) (*Scene, error) {
	config := geometry.DefaultCameraConfig()
	camera, config, err := opts.camera(config)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:         "simple",
		Camera:       camera,
		CameraConfig: config,
		Objects: []geometry.Hittable{
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, opts.lambertian(core.NewColor(0.7, 0.3, 0.3))),
			geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, opts.lambertian(core.NewColor(0.8, 0.8, 0.0))),
		},
	}, nil
}
