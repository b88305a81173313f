package scene

import (
	"github.com/charmbracelet/harmonica"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// spheresCamera looks at the sphere field from a low angle with a shallow depth of field
func spheresCamera(shutter float64) geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          20,
		AspectRatio:   16.0 / 9.0,
		Aperture:      0.1,
		FocusDistance: 10,
		Shutter:       shutter,
	}
}

// NewSpheresScene creates the random sphere field. With motion set the ground
// is checkered, the diffuse spheres bounce upward during the shutter and a
// ball is thrown across the scene.
func NewSpheresScene(opts Options, motion bool) (*Scene, error) {
	sampler := core.NewSeededSampler(opts.Seed)

	name, shutter := "spheres", 0.0
	if motion {
		name, shutter = "motion-blur", 1.0
	}
	camera, config, err := opts.camera(spheresCamera(shutter))
	if err != nil {
		return nil, err
	}

	var ground material.Material = opts.lambertian(core.NewColor(0.5, 0.5, 0.5))
	if motion {
		checker := texture.NewCheckerColors(core.NewColor(0.2, 0.3, 0.1), core.NewColor(0.9, 0.9, 0.9))
		ground = material.NewLambertianTexture(checker).WithMode(opts.Lambertian)
	}

	objects := []geometry.Hittable{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground),
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(float64(a)+0.9*sampler.Get1D(), 0.2, float64(b)+0.9*sampler.Get1D())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				albedo := core.RandomColor(sampler, 0, 1).MultiplyVec(core.RandomColor(sampler, 0, 1))
				mat := opts.lambertian(albedo)
				if motion {
					velocity := core.NewVec3(0, core.RandomRange(sampler, 0, 0.5), 0)
					objects = append(objects, geometry.NewMovingSphere(center, velocity, 0.2, mat))
				} else {
					objects = append(objects, geometry.NewSphere(center, 0.2, mat))
				}
			case chooseMat < 0.95:
				albedo := core.RandomColor(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				objects = append(objects, geometry.NewSphere(center, 0.2, material.NewGlass(1.5)))
			}
		}
	}

	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewGlass(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, opts.lambertian(core.NewColor(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewColor(0.7, 0.6, 0.5), 0.0)),
	)

	if motion {
		ball, err := thrownBall(shutter)
		if err != nil {
			return nil, err
		}
		objects = append(objects, ball)
	}

	return &Scene{
		Name:         name,
		Camera:       camera,
		CameraConfig: config,
		Objects:      objects,
	}, nil
}

// thrownBall is a small metal ball following a ballistic arc in front of the big spheres
func thrownBall(shutter float64) (*geometry.Sphere, error) {
	gravity := core.NewVec3(harmonica.TerminalGravity.X, harmonica.TerminalGravity.Y, harmonica.TerminalGravity.Z)
	path, err := geometry.NewProjectilePath(
		core.NewVec3(2, 0.6, 2.2),
		core.NewVec3(1.5, 4.5, 0),
		gravity,
		120,
		shutter,
	)
	if err != nil {
		return nil, err
	}
	return geometry.NewPathSphere(path, 0.3, material.NewMetal(core.NewColor(0.9, 0.9, 0.9), 0.05)), nil
}

// NewCheckerScene creates two large checkered spheres stacked vertically
func NewCheckerScene(opts Options) (*Scene, error) {
	config := spheresCamera(0)
	config.Aperture = 0
	camera, config, err := opts.camera(config)
	if err != nil {
		return nil, err
	}

	checker := texture.NewCheckerColors(core.NewColor(0.2, 0.3, 0.1), core.NewColor(0.9, 0.9, 0.9))
	mat := material.NewLambertianTexture(checker).WithMode(opts.Lambertian)

	return &Scene{
		Name:         "checker",
		Camera:       camera,
		CameraConfig: config,
		Objects: []geometry.Hittable{
			geometry.NewSphere(core.NewVec3(0, -10, 0), 10, mat),
			geometry.NewSphere(core.NewVec3(0, 10, 0), 10, mat),
		},
	}, nil
}
