package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewPerlinScene creates a marble sphere on marble ground
func NewPerlinScene(opts Options) (*Scene, error) {
	config := spheresCamera(0)
	config.Aperture = 0
	camera, config, err := opts.camera(config)
	if err != nil {
		return nil, err
	}

	noise := texture.NewDefaultPerlin(core.NewSeededSampler(opts.Seed)).WithScale(4).WithMarble(7)
	mat := material.NewLambertianTexture(noise).WithMode(opts.Lambertian)

	return &Scene{
		Name:         "perlin",
		Camera:       camera,
		CameraConfig: config,
		Objects: []geometry.Hittable{
			geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, mat),
			geometry.NewSphere(core.NewVec3(0, 2, 0), 2, mat),
		},
	}, nil
}

// NewEarthScene wraps the image at opts.TexturePath around a sphere
func NewEarthScene(opts Options) (*Scene, error) {
	if opts.TexturePath == "" {
		return nil, fmt.Errorf("%w: the earth scene needs a texture image", ErrMissingAsset)
	}
	image, err := loaders.LoadImageTexture(opts.TexturePath)
	if err != nil {
		return nil, err
	}

	config := geometry.DefaultCameraConfig()
	config.LookFrom = core.NewVec3(0, 0, 12)
	config.LookAt = core.NewVec3(0, 0, 0)
	config.VFov = 20
	camera, config, err := opts.camera(config)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:         "earth",
		Camera:       camera,
		CameraConfig: config,
		Objects: []geometry.Hittable{
			geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewLambertianTexture(image).WithMode(opts.Lambertian)),
		},
	}, nil
}
