package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewMeshScene loads the model at opts.MeshPath, scales it to two units and
// sets it on a ground sphere next to a glass ball
func NewMeshScene(opts Options) (*Scene, error) {
	if opts.MeshPath == "" {
		return nil, fmt.Errorf("%w: the mesh scene needs a glTF or GLB model", ErrMissingAsset)
	}
	mesh, err := loaders.LoadGLTFMesh(opts.MeshPath)
	if err != nil {
		return nil, err
	}

	config := geometry.DefaultCameraConfig()
	config.LookFrom = core.NewVec3(0, 2, 6)
	config.LookAt = core.NewVec3(0, 1, 0)
	config.VFov = 35
	config.FocusDistance = 0
	camera, config, err := opts.camera(config)
	if err != nil {
		return nil, err
	}

	fitted := mesh.Fit(core.NewVec3(0, 0, 0), 2)
	bounds := fitted.Bounds()
	// Rest the model on the ground plane y=0
	fitted = fitted.Fit(core.NewVec3(0, bounds.Size().Y/2, 0), 2)

	objects := fitted.Hittables(opts.lambertian(core.NewColor(0.8, 0.5, 0.3)))
	objects = append(objects,
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, opts.lambertian(core.NewColor(0.5, 0.5, 0.5))),
		geometry.NewSphere(core.NewVec3(1.8, 0.5, 0.5), 0.5, material.NewGlass(1.5)),
	)

	return &Scene{
		Name:         "mesh",
		Camera:       camera,
		CameraConfig: config,
		Objects:      objects,
	}, nil
}
