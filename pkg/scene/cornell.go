package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellCamera looks into the open side of the box
func cornellCamera() geometry.CameraConfig {
	return geometry.CameraConfig{
		LookFrom:      core.NewVec3(278, 278, -800),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0,
		FocusDistance: 0, // Focus on LookAt
	}
}

// cornellWalls returns the five walls with the light in a rectangle of the ceiling
func cornellWalls(opts Options, light material.Material, x0, x1, z0, z1 float64) ([]geometry.Hittable, error) {
	red := opts.lambertian(core.NewColor(0.65, 0.05, 0.05))
	white := opts.lambertian(core.NewColor(0.73, 0.73, 0.73))
	green := opts.lambertian(core.NewColor(0.12, 0.45, 0.15))

	type rect struct {
		plane             geometry.Plane
		a0, a1, b0, b1, k float64
		mat               material.Material
	}
	rects := []rect{
		{geometry.PlaneYZ, 0, boxSize, 0, boxSize, boxSize, green}, // Left wall as seen from the camera
		{geometry.PlaneYZ, 0, boxSize, 0, boxSize, 0, red},
		{geometry.PlaneXZ, x0, x1, z0, z1, boxSize - 1, light},
		{geometry.PlaneXZ, 0, boxSize, 0, boxSize, 0, white},       // Floor
		{geometry.PlaneXZ, 0, boxSize, 0, boxSize, boxSize, white}, // Ceiling
		{geometry.PlaneXY, 0, boxSize, 0, boxSize, boxSize, white}, // Back wall
	}

	objects := make([]geometry.Hittable, 0, len(rects))
	for _, r := range rects {
		obj, err := geometry.NewAARect(r.plane, r.a0, r.a1, r.b0, r.b1, r.k, r.mat)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// cornellBoxes returns the tall and short boxes, turned and placed on the floor
func cornellBoxes(mat material.Material) (tall, short geometry.Hittable, err error) {
	tallBox, err := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), mat)
	if err != nil {
		return nil, nil, err
	}
	shortBox, err := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), mat)
	if err != nil {
		return nil, nil, err
	}

	tall = geometry.NewTranslate(geometry.NewRotateY(tallBox, 15), core.NewVec3(265, 0, 295))
	short = geometry.NewTranslate(geometry.NewRotateY(shortBox, -18), core.NewVec3(130, 0, 65))
	return tall, short, nil
}

// NewCornellScene creates a classic Cornell box scene with two boxes and an area light
func NewCornellScene(opts Options) (*Scene, error) {
	camera, config, err := opts.camera(cornellCamera())
	if err != nil {
		return nil, err
	}

	light := material.NewDiffuseLight(core.NewColor(1, 1, 1)).WithMultiplier(15)
	objects, err := cornellWalls(opts, light, 213, 343, 227, 332)
	if err != nil {
		return nil, err
	}

	tall, short, err := cornellBoxes(opts.lambertian(core.NewColor(0.73, 0.73, 0.73)))
	if err != nil {
		return nil, err
	}
	objects = append(objects, tall, short)

	return &Scene{
		Name:         "cornell",
		Camera:       camera,
		CameraConfig: config,
		Objects:      objects,
		Background:   geometry.SolidBackground(core.Color{}),
	}, nil
}

// NewCornellSmokeScene fills the Cornell boxes with dark and light smoke under a larger, dimmer light
func NewCornellSmokeScene(opts Options) (*Scene, error) {
	camera, config, err := opts.camera(cornellCamera())
	if err != nil {
		return nil, err
	}

	light := material.NewDiffuseLight(core.NewColor(1, 1, 1)).WithMultiplier(7)
	objects, err := cornellWalls(opts, light, 113, 443, 127, 432)
	if err != nil {
		return nil, err
	}

	tall, short, err := cornellBoxes(opts.lambertian(core.NewColor(0.73, 0.73, 0.73)))
	if err != nil {
		return nil, err
	}
	darkSmoke, err := geometry.NewConstantMedium(tall, 0.01, core.NewColor(0, 0, 0))
	if err != nil {
		return nil, err
	}
	lightSmoke, err := geometry.NewConstantMedium(short, 0.01, core.NewColor(1, 1, 1))
	if err != nil {
		return nil, err
	}
	objects = append(objects, darkSmoke, lightSmoke)

	return &Scene{
		Name:         "cornell-smoke",
		Camera:       camera,
		CameraConfig: config,
		Objects:      objects,
		Background:   geometry.SolidBackground(core.Color{}),
	}, nil
}
