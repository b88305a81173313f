package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// NewNextWeekScene combines every primitive, material, texture and medium:
// a field of boxes, a moving sphere, glass with subsurface fog, global mist,
// a noise sphere and a rotated cluster of small spheres under one light.
// The earth sphere appears only when opts.TexturePath is set.
func NewNextWeekScene(opts Options) (*Scene, error) {
	sampler := core.NewSeededSampler(opts.Seed)

	camera, config, err := opts.camera(geometry.CameraConfig{
		LookFrom:      core.NewVec3(478, 278, -600),
		LookAt:        core.NewVec3(278, 278, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          40,
		AspectRatio:   1,
		Aperture:      0,
		FocusDistance: 0,
		Shutter:       1,
	})
	if err != nil {
		return nil, err
	}

	var objects []geometry.Hittable

	// Ground of boxes with random heights, grouped under their own hierarchy
	ground := opts.lambertian(core.NewColor(0.48, 0.83, 0.53))
	const boxesPerSide = 20
	var boxes []geometry.Hittable
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			w := 100.0
			x0 := -1000 + float64(i)*w
			z0 := -1000 + float64(j)*w
			y1 := core.RandomRange(sampler, 1, 101)
			box, err := geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+w, y1, z0+w), ground)
			if err != nil {
				return nil, err
			}
			boxes = append(boxes, box)
		}
	}
	groundNode, err := geometry.NewBVH(boxes, 0, 1, sampler)
	if err != nil {
		return nil, err
	}
	objects = append(objects, groundNode)

	light, err := geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewColor(1, 1, 1)).WithMultiplier(7))
	if err != nil {
		return nil, err
	}
	objects = append(objects, light)

	objects = append(objects,
		geometry.NewMovingSphere(core.NewVec3(400, 400, 200), core.NewVec3(30, 0, 0), 50, opts.lambertian(core.NewColor(0.7, 0.3, 0.1))),
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewGlass(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewColor(0.8, 0.8, 0.9), 1.0)),
	)

	// Glass ball filled with blue fog
	boundary := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewGlass(1.5))
	fog, err := geometry.NewConstantMedium(boundary, 0.2, core.NewColor(0.2, 0.4, 0.9))
	if err != nil {
		return nil, err
	}
	objects = append(objects, boundary, fog)

	// Thin mist over everything
	mist, err := geometry.NewConstantMedium(geometry.NewSphere(core.Vec3{}, 5000, nil), 0.0001, core.NewColor(1, 1, 1))
	if err != nil {
		return nil, err
	}
	objects = append(objects, mist)

	if opts.TexturePath != "" {
		image, err := loaders.LoadImageTexture(opts.TexturePath)
		if err != nil {
			return nil, err
		}
		objects = append(objects, geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewLambertianTexture(image).WithMode(opts.Lambertian)))
	}

	noise := texture.NewDefaultPerlin(sampler).WithScale(0.1).WithTurbulence(7)
	objects = append(objects, geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewLambertianTexture(noise).WithMode(opts.Lambertian)))

	// Cluster of small spheres, turned and moved as a single object
	white := opts.lambertian(core.NewColor(0.73, 0.73, 0.73))
	cluster := make([]geometry.Hittable, 0, 1000)
	for i := 0; i < 1000; i++ {
		center := core.NewVec3(
			core.RandomRange(sampler, 0, 165),
			core.RandomRange(sampler, 0, 165),
			core.RandomRange(sampler, 0, 165),
		)
		cluster = append(cluster, geometry.NewSphere(center, 10, white))
	}
	clusterNode, err := geometry.NewBVH(cluster, 0, 1, sampler)
	if err != nil {
		return nil, err
	}
	objects = append(objects, geometry.NewTranslate(geometry.NewRotateY(clusterNode, 15), core.NewVec3(-100, 270, 395)))

	return &Scene{
		Name:         "next-week",
		Camera:       camera,
		CameraConfig: config,
		Objects:      objects,
		Background:   geometry.SolidBackground(core.Color{}),
	}, nil
}
