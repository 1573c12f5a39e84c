// Package render3d is a small, predictable software 3D renderer.
//
// It draws meshes, line segments and point sprites into a caller-provided Target.
// There is no GPU abstraction: everything is rasterized on the CPU into whatever
// pixel surface the host exposes.
//
// Pipeline (fixed):
//
//	Scene → Transform → Projection → Clipping → Rasterization → Target.
//
// Besides drawing, the package answers the geometric questions an interactive
// scene needs every frame: projecting a world point to the screen, building a
// pick ray through a pixel, and intersecting that ray with boxes, spheres and the
// ground plane.
package render3d
