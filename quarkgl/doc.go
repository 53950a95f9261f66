// Package quarkgl is a small software 3D renderer.
//
// Pipeline (fixed):
//
//	Scene graph → World transforms → Projection → Near rejection → Rasterization → Target.
//
// Lighting follows the fixed-function model: per-light ambient, diffuse and
// specular terms against a material, evaluated per vertex (smooth) or per face
// (flat). The renderer draws into a caller-provided Target and does not
// allocate in the render hot path once the depth buffer is sized.
//
// Matrix operations are backed by mgl32 and use the OpenGL column-major layout.
package quarkgl
