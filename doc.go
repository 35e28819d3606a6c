// Package wander is a small 2D sprite engine and world toy: a
// stick-figure avatar explores a scrollable world rendered through a
// batched sprite pipeline, with keyboard/touch movement, smoothed
// camera follow, and click-triggered interactions.
//
// The package is CPU-side and GPU-agnostic: all rendering goes through
// the Device interface, implemented for OpenGL in backend/opengl and
// by a recording mock in tests. The frame loop, batch buffer, and
// camera are owned by a single game-loop thread; image fetching and
// decoding are the only operations that run off-thread, with GPU
// uploads deferred back to the loop via TextureLoader.Poll.
package wander
