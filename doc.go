// Package watermark removes, injects, and locates the semi-transparent
// corner logo that Gemini stamps onto generated images.
//
// The engine recovers a per-pixel alpha map from reference captures of the
// logo composited over black, then applies forward alpha blending (add) or
// its exact algebraic inverse (remove) at the placement Gemini uses for the
// image's dimensions. A companion detector scores how likely a watermark
// occupies that placement from brightness, variance-reduction, and
// edge-density evidence. Everything works on in-memory pixel buffers; no
// network or GPU is required.
package watermark
