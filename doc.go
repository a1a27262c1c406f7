// Package qrc renders QR module grids into raster canvases and SVG documents,
// and composites those renderings: bottom-right watermarks, logo overlays,
// side-by-side symbols and tiled grids.
//
// Canvases are *image.NRGBA values with non-premultiplied channels. By
// default dark modules are fully transparent and light modules are opaque
// white, so a symbol can be laid over any background; use AccentPalette or a
// custom Palette for opaque dark modules.
//
// Encoding is delegated to gozxing. The engine never checks that a
// recoloured, watermarked or downscaled symbol still scans.
package qrc
