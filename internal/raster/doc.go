// Package raster draws line segments into an indexed-color frame.
//
// Segments that lie on a row, a column or a 45-degree diagonal cover whole
// pixels and are filled with a single index. Every other slope uses Wu's
// algorithm with integer arithmetic only:
//
//   - the segment is walked along its major axis, one pixel per step
//   - a 16-bit accumulator adds minor/major (as a fraction) each step and
//     the minor coordinate advances whenever it wraps
//   - the accumulator's top bits select the brightness of the primary pixel
//     and the neighbour on the minor axis receives the complement, so the
//     pair always sums to full coverage
//
// The number of brightness levels must be a power of two so that the top
// bits of the accumulator map directly onto a level. Level 0 is the
// brightest. Drawing with the erase hue maps every level to index 0, which
// makes erasing a segment the same operation as drawing it.
package raster
