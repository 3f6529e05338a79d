// Package lidarclip cuts a large LiDAR point listing down to the returns which
// fall inside a single site polygon.
//
// A clipping run is a short pipeline, executed one chunk at a time so that
// memory use is bounded by the chunk size rather than the input size.
//
// 1. ChunkSource
//
//    The source reads a whitespace delimited listing with a header row and
//    hands out fixed size batches of Rows. The txt package provides the
//    standard implementation, reading from local files, gzip files, HTTP URLs,
//    or S3 objects.
//
// 2. Bounding box filter
//
//    FilterBounds discards every row outside the site's bounding box. For a
//    site covering a small part of the survey this throws away nearly
//    everything with two comparisons per coordinate.
//
// 3. Polygon filter
//
//    FilterWithin tests each bounding box survivor against the Region. The
//    boundary package provides a Region backed by the first polygon of a
//    shapefile. Points on the polygon's edge are not within it.
//
// 4. RowWriter
//
//    The writer appends survivors to the subset file. The txt package's Writer
//    replaces any earlier file and writes the fixed Header first.
//
// Clipper drives the four stages and reports progress markers, stats, and
// logs as it goes.
package lidarclip
