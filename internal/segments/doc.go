// Package segments produces raw candidate segments from still images.
//
// It is the input adapter in front of the detection pipeline: given an image
// it returns an unordered list of geometry.Line values, each with two integer
// endpoints and, for contour-based extraction, a contour area. The detection
// core never imports this package.
//
// # Algorithms
//
//   - Hough: vote edge pixels into (rho, theta) space, take local maxima and
//     trace each peak back to its extreme edge pixels
//   - Contours: flood-fill connected edge pixels and fit one segment along the
//     principal axis of each component
//
// # Edge Map
//
// Both algorithms start from the same binary edge map: grayscale conversion
// and Gaussian blur (disintegration/imaging), Sobel gradient magnitude
// (bild/effect) and a fixed threshold (bild/segment). Border pixels are never
// edges.
//
// # Coordinate System
//
// Returned coordinates are in the source image's coordinate space, so an
// image whose bounds do not start at (0, 0) yields offset segments.
package segments
