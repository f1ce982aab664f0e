// Package detection turns raw candidate segments into classified,
// deduplicated lines and reconstructs rectangular targets from them.
//
// # Pipeline
//
// Each frame is processed synchronously, leaves first:
//
//  1. Classification: split candidates into vertical and horizontal sets
//     using an explicit geometry.Tolerance
//  2. Redundancy elimination: within each set drop lines that lie closer than
//     MinLineDistance to an earlier survivor (first wins)
//  3. Extremal selection: leftmost/rightmost verticals and topmost/bottommost
//     horizontals, with a margin that resists near-tied noise
//  4. Filtering: independent operator chains over the deduplicated pool,
//     optionally keeping only the largest lines by area
//  5. Square reconstruction: intersect the two extremal verticals with the two
//     extremal horizontals to obtain four corners
//
// # Tolerances
//
// No component reads a shared tolerance. The Eliminator carries its own dedup
// tolerance and the Selector carries the one used for selection and
// filtering, so concurrent frames with different settings cannot interfere.
//
// # Failure Reporting
//
// Configuration mistakes (an empty chain, an unknown operator) are errors.
// Missing boundary lines and parallel pairings are not: Reconstruct reports
// them as found=false with an empty Square. Retrying is the caller's business,
// typically on the next frame; SquareTracker keeps the last good corners for
// callers that want to hold position meanwhile.
//
// # Coordinate System
//
// Coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// "Topmost" therefore means the smallest Y.
package detection
