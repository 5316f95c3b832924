// Package ordering decides the left-to-right order of the daughters of a
// division.
//
// # Classifiers
//
// A [Classifier] compares two daughters and returns a [Decision]:
//
//   - [LabelClassifier]: lexicographic label order, needs no anchors
//   - [PolesClassifier]: centre plus south/north poles ([NewSlicesClassifier]
//     derives the centre from the poles)
//   - [TriangleClassifier]: centre plus two axis vertices
//
// The geometric classifiers work in two stages. The layering stage measures
// the angle between daughter1→daughter2 and daughter1→centre: at or below
// the inner cutoff the second daughter sorts first, at or above the outer
// cutoff the first one does. Between the cutoffs the normal of the triangle
// (daughter1, daughter2, centre) is compared with the up axis (poles) or with
// the best-aligned of three axes (triangle).
//
// Zero-length vectors never produce NaN: the classifier falls back to label
// order and reports [ReasonDegenerate].
//
// # Sorters
//
// A [Sorter] reorders one division's daughters in place. [Identity] keeps
// graph order; [ComparatorSorter] ranks daughters with a classifier and logs
// every decision when built with [WithLogger].
//
// # Strategies
//
// A [Strategy] is a tagged variant over the five known orderings, carrying
// anchor labels and thresholds. [Resolve] looks anchors up once, before any
// traversal:
//
//	sorter, err := ordering.Resolve(ordering.Poles{
//	    North: "P1", South: "P2", Centre: "EMS",
//	}, forest.FindByLabel)
package ordering
