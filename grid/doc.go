// Package grid provides the weighted terrain domain the search engine
// runs on: a rectangular grid whose cells carry one of two movement
// costs (grass or mud), assigned once at construction by a seedable
// generator. A Grid satisfies engine.Problem with 4-connected movement
// and the Manhattan heuristic.
package grid
