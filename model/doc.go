// Package model contains the shared value types of the search core:
// grid locations with injective packed keys, move actions, and
// successor edges. These types are deliberately free of behavior
// beyond pure value computation so every layer can depend on them.
package model
