// Package tas is the connector for the small-molecule target affinity
// spectrum dataset. The dataset is a CSV published at a fixed URL; rows
// with a binding-class affinity become inhibition statements with one
// experimental-assay evidence each.
package tas
