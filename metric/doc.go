// Package metric defines the distance capability consumed by the indexes in
// this module, along with a few concrete element domains and codecs:
//   - Element: the single-method contract a metric domain implements
//   - Distance: contract-checked distance evaluation
//   - Float, Vector, Hash: real line, Euclidean space and Hamming space
//   - Codec: element (de)serialization used by index snapshots
package metric
