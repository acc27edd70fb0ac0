// Package clock reads the hardware cycle counter with the ordering
// guarantees a start/stop measurement pair needs.
//
// A CycleClock issues a serialized counter read at both ends of the
// measured region: the start read cannot drift earlier than preceding
// instructions, and the stop read waits for prior instruction
// retirement before sampling the counter. Both reads also return the
// id of the executing core, because a counter difference taken across
// two cores is meaningless and must be discarded rather than averaged
// away.
//
// Tick values are opaque until paired with a CalibrationFactor, which
// carries the conversion rate together with its provenance (measured
// or operator-declared) and the counter's stability classification.
// Conversion to wall-clock units is refused for non-invariant
// counters; raw ticks remain usable.
package clock
