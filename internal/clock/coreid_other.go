//go:build !linux

package clock

// Without getcpu the executing core is unknown; -1 disables the
// migration check rather than inventing an id.
func currentCore() int32 {
	return -1
}
