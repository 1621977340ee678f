package entity

// Checkpoint is the generator state persisted across restarts.
type Checkpoint struct {
	LastTimestamp int64 `json:"last_timestamp"`
	Floor         int64 `json:"floor"`
}

// MinFloor is the lowest floor a restarted generator may use without
// reissuing timestamps already handed out before the checkpoint was taken.
func (c Checkpoint) MinFloor() int64 {
	floor := c.Floor
	if c.LastTimestamp > 0 && c.LastTimestamp+1 > floor {
		floor = c.LastTimestamp + 1
	}
	return floor
}

// Merge keeps the later value of each field, so saving an older checkpoint
// over a newer one never moves the stored state backwards.
func (c Checkpoint) Merge(other Checkpoint) Checkpoint {
	return Checkpoint{
		LastTimestamp: max(c.LastTimestamp, other.LastTimestamp),
		Floor:         max(c.Floor, other.Floor),
	}
}
