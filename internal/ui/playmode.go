package ui

// RepeatMode selects what happens when the current file finishes.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatOne
)

// Next cycles to the next repeat mode.
func (r RepeatMode) Next() RepeatMode {
	if r == RepeatOff {
		return RepeatOne
	}
	return RepeatOff
}

func (r RepeatMode) String() string {
	if r == RepeatOne {
		return "one"
	}
	return "off"
}

// Icon returns the status-line indicator, empty when off.
func (r RepeatMode) Icon() string {
	if r == RepeatOne {
		return "[repeat]"
	}
	return ""
}

// ShuffleMode selects the track order within a queue.
type ShuffleMode int

const (
	ShuffleOff ShuffleMode = iota
	ShuffleOn
)

// Toggle flips the shuffle setting.
func (s ShuffleMode) Toggle() ShuffleMode {
	return ShuffleOn + ShuffleOff - s
}

// Icon returns the status-line indicator, empty when off.
func (s ShuffleMode) Icon() string {
	if s == ShuffleOn {
		return "[shuffle]"
	}
	return ""
}
