package spinner

// state is the position in one animation. Only the animating goroutine
// touches it.
type state struct {
	frames    []string
	position  int
	direction int
}

func (s *Spinner) newState() *state {
	frames := s.frameSets[s.intN(len(s.frameSets))]
	direction := 1
	if s.intN(2) == 1 {
		direction = -1
	}
	return &state{
		frames:    frames,
		position:  s.intN(len(frames)),
		direction: direction,
	}
}

func (st *state) frame() string {
	return st.frames[st.position]
}

func (st *state) advance() {
	n := len(st.frames)
	st.position = ((st.position+st.direction)%n + n) % n
}
