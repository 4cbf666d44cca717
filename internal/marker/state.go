package marker

// Phase is the position of a load cycle.
type Phase int

const (
	Idle Phase = iota
	Reading
	Processing
	Done
	Failed
	ReadFailed
)

func (p Phase) String() string {
	switch p {
	case Reading:
		return "reading"
	case Processing:
		return "processing"
	case Done:
		return "done"
	case Failed:
		return "failed"
	case ReadFailed:
		return "read failed"
	default:
		return "idle"
	}
}

// Busy reports whether a cycle is in flight.
func (p Phase) Busy() bool {
	return p == Reading || p == Processing
}

// State holds what the presenter shows: the current result or the current
// error message, never both. Each completed cycle overwrites both fields.
type State struct {
	Phase   Phase
	Source  string // Name of the file the current output came from
	Result  Result
	Message string // Fixed user-visible error message
	Err     error  // Cause behind Message, for logging
}

// Begin marks the start of a read. Output from the previous cycle stays
// visible until the new one completes.
func (s *State) Begin(source string) {
	s.Phase = Reading
	s.Source = source
}

// Succeed records a successful cycle and clears any previous error.
func (s *State) Succeed(res Result) {
	s.Phase = Done
	s.Result = res
	s.Message = ""
	s.Err = nil
}

// Fail records a failed cycle and clears any previous result.
func (s *State) Fail(err error) {
	s.Phase = Failed
	if KindOf(err) == ReadError {
		s.Phase = ReadFailed
	}
	s.Result = Result{}
	s.Message = UserMessage(err)
	s.Err = err
}

// Complete runs the processing stage on content delivered by a finished read
// and records the outcome. A non-nil readErr fails the cycle without
// processing.
func (s *State) Complete(raw []byte, readErr error, opts ...Option) {
	if readErr != nil {
		if KindOf(readErr) != ReadError {
			readErr = NewReadError(readErr)
		}
		s.Fail(readErr)
		return
	}

	s.Phase = Processing
	res, err := Process(raw, opts...)
	if err != nil {
		s.Fail(err)
		return
	}
	s.Succeed(res)
}

// ShowResult reports whether the result block should be rendered. An empty
// result renders nothing, same as a cycle that never ran.
func (s State) ShowResult() bool {
	return s.Message == "" && !s.Result.Empty()
}

// ShowError reports whether the error banner should be rendered.
func (s State) ShowError() bool {
	return s.Message != ""
}
