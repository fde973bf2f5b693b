package subtitle

// represents single subtitle entry; times are milliseconds from the track origin
type Entry struct {
	Index int
	Start float64
	End   float64
	Lines []string
}

// parameters for one shift operation
type Params struct {
	DelayMs   int64
	FPSSource float64
	FPSTarget float64
}

// Ratio returns the frame-rate scale factor. It is exactly 1 unless both
// rates are positive.
func (p Params) Ratio() float64 {
	if p.FPSSource > 0 && p.FPSTarget > 0 {
		return p.FPSSource / p.FPSTarget
	}
	return 1
}

// why a block did not make it into the output
type DropReason string

const (
	DropNoTimeLine  DropReason = "no time line"
	DropBadTimeLine DropReason = "malformed time line"
	DropBeforeStart DropReason = "ends before track start"
	DropEmptyText   DropReason = "empty text"
)

// DropFunc receives the zero-based position of a dropped block in the source
// text and the reason it was dropped.
type DropFunc func(block int, reason DropReason)
