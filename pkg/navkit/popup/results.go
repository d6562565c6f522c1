package popup

// Resolution is how the user answered an action popup.
type Resolution int

const (
	ResolutionConfirmed Resolution = iota // User pressed the primary button
	ResolutionDismissed                   // User pressed cancel or tapped outside
)

func (r Resolution) String() string {
	if r == ResolutionConfirmed {
		return "confirmed"
	}
	return "dismissed"
}
