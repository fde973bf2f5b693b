package save

// StaticHost is a Host for saving outside a player: the source is a fixed
// file and there are no tracks to juggle.
type StaticHost struct {
	Source string
	// Prompt answers overwrite questions; nil declines them.
	Prompt func(question string) bool
}

func (h *StaticHost) ActiveSubtitlePath() string {
	return h.Source
}

func (h *StaticHost) Confirm(prompt string) bool {
	if h.Prompt == nil {
		return false
	}
	return h.Prompt(prompt)
}

func (h *StaticHost) SelectedTrack() (int64, error) {
	return 0, nil
}

func (h *StaticHost) LoadTrack(string) error {
	return nil
}

func (h *StaticHost) SelectTrack(int64) error {
	return nil
}
