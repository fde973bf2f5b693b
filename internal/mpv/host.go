package mpv

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"github.com/mgpai22/subshift/internal/language"
	"github.com/mgpai22/subshift/internal/logging"
)

const defaultTimeout = 5 * time.Second

// player track, as listed in track-list
type Track struct {
	ID               int64  `json:"id"`
	Type             string `json:"type"`
	Title            string `json:"title"`
	Lang             string `json:"lang"`
	External         bool   `json:"external"`
	ExternalFilename string `json:"external-filename"`
	Selected         bool   `json:"selected"`
}

// Language returns the track's primary language subtag, falling back to the
// tag in an external file's name.
func (t Track) Language() string {
	return language.TrackLanguage(t.Lang, t.External, t.ExternalFilename)
}

// Host adapts a running mpv instance for saving and for the control surface.
type Host struct {
	Client *Client
	// Prompt answers overwrite questions; nil declines them.
	Prompt  func(question string) bool
	Timeout time.Duration
	Logger  *logging.Logger
}

func NewHost(client *Client, logger *logging.Logger) *Host {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Host{Client: client, Timeout: defaultTimeout, Logger: logger}
}

func (h *Host) context() (context.Context, context.CancelFunc) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

func (h *Host) ActiveSubtitlePath() string {
	ctx, cancel := h.context()
	defer cancel()

	var path string
	if err := h.Client.GetProperty(ctx, "current-tracks/sub/external-filename", &path); err != nil {
		if !errors.Is(err, ErrPropertyUnavailable) {
			h.Logger.Debugw("Cannot read active subtitle path", "error", err)
		}
		return ""
	}
	return path
}

func (h *Host) Confirm(prompt string) bool {
	if h.Prompt == nil {
		return false
	}
	return h.Prompt(prompt)
}

// SelectedTrack returns the selected subtitle track id, 0 when subtitles
// are off.
func (h *Host) SelectedTrack() (int64, error) {
	ctx, cancel := h.context()
	defer cancel()

	var raw json.RawMessage
	if err := h.Client.GetProperty(ctx, "sid", &raw); err != nil {
		return 0, err
	}
	var id int64
	if err := json.Unmarshal(raw, &id); err != nil {
		// "no" or false
		return 0, nil
	}
	return id, nil
}

func (h *Host) LoadTrack(path string) error {
	ctx, cancel := h.context()
	defer cancel()

	_, err := h.Client.Command(ctx, "sub-add", path, "select")
	return err
}

func (h *Host) SelectTrack(id int64) error {
	ctx, cancel := h.context()
	defer cancel()

	if id <= 0 {
		return h.Client.SetProperty(ctx, "sid", "no")
	}
	return h.Client.SetProperty(ctx, "sid", id)
}

// MediaPath is the path or URL of the playing file.
func (h *Host) MediaPath(ctx context.Context) (string, error) {
	var path string
	err := h.Client.GetProperty(ctx, "path", &path)
	return path, err
}

// VideoFPS returns the video frame rate rounded to three decimals, or 0 when
// the player does not know it.
func (h *Host) VideoFPS(ctx context.Context) float64 {
	for _, prop := range []string{"current-tracks/video/demux-fps", "container-fps"} {
		var fps float64
		if err := h.Client.GetProperty(ctx, prop, &fps); err == nil && fps > 0 {
			return math.Round(fps*1000) / 1000
		}
	}
	return 0
}

// SubDelayMs is the player's subtitle delay in whole milliseconds.
func (h *Host) SubDelayMs(ctx context.Context) (int64, error) {
	var seconds float64
	if err := h.Client.GetProperty(ctx, "sub-delay", &seconds); err != nil {
		return 0, err
	}
	return toMs(seconds), nil
}

func (h *Host) Tracks(ctx context.Context) ([]Track, error) {
	var tracks []Track
	if err := h.Client.GetProperty(ctx, "track-list", &tracks); err != nil {
		return nil, err
	}
	return tracks, nil
}

// SubtitleLanguage returns the language of the selected subtitle track.
func (h *Host) SubtitleLanguage(ctx context.Context) string {
	tracks, err := h.Tracks(ctx)
	if err != nil {
		return ""
	}
	for _, t := range tracks {
		if t.Type == "sub" && t.Selected {
			return t.Language()
		}
	}
	return ""
}

// ShowText puts a message on the player's OSD.
func (h *Host) ShowText(ctx context.Context, text string, d time.Duration) error {
	_, err := h.Client.Command(ctx, "show-text", text, d.Milliseconds())
	return err
}
