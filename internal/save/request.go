package save

import (
	"errors"
	"strings"

	"github.com/mgpai22/subshift/internal/subtitle"
)

// ErrNoFilename is returned for a request whose file name is blank.
var ErrNoFilename = errors.New("Enter a file name")

// Request is a save as typed into a form: raw user text that still needs
// sanitizing, parsing and validation.
type Request struct {
	Dir          string `json:"dir"`
	Filename     string `json:"filename"`
	Delay        string `json:"delay"`
	IncludeDelay bool   `json:"include_delay"`
	Lang         string `json:"lang"`
	FPSConvert   bool   `json:"fps_convert"`
	FPSSource    string `json:"fps_source"`
	FPSTarget    string `json:"fps_target"`
	Overwrite    bool   `json:"overwrite"`
	SetActive    bool   `json:"set_active"`
}

// Options resolves the request into save options. videoFPS is the playing
// video's frame rate, used when no source rate was entered.
func (r Request) Options(videoFPS float64) (Options, error) {
	if err := subtitle.ValidateFPS(r.FPSConvert, r.FPSSource, r.FPSTarget, videoFPS); err != nil {
		return Options{}, err
	}

	delayMs := subtitle.ParseFreeform(r.Delay)
	name := subtitle.SmartFilename(subtitle.SanitizeFilename(r.Filename), subtitle.NameOptions{
		IncludeDelay: r.IncludeDelay,
		DelayMs:      delayMs,
		Lang:         subtitle.SanitizeLang(r.Lang),
	})
	if name == "" {
		return Options{}, ErrNoFilename
	}

	source, target := subtitle.ResolveFPS(r.FPSConvert, r.FPSSource, r.FPSTarget, videoFPS)
	return Options{
		Dir:      strings.TrimSpace(subtitle.SanitizeDir(r.Dir)),
		Filename: name,
		Params: subtitle.Params{
			DelayMs:   delayMs,
			FPSSource: source,
			FPSTarget: target,
		},
		Overwrite: r.Overwrite,
		SetActive: r.SetActive,
	}, nil
}
