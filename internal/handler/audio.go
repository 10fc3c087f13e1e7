package handler

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"koreanvocab/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

var errNoAudioSource = errors.New("no audio source configured")

// AudioSource resolves manifest audio paths to files Telegram can send
type AudioSource struct {
	dir     string
	baseURL string
}

// NewAudioSource prefers baseURL when set, otherwise reads from dir
func NewAudioSource(dir, baseURL string) *AudioSource {
	return &AudioSource{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// File returns the telebot file for a manifest audio path
func (a *AudioSource) File(p string) (tele.File, error) {
	if p == "" {
		return tele.File{}, errors.New("empty audio path")
	}
	if a.baseURL != "" {
		return tele.FromURL(a.URL(p)), nil
	}
	if a.dir == "" {
		return tele.File{}, errNoAudioSource
	}

	full := filepath.Join(a.dir, filepath.FromSlash(p))
	if _, err := os.Stat(full); err != nil {
		return tele.File{}, err
	}
	return tele.FromDisk(full), nil
}

// URL joins the base URL with an escaped manifest path
func (a *AudioSource) URL(p string) string {
	parts := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return a.baseURL + "/" + strings.Join(parts, "/")
}

// playAudio sends the prompt audio followed by the name audio, if any.
// Failures are logged and never interrupt the game.
func (h *Handler) playAudio(c tele.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := h.sendAudio(c, p); err != nil {
			h.logger.Warn("Audio playback failed",
				zap.Error(&domain.PlaybackWarning{Path: p, Err: err}),
				zap.Int64("user_id", c.Sender().ID),
			)
		}
	}
}

func (h *Handler) sendAudio(c tele.Context, p string) error {
	file, err := h.audio.File(p)
	if err != nil {
		return err
	}
	return c.Send(&tele.Audio{File: file, FileName: filepath.Base(p)}, tele.Silent)
}
