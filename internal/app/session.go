// Package app holds the session every command and handler works against
package app

import (
	"context"
	"sync"

	"github.com/Zachdehooge/loop-map/internal/config"
	"github.com/Zachdehooge/loop-map/internal/dataset"
	"github.com/Zachdehooge/loop-map/internal/freeway"
	"github.com/Zachdehooge/loop-map/internal/layers"
	"github.com/Zachdehooge/loop-map/internal/popup"
)

// Session is the loaded datasets plus the current layer visibility
type Session struct {
	Config *config.Config
	Data   *dataset.Data

	mu      sync.Mutex
	visible *layers.Controller
}

// NewSession wraps already loaded data
func NewSession(cfg *config.Config, data *dataset.Data) *Session {
	if data == nil {
		data = &dataset.Data{}
	}
	return &Session{
		Config:  cfg,
		Data:    data,
		visible: layers.NewController(cfg.Coloring),
	}
}

// Open loads every dataset named in cfg and returns a session over them.
// Datasets that fail to load come back empty.
func Open(ctx context.Context, cfg *config.Config) *Session {
	loader := dataset.NewLoader(cfg.HTTPTimeout)
	return NewSession(cfg, loader.LoadAll(ctx, cfg.Sources))
}

// Coloring returns the junction colouring mode
func (s *Session) Coloring() layers.Coloring {
	return s.visible.Coloring()
}

// Toggle sets a layer's visibility and returns the resulting legend
func (s *Session) Toggle(l layers.Layer, visible bool) ([]layers.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.visible.SetVisible(l, visible); err != nil {
		return nil, err
	}
	return s.visible.Legend(), nil
}

// Legend returns the legend for the current visibility
func (s *Session) Legend() []layers.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible.Legend()
}

// Visibility returns a snapshot of every layer's visibility
func (s *Session) Visibility() map[layers.Layer]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible.State()
}

// Select returns the popup for a clicked feature
func (s *Session) Select(sel popup.Selection) popup.Descriptor {
	if j, ok := sel.(popup.JunctionSelection); ok && j.Coloring == "" {
		j.Coloring = s.Coloring()
		sel = j
	}
	return popup.For(sel)
}

// ExitPopups returns the popup of every curated exit, in exit order
func (s *Session) ExitPopups() []popup.Descriptor {
	exits := freeway.Exits()
	out := make([]popup.Descriptor, len(exits))
	for i, e := range exits {
		out[i] = s.Select(popup.ExitSelection{Exit: e})
	}
	return out
}

// JunctionPopups returns one popup per loaded junction
func (s *Session) JunctionPopups() []popup.Descriptor {
	out := make([]popup.Descriptor, len(s.Data.Junctions))
	for i, j := range s.Data.Junctions {
		out[i] = s.Select(popup.JunctionSelection{Junction: j})
	}
	return out
}

// LinkPopups returns one popup per loaded link
func (s *Session) LinkPopups() []popup.Descriptor {
	out := make([]popup.Descriptor, len(s.Data.Links))
	for i, l := range s.Data.Links {
		out[i] = s.Select(popup.LinkSelection{Link: l})
	}
	return out
}

// IncidentPopup returns the incident's popup
func (s *Session) IncidentPopup() popup.Descriptor {
	return s.Select(popup.IncidentSelection{Incident: freeway.TheIncident})
}
