package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

// PlaylistItem is one entry of the playlist response.
type PlaylistItem struct {
	Index   int    `json:"index"`
	Path    string `json:"path"`
	Title   string `json:"title"`
	Current bool   `json:"current"`
}

// PlaylistResponse is the body of GET /api/playlist.
type PlaylistResponse struct {
	Folder     string         `json:"folder"`
	Version    uint64         `json:"version"`
	Count      int            `json:"count"`
	LastReload string         `json:"lastReload,omitempty"`
	Items      []PlaylistItem `json:"items"`
}

// GetStatus returns the sequencer status.
func (h *Handlers) GetStatus(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, h.status.Status())
}

// GetPlaylist returns the playlist snapshot the sequencer will use next.
func (h *Handlers) GetPlaylist(w http.ResponseWriter, _ *http.Request) {
	st := h.status.Status()
	pl := h.status.Playlist()

	response := PlaylistResponse{
		Folder:  pl.Folder(),
		Version: st.PlaylistVersion,
		Count:   pl.Len(),
		Items:   make([]PlaylistItem, 0, pl.Len()),
	}
	if !st.LastReload.IsZero() {
		response.LastReload = st.LastReload.Format(time.RFC3339)
	}

	for i, a := range pl.Artifacts() {
		response.Items = append(response.Items, PlaylistItem{
			Index:   i,
			Path:    a.Path,
			Title:   a.Title,
			Current: st.Current != nil && st.Current.Path == a.Path && !st.Halted,
		})
	}

	respond(w, http.StatusOK, response)
}

// GetPlaylistItem returns one playlist entry by position.
func (h *Handlers) GetPlaylistItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	a, ok := h.status.Playlist().At(index)
	if !ok {
		respondError(w, http.StatusNotFound, "no presentation at that index")
		return
	}

	st := h.status.Status()
	respond(w, http.StatusOK, PlaylistItem{
		Index:   index,
		Path:    a.Path,
		Title:   a.Title,
		Current: st.Current != nil && st.Current.Path == a.Path && !st.Halted,
	})
}
