package api

import "net/http"

// Screen describes a supported e-paper panel profile.
type Screen struct {
	Name   string `json:"name"`
	Desc   string `json:"desc"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Colors string `json:"colors"`
}

// screenCatalog lists the Good Display panels the firmware driver supports.
var screenCatalog = []Screen{
	{Name: "GDEP015OC1", Desc: "1.54\" B/W", Width: 200, Height: 200, Colors: "BW"},
	{Name: "GDEW0154Z04", Desc: "1.54\" B/W/R", Width: 200, Height: 200, Colors: "BWR"},
	{Name: "GDE0213B1", Desc: "2.13\" B/W", Width: 128, Height: 250, Colors: "BW"},
	{Name: "GDEW0213I5F", Desc: "2.13\" B/W FLEX", Width: 104, Height: 212, Colors: "BW"},
	{Name: "GDEW029T5", Desc: "2.9\" B/W", Width: 128, Height: 296, Colors: "BW"},
	{Name: "GDEW029Z10", Desc: "2.9\" B/W/R", Width: 128, Height: 296, Colors: "BWR"},
	{Name: "GDEW042T2", Desc: "4.2\" B/W", Width: 400, Height: 300, Colors: "BW"},
	{Name: "GDEW075T8", Desc: "7.5\" B/W", Width: 640, Height: 384, Colors: "BW"},
}

// handleListScreens returns the static catalog of supported panel profiles.
func (s *Server) handleListScreens(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"screens": screenCatalog,
	})
}
