package sptrans

import (
	"encoding/json"
	"time"
)

// lineInfo is the provider's route descriptor from /Linha/Buscar.
// Field names follow the SPTrans Olho Vivo API.
type lineInfo struct {
	Code          int64  `json:"cl"` // internal route code
	Circular      bool   `json:"lc"`
	LineNumber    string `json:"lt"` // first half of the public line id
	LineSuffix    int    `json:"tl"` // second half of the public line id
	Direction     int    `json:"sl"` // 1 = main terminal, 2 = secondary
	MainTerminal  string `json:"tp"`
	OtherTerminal string `json:"ts"`
}

// vehicle is one bus from /Posicao/Linha.
type vehicle struct {
	Prefix     json.Number `json:"p"`
	Accessible bool        `json:"a"`
	UpdatedAt  time.Time   `json:"ta"`
	Lng        float64     `json:"px"`
	Lat        float64     `json:"py"`
}

// positionsResponse is the envelope of /Posicao/Linha.
type positionsResponse struct {
	Hour     string    `json:"hr"`
	Vehicles []vehicle `json:"vs"`
}
