// Package upstream talks to the Infraestruturas de Portugal schedule and
// station-search endpoints and normalizes their loosely-typed JSON into the
// engine's Row shape. All coercion happens here, once, at the boundary; the
// engine never sees raw upstream values.
package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexString decodes a JSON field that may arrive as a string, a number,
// or null. Unknown shapes coerce to "".
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*s = ""
		return nil
	}
	if trimmed[0] == '"' {
		var v string
		if err := json.Unmarshal(trimmed, &v); err != nil {
			*s = ""
			return nil
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		*s = ""
		return nil
	}
	*s = flexString(n.String())
	return nil
}

// flexBool decodes a JSON field that may arrive as a bool, a number, or a
// string; anything unrecognized coerces to false.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch strings.ToLower(string(bytes.TrimSpace(data))) {
	case "true":
		*b = true
	case "false", "null", "", "0":
		*b = false
	default:
		var n json.Number
		if err := json.Unmarshal(bytes.TrimSpace(data), &n); err == nil {
			f, err := n.Float64()
			*b = flexBool(err == nil && f != 0)
			return nil
		}
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			v, err := strconv.ParseBool(strings.TrimSpace(s))
			*b = flexBool(err == nil && v)
			return nil
		}
		*b = false
	}
	return nil
}

// scheduleEntry is one raw row of the partidas-chegadas payload. Field names
// follow the upstream contract verbatim.
type scheduleEntry struct {
	DataHoraPartidaChegada flexString `json:"DataHoraPartidaChegada"`
	OrderKey               flexString `json:"DataHoraPartidaChegada_ToOrderByi"`
	Linha                  flexString `json:"Linha"`
	TipoServico            flexString `json:"TipoServico"`
	NComboio1              flexString `json:"NComboio1"`
	NComboio2              flexString `json:"NComboio2"`
	Observacoes            flexString `json:"Observacoes"`
	ComboioPassou          flexBool   `json:"ComboioPassou"`
	NomeEstacaoDestino     flexString `json:"NomeEstacaoDestino"`
	NomeEstacaoOrigem      flexString `json:"NomeEstacaoOrigem"`
}

// scheduleSection is one direction of the payload: TipoPedido 1 carries
// departures, 2 carries arrivals.
type scheduleSection struct {
	TipoPedido int             `json:"TipoPedido"`
	Entries    []scheduleEntry `json:"NodesComboioTabelsPartidasChegadas"`
}

type schedulePayload struct {
	Response []scheduleSection `json:"response"`
}

// stationEntry is one raw station-search hit.
type stationEntry struct {
	NodeID    flexString `json:"NodeID"`
	Nome      flexString `json:"Nome"`
	Distancia float64    `json:"Distancia"`
}

type stationPayload struct {
	Response []stationEntry `json:"response"`
}
