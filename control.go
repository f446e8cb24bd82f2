// control.go - JSON control protocol dispatch

package main

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ControlMessage is the wire shape of every inbound control request.
// Fields not relevant to Type are left zero.
type ControlMessage struct {
	Type       string  `json:"type"`
	EffectType string  `json:"effectType,omitempty"`
	PedalID    string  `json:"pedalId,omitempty"`
	Position   int     `json:"position,omitempty"`
	EffectID   string  `json:"effectId,omitempty"`
	Parameter  string  `json:"parameter,omitempty"`
	Value      float32 `json:"value,omitempty"`
	ToPosition int     `json:"toPosition,omitempty"`
	Bypassed   bool    `json:"bypassed,omitempty"`
	Driver     string  `json:"driver,omitempty"`
}

// ControlResponse is the internal shape of every outbound reply; its
// MarshalJSON narrows each one down to the exact per-type wire shape the
// control protocol documents: {type:"status",running} for start/stop,
// {type:"stats",cpu,latency,peakInput,peakOutput} for getStats,
// {type:"ack",effectId?} for mutations, {type:"error",message,code?}
// on failure.
type ControlResponse struct {
	Type     string
	OK       bool
	Code     string
	Message  string
	Running  bool
	EffectID string
	Stats    StatsPayload
}

func (r ControlResponse) MarshalJSON() ([]byte, error) {
	if !r.OK {
		return json.Marshal(struct {
			Type    string `json:"type"`
			Message string `json:"message"`
			Code    string `json:"code,omitempty"`
		}{Type: "error", Message: r.Message, Code: r.Code})
	}

	switch r.Type {
	case "start", "stop":
		return json.Marshal(struct {
			Type    string `json:"type"`
			Running bool   `json:"running"`
		}{Type: "status", Running: r.Running})

	case "getStats":
		return json.Marshal(struct {
			Type       string  `json:"type"`
			CPU        float32 `json:"cpu"`
			Latency    float32 `json:"latency"`
			PeakInput  float32 `json:"peakInput"`
			PeakOutput float32 `json:"peakOutput"`
		}{
			Type:       "stats",
			CPU:        r.Stats.CPUUsage,
			Latency:    r.Stats.LatencyMs,
			PeakInput:  r.Stats.PeakInputDB,
			PeakOutput: r.Stats.PeakOutputDB,
		})

	default:
		return json.Marshal(struct {
			Type     string `json:"type"`
			EffectID string `json:"effectId,omitempty"`
		}{Type: "ack", EffectID: r.EffectID})
	}
}

// StatsPayload holds the values a periodic or on-demand stats push is
// built from; MarshalJSON sends only cpu, latency, peakInput and
// peakOutput of it, as flat fields of the response.
type StatsPayload struct {
	PeakInputDB      float32  `json:"peakInputDb"`
	PeakOutputDB     float32  `json:"peakOutputDb"`
	CPUUsage         float32  `json:"cpuUsage"`
	LatencyMs        float32  `json:"latencyMs"`
	SamplesProcessed uint64   `json:"samplesProcessed"`
	Running          bool     `json:"running"`
	ActiveDriver     string   `json:"activeDriver"`
	ChainEffectIDs   []string `json:"chainEffectIds"`
}

// Dispatcher turns ControlMessages into Engine operations. It has no
// transport dependency; wsserver.go is the only caller that knows about
// websockets.
type Dispatcher struct {
	engine *Engine
}

func NewDispatcher(engine *Engine) *Dispatcher {
	return &Dispatcher{engine: engine}
}

// Handle decodes and executes one control message, returning the
// response to send back to the caller.
func (d *Dispatcher) Handle(raw []byte) ControlResponse {
	var msg ControlMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return errorResponse("error", fmt.Errorf("stompchain: malformed control message: %w", err))
	}
	return d.dispatch(msg)
}

func (d *Dispatcher) dispatch(msg ControlMessage) ControlResponse {
	switch msg.Type {
	case "start":
		if err := d.engine.Start(); err != nil {
			return errorResponse(msg.Type, err)
		}
		return ControlResponse{Type: msg.Type, OK: true, Running: true}

	case "stop":
		if err := d.engine.Stop(); err != nil {
			return errorResponse(msg.Type, err)
		}
		return ControlResponse{Type: msg.Type, OK: true, Running: false}

	case "getStats":
		return ControlResponse{Type: msg.Type, OK: true, Stats: d.statsPayload()}

	case "addEffect":
		id, err := d.engine.Manager().AddEffect(EffectType(msg.EffectType), msg.PedalID, msg.Position, msg.EffectID)
		if err != nil {
			return errorResponse(msg.Type, err)
		}
		if IsPreviewID(id) {
			d.engine.Pipeline().Tone().SetEnabled(true)
		}
		return ControlResponse{Type: msg.Type, OK: true, EffectID: id}

	case "removeEffect":
		wasPreview := IsPreviewID(msg.EffectID)
		if err := d.engine.Manager().RemoveEffect(msg.EffectID); err != nil {
			return errorResponse(msg.Type, err)
		}
		if wasPreview && !d.engine.Manager().HasAnyPreviewEffect() {
			d.engine.Pipeline().Tone().SetEnabled(false)
		}
		return ControlResponse{Type: msg.Type, OK: true}

	case "setParameter":
		if err := d.engine.Manager().SetParameter(msg.EffectID, msg.Parameter, msg.Value); err != nil {
			return errorResponse(msg.Type, err)
		}
		return ControlResponse{Type: msg.Type, OK: true}

	case "moveEffect":
		if err := d.engine.Manager().MoveEffect(msg.EffectID, msg.ToPosition); err != nil {
			return errorResponse(msg.Type, err)
		}
		return ControlResponse{Type: msg.Type, OK: true}

	case "toggleBypass":
		if err := d.engine.Manager().ToggleBypass(msg.EffectID, msg.Bypassed); err != nil {
			return errorResponse(msg.Type, err)
		}
		return ControlResponse{Type: msg.Type, OK: true}

	default:
		return errorResponse(msg.Type, fmt.Errorf("stompchain: unknown control message type %q", msg.Type))
	}
}

func (d *Dispatcher) statsPayload() StatsPayload {
	stats := d.engine.Pipeline().Stats()
	return StatsPayload{
		PeakInputDB:      stats.PeakInputDB,
		PeakOutputDB:     stats.PeakOutputDB,
		CPUUsage:         stats.CPUUsage,
		LatencyMs:        stats.LatencyMs,
		SamplesProcessed: stats.SamplesProcessed,
		Running:          d.engine.IsRunning(),
		ActiveDriver:     d.engine.ActiveDriverName(),
		ChainEffectIDs:   d.engine.Manager().IDs(),
	}
}

func errorResponse(msgType string, err error) ControlResponse {
	return ControlResponse{Type: msgType, OK: false, Code: controlErrorCode(err), Message: err.Error()}
}

// controlErrorCode maps a sentinel error to a short machine-readable code
// a client can branch on, without parsing Message text.
func controlErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownEffectType):
		return "unknown_effect_type"
	case errors.Is(err, ErrUnknownEffectID):
		return "unknown_effect_id"
	case errors.Is(err, ErrChainFull):
		return "chain_full"
	case errors.Is(err, ErrDriverUnavailable):
		return "driver_unavailable"
	default:
		return "internal_error"
	}
}
