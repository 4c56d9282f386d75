package websocket

import (
	"encoding/json"
	"time"

	"github.com/OldStager01/attrition-advisor/internal/advisor"
	"github.com/OldStager01/attrition-advisor/internal/report"
	"github.com/OldStager01/attrition-advisor/pkg/models"
)

type MessageType string

const (
	MessageTypeSessionState MessageType = "session_state"
	MessageTypeError        MessageType = "error"
)

// Incoming message types.
const (
	IncomingProfileUpdate = "profile_update"
	IncomingSync          = "sync"
)

type IncomingMessage struct {
	Type    string                  `json:"type"`
	Profile *models.EmployeeProfile `json:"profile,omitempty"`
}

type OutgoingMessage struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

func NewMessage(msgType MessageType, data interface{}) *OutgoingMessage {
	return &OutgoingMessage{
		Type:      msgType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func (m *OutgoingMessage) JSON() []byte {
	data, _ := json.Marshal(m)
	return data
}

// SessionStateData is what a page needs to decide whether its displayed
// result is still current.
type SessionStateData struct {
	State        advisor.State          `json:"state"`
	Profile      models.EmployeeProfile `json:"profile"`
	PredictionID string                 `json:"prediction_id,omitempty"`
	RiskTier     models.RiskTier        `json:"risk_tier,omitempty"`
	Probability  string                 `json:"probability,omitempty"`
	Indicator    int                    `json:"indicator"`
	HasReport    bool                   `json:"has_report"`
	Prompt       string                 `json:"prompt,omitempty"`
}

func NewSessionStateMessage(snap advisor.Snapshot) *OutgoingMessage {
	data := SessionStateData{
		State:     snap.State,
		Profile:   snap.Profile,
		HasReport: snap.HasReport,
		Prompt:    snap.Prompt,
	}
	if snap.Result != nil {
		data.PredictionID = snap.Result.ID
		data.RiskTier = snap.Result.RiskTier
		data.Probability = report.FormatProbability(snap.Result.Probability)
		data.Indicator = snap.Result.Indicator
	}
	return NewMessage(MessageTypeSessionState, data)
}

func NewErrorMessage(message string) *OutgoingMessage {
	return NewMessage(MessageTypeError, map[string]string{"message": message})
}
