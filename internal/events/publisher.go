package events

import (
	"github.com/OldStager01/attrition-advisor/pkg/models"
)

// Publisher emits session events. A nil Publisher drops everything, so
// callers never need to check.
type Publisher struct {
	bus     *EventBus
	traceID string
}

func NewPublisher(bus *EventBus) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) WithTraceID(traceID string) *Publisher {
	if p == nil {
		return nil
	}
	return &Publisher{
		bus:     p.bus,
		traceID: traceID,
	}
}

func (p *Publisher) publish(event *models.Event) {
	if p == nil || p.bus == nil {
		return
	}
	if p.traceID != "" {
		event.TraceID = p.traceID
	}
	p.bus.Publish(event)
}

func (p *Publisher) ProfileUpdated(state string, profile models.EmployeeProfile) {
	event := models.NewEvent(models.EventTypeProfileUpdated, state, "Profile updated").
		WithData(profile)
	p.publish(event)
}

func (p *Publisher) ResultCleared(state string, previousID string) {
	event := models.NewEvent(models.EventTypeResultCleared, state, "Inputs changed, prediction cleared").
		WithData(map[string]interface{}{
			"previous_prediction_id": previousID,
		})
	p.publish(event)
}

func (p *Publisher) PredictionMade(state string, result *models.PredictionResult) {
	msg := "Predicted attrition risk: " + string(result.RiskTier)
	event := models.NewEvent(models.EventTypePredictionMade, state, msg).
		WithData(result)

	if result.RiskTier == models.RiskHigh {
		event.WithSeverity(models.SeverityWarning)
	}

	p.publish(event)
}

func (p *Publisher) PredictionFailed(state string, err error) {
	event := models.NewEvent(models.EventTypePredictionFailed, state, "Prediction failed").
		WithSeverity(models.SeverityCritical).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}

func (p *Publisher) ReportGenerated(state string, predictionID string, size int) {
	event := models.NewEvent(models.EventTypeReportGenerated, state, "Report generated").
		WithData(map[string]interface{}{
			"prediction_id": predictionID,
			"bytes":         size,
		})
	p.publish(event)
}

func (p *Publisher) ReportFailed(state string, err error) {
	event := models.NewEvent(models.EventTypeReportFailed, state, "Report generation failed").
		WithSeverity(models.SeverityWarning).
		WithData(map[string]interface{}{
			"error": err.Error(),
		})
	p.publish(event)
}
