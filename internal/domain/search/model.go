package search

// Result types, in the order mixed result sets are assembled.
const (
	TypePatient      = "patient"
	TypeDoctor       = "doctor"
	TypeAppointment  = "appointment"
	TypeConsultation = "consultation"
	TypeMedication   = "medication"
)

// Result is one global-search hit, shaped for direct rendering: a title
// line, a secondary line and the front-end route of the record.
type Result struct {
	ID       int64                  `json:"id"`
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Subtitle string                 `json:"subtitle"`
	URL      string                 `json:"url"`
	Data     map[string]interface{} `json:"data,omitempty"`
}
