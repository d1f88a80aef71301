package schemas

// AdviceRequest asks the advisor for a free-text suggestion based on the
// user's cash balance at a given date.
type AdviceRequest struct {
	Balance float64 `json:"balance"`
	Date    string  `json:"date"`
}

type AdviceResponse struct {
	Success bool   `json:"success"`
	Advice  string `json:"advice,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Appraisal kinds for AI-valued assets. Each kind carries its own detail
// payload; exactly one of the detail fields must be set, matching Kind.
const (
	AppraisalKindCar  = "car"
	AppraisalKindHome = "home"
	AppraisalKindLand = "land"
)

type CarDetails struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	KM    int    `json:"km"`
}

type PropertyDetails struct {
	Location string `json:"location"`
	M2       int    `json:"m2"`
}

type AppraisalRequest struct {
	Kind string           `json:"type"`
	Car  *CarDetails      `json:"car,omitempty"`
	Home *PropertyDetails `json:"home,omitempty"`
	Land *PropertyDetails `json:"land,omitempty"`
}

type AppraisalResponse struct {
	Success        bool   `json:"success"`
	EstimatedPrice int    `json:"estimatedPrice,omitempty"`
	Error          string `json:"error,omitempty"`
}
