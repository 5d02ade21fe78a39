package gaze

import "GazeDashboard/internal/entity"

const (
	MinRadiusDeg     = 1.0
	MaxRadiusDeg     = 20.0
	RadiusStepDeg    = 0.5
	DefaultRadiusDeg = 10.0

	FormatSVG = "svg"
	FormatPNG = "png"

	// AggregateID selects every discovered participant at once.
	AggregateID = "aggregate"
)

type RenderRequest struct {
	ParticipantID string  `json:"participant_id" validate:"required,participant_id"`
	RadiusDeg     float64 `json:"radius_deg" validate:"gte=1,lte=20,radius_step"`
	Format        string  `json:"format" validate:"omitempty,oneof=svg png"`
}

type Artifact struct {
	ContentType string
	Body        []byte
}

type RenderResult struct {
	ParticipantID string
	Profile       entity.HeadsetProfile
	Region        entity.Region
	Scatter       Artifact
	Histogram     Artifact
	Warning       string
}

type ParticipantResponse struct {
	ID         string `json:"id"`
	Size       int64  `json:"size"`
	ModifiedAt string `json:"modified_at"`
}

type ParticipantListResponse struct {
	Participants []ParticipantResponse `json:"participants"`
	Total        int                   `json:"total"`
}

type SummaryResponse struct {
	ParticipantID string                `json:"participant_id"`
	Profile       entity.HeadsetProfile `json:"profile"`
	Region        entity.Region         `json:"region"`
	Warning       string                `json:"warning,omitempty"`
}

// ShellMessage is what the dashboard page sends over the websocket on every control change.
type ShellMessage struct {
	ParticipantID string  `json:"participant_id"`
	RadiusDeg     float64 `json:"radius_deg"`
}

type ShellResponse struct {
	SummaryResponse
	ScatterSVG   string `json:"scatter_svg"`
	HistogramSVG string `json:"histogram_svg"`
	Error        string `json:"error,omitempty"`
}

type UploadResponse struct {
	ShellResponse
	ArchivedAs string `json:"archived_as,omitempty"`
	ArchiveURL string `json:"archive_url,omitempty"`
}
