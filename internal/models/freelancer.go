// internal/models/freelancer.go
package models

import "encoding/json"

// Freelancer is the raw marketplace record for a freelancer profile. The
// repository never guarantees completeness; absent numerics stay nil and the
// Skills payload keeps whatever shape the upstream store used.
type Freelancer struct {
	ID                string          `json:"id"`
	DisplayName       string          `json:"displayName"`
	Bio               string          `json:"bio"`
	Skills            json.RawMessage `json:"skills"`
	HourlyRate        *float64        `json:"hourlyRate"`
	RatingAvg         *float64        `json:"ratingAvg"`
	CompletedCount    int             `json:"completedCount"`
	TotalCount        int             `json:"totalCount"`
	ProposalsSent     int             `json:"proposalsSent"`
	ProposalsAccepted int             `json:"proposalsAccepted"`
	ActiveContracts   int             `json:"activeContracts"`
	ExperienceLevel   string          `json:"experienceLevel"`
	FlagCount         int             `json:"flagCount"`
	CreatedAt         string          `json:"createdAt"`
}
