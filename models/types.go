package models

import "time"

// Impact levels used by upcoming rumors
const (
	ImpactHigh   = "High"
	ImpactMedium = "Medium"
	ImpactLow    = "Low"
)

// Market tracker views
const (
	ViewCrypto = "crypto"
	ViewStock  = "stock"
)

// Leaderboard periods
const (
	PeriodAllTime = "all-time"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

// Fixture types

type TimelineEntry struct {
	ID             int       `json:"id" yaml:"id"`
	Date           time.Time `json:"date" yaml:"date"`
	Countries      []string  `json:"countries" yaml:"countries"`
	Details        string    `json:"details" yaml:"details"`
	Impact         string    `json:"impact" yaml:"impact"`
	Source         string    `json:"source" yaml:"source"`
	Negative       bool      `json:"negative" yaml:"negative"`
	AdditionalInfo string    `json:"additional_info" yaml:"additional_info"`
}

type ChartPoint struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

type MarketEvent struct {
	ID           int          `json:"id" yaml:"id"`
	Date         time.Time    `json:"date" yaml:"date"`
	Country      string       `json:"country" yaml:"country"`
	Category     string       `json:"category" yaml:"category"`
	Description  string       `json:"description" yaml:"description"`
	CryptoImpact float64      `json:"crypto_impact" yaml:"crypto_impact"`
	StockImpact  float64      `json:"stock_impact" yaml:"stock_impact"`
	NewsSource   string       `json:"news_source" yaml:"news_source"`
	ChartData    []ChartPoint `json:"chart_data" yaml:"chart_data"`
}

// ImpactFor returns the signed impact percentage for a market view
func (e MarketEvent) ImpactFor(view string) float64 {
	if view == ViewStock {
		return e.StockImpact
	}
	return e.CryptoImpact
}

type UpcomingRumor struct {
	ID         int      `json:"id" yaml:"id"`
	Date       string   `json:"date" yaml:"date"`
	Targets    []string `json:"targets" yaml:"targets"`
	Rumor      string   `json:"rumor" yaml:"rumor"`
	Source     string   `json:"source" yaml:"source"`
	Confidence int      `json:"confidence" yaml:"confidence"`
	Category   string   `json:"category" yaml:"category"`
	Impact     string   `json:"impact" yaml:"impact"`
}

type RumoredTariff struct {
	ID           int     `json:"id" yaml:"id"`
	ExpectedDate string  `json:"expected_date" yaml:"expected_date"`
	Country      string  `json:"country" yaml:"country"`
	Sector       string  `json:"sector" yaml:"sector"`
	Confidence   int     `json:"confidence" yaml:"confidence"`
	TrendScore   float64 `json:"trend_score" yaml:"trend_score"`
	NewsOrigin   string  `json:"news_origin" yaml:"news_origin"`
	Impact       string  `json:"impact" yaml:"impact"`
	Description  string  `json:"description" yaml:"description"`
}

type VoteRumor struct {
	ID           int    `json:"id" yaml:"id"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	ExpectedDate string `json:"expected_date" yaml:"expected_date"`
	YesVotes     int    `json:"yes_votes" yaml:"yes_votes"`
	NoVotes      int    `json:"no_votes" yaml:"no_votes"`
	Source       string `json:"source" yaml:"source"`
	Category     string `json:"category" yaml:"category"`
}

type LeaderboardEntry struct {
	ID                 int    `json:"id" yaml:"id"`
	Address            string `json:"address" yaml:"address"`
	CorrectPredictions int    `json:"correct_predictions" yaml:"correct_predictions"`
	TotalPredictions   int    `json:"total_predictions" yaml:"total_predictions"`
	Accuracy           int    `json:"accuracy" yaml:"accuracy"`
	Rank               int    `json:"rank" yaml:"rank"`
	LastPrediction     string `json:"last_prediction" yaml:"last_prediction"`
	Streak             int    `json:"streak" yaml:"streak"`
	IsTeamMember       bool   `json:"is_team_member" yaml:"is_team_member"`
}

// Medal returns gold, silver or bronze for the top three ranks
func (e LeaderboardEntry) Medal() string {
	switch e.Rank {
	case 1:
		return "gold"
	case 2:
		return "silver"
	case 3:
		return "bronze"
	}
	return ""
}

type Section struct {
	ID    string  `json:"id" yaml:"id"`
	Label string  `json:"label" yaml:"label"`
	Top   float64 `json:"top" yaml:"top"`
}

// Request types

type VoteRequest struct {
	Choice string `json:"choice"`
}

type PredictionRequest struct {
	Type       string `json:"type"`
	TargetDate string `json:"target_date"` // YYYY-MM-DD
	Confidence string `json:"confidence"`
	Address    string `json:"address"`
}

type ScrollRequest struct {
	ScrollY float64 `json:"scroll_y"`
}

type LayoutRequest struct {
	Sections []Section `json:"sections"`
}

type NewsletterRequest struct {
	Email string `json:"email"`
}

type PageRequest struct {
	Direction string `json:"direction"` // "left" or "right"
}

// Response types

type FilterEcho struct {
	Search   string  `json:"search"`
	Category *string `json:"category"`
	Impact   *string `json:"impact"`
}

type TimelineResponse struct {
	Entries   []TimelineEntry `json:"entries"`
	Countries []string        `json:"countries"`
	Country   *string         `json:"country"`
	Expanded  *int            `json:"expanded"`
	Empty     bool            `json:"empty"`
}

type MarketEventsResponse struct {
	Events     []MarketEvent `json:"events"`
	Categories []string      `json:"categories"`
	View       string        `json:"view"`
	Sort       SortEcho      `json:"sort"`
	Offset     int           `json:"offset"`
}

type UpcomingRumorsResponse struct {
	Rumors     []UpcomingRumor `json:"rumors"`
	Total      int             `json:"total"`
	Categories []string        `json:"categories"`
	Impacts    []string        `json:"impacts"`
	Filters    FilterEcho      `json:"filters"`
	Filtered   bool            `json:"filtered"`
	Empty      bool            `json:"empty"`
}

type RumoredTariffsResponse struct {
	Tariffs []RumoredTariff `json:"tariffs"`
}

type SortEcho struct {
	Field     string `json:"field"`
	Direction string `json:"direction"`
}

type LeaderboardRow struct {
	LeaderboardEntry
	Medal string `json:"medal,omitempty"`
}

type LeaderboardResponse struct {
	Entries     []LeaderboardRow `json:"entries"`
	Search      string           `json:"search"`
	Period      string           `json:"period"`
	Description string           `json:"description"`
	Sort        SortEcho         `json:"sort"`
	Empty       bool             `json:"empty"`
}

type NewsletterResponse struct {
	Email      string `json:"email,omitempty"`
	Subscribed bool   `json:"subscribed"`
	Message    string `json:"message,omitempty"`
}

type TallyView struct {
	RumorID       int    `json:"rumor_id"`
	Yes           int    `json:"yes"`
	No            int    `json:"no"`
	YesPercentage int    `json:"yes_percentage"`
	NoPercentage  int    `json:"no_percentage"`
	UserVote      string `json:"user_vote,omitempty"`
	Summary       string `json:"summary"`
	Hint          string `json:"hint"`
}

type VotingZoneResponse struct {
	Rumors    []VoteRumor `json:"rumors"`
	Tallies   []TallyView `json:"tallies"`
	ActiveTab int         `json:"active_tab"`
}

type VoteResponse struct {
	Accepted bool      `json:"accepted"`
	Tally    TallyView `json:"tally"`
}

type ShareResponse struct {
	Text string `json:"text"`
}

type PredictionStatusResponse struct {
	State           string             `json:"state"`
	CanSubmit       bool               `json:"can_submit"`
	Prediction      *PredictionRequest `json:"prediction,omitempty"`
	PredictionID    string             `json:"prediction_id,omitempty"`
	PotentialPoints string             `json:"potential_points,omitempty"`
	Message         string             `json:"message,omitempty"`
}

type NavigationResponse struct {
	Sections []Section `json:"sections"`
	Active   string    `json:"active"`
	Scrolled bool      `json:"scrolled"`
	Target   *Section  `json:"target,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
