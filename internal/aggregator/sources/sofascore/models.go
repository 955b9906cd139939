package sofascore

// Wire types for the scheduled-events endpoint. Only the fields we read.

type scheduledResponse struct {
	Events []scheduledEvent `json:"events"`
}

type scheduledEvent struct {
	ID             int64      `json:"id"`
	Tournament     tournament `json:"tournament"`
	HomeTeam       team       `json:"homeTeam"`
	AwayTeam       team       `json:"awayTeam"`
	StartTimestamp int64      `json:"startTimestamp"`
}

type tournament struct {
	Name     string   `json:"name"`
	Category category `json:"category"`
}

type category struct {
	Name string `json:"name"`
}

type team struct {
	Name string `json:"name"`
}
