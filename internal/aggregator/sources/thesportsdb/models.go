package thesportsdb

// Wire types for the TheSportsDB v1 JSON API. Only the fields we read.

type teamsResponse struct {
	Teams []apiTeam `json:"teams"`
}

type apiTeam struct {
	ID   string `json:"idTeam"`
	Name string `json:"strTeam"`
}

// The league listing endpoint nests leagues under "countrys" (sic).
type leaguesResponse struct {
	Countries []apiLeague `json:"countrys"`
}

type apiLeague struct {
	ID   string `json:"idLeague"`
	Name string `json:"strLeague"`
}

type eventsResponse struct {
	Events []apiEvent `json:"events"`
}

type apiEvent struct {
	ID        string `json:"idEvent"`
	Name      string `json:"strEvent"`
	League    string `json:"strLeague"`
	HomeTeam  string `json:"strHomeTeam"`
	AwayTeam  string `json:"strAwayTeam"`
	Date      string `json:"dateEvent"`     // YYYY-MM-DD
	Time      string `json:"strTime"`       // HH:MM:SS, often empty
	Timestamp string `json:"strTimestamp"`  // YYYY-MM-DDTHH:MM:SS, UTC
}
