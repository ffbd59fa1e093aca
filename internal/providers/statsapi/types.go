package statsapi

type scheduleResponse struct {
	Dates []scheduleDate `json:"dates"`
}

type scheduleDate struct {
	Date  string         `json:"date"`
	Games []scheduleGame `json:"games"`
}

type scheduleGame struct {
	GamePk   *int64         `json:"gamePk"`
	GameDate string         `json:"gameDate"`
	GameType string         `json:"gameType"`
	Status   statusResponse `json:"status"`
	Venue    struct {
		Name string `json:"name"`
	} `json:"venue"`
	Teams struct {
		Away matchupSide `json:"away"`
		Home matchupSide `json:"home"`
	} `json:"teams"`
}

type matchupSide struct {
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
}

type statusResponse struct {
	DetailedState string `json:"detailedState"`
}

type boxscoreResponse struct {
	Teams struct {
		Home boxscoreSide `json:"home"`
		Away boxscoreSide `json:"away"`
	} `json:"teams"`
}

type boxscoreSide struct {
	TeamStats struct {
		Batting struct {
			Runs *int `json:"runs"`
		} `json:"batting"`
	} `json:"teamStats"`
}

type liveFeedResponse struct {
	GameData struct {
		Status statusResponse `json:"status"`
	} `json:"gameData"`
	LiveData struct {
		Linescore struct {
			Teams struct {
				Home linescoreSide `json:"home"`
				Away linescoreSide `json:"away"`
			} `json:"teams"`
		} `json:"linescore"`
	} `json:"liveData"`
}

type linescoreSide struct {
	Runs *int `json:"runs"`
}
