package schemas

type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	Nick        string  `json:"nick"`
	TotalProfit float64 `json:"totalProfit"`
	LastUpdate  string  `json:"lastUpdate"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

type SubmitScoreRequest struct {
	Nick        string  `json:"nick"`
	TotalProfit float64 `json:"totalProfit"`
}

type NickCheckRequest struct {
	Nick string `json:"nick"`
}

type NickCheckResponse struct {
	Available bool `json:"available"`
	Exists    bool `json:"exists"`
}
