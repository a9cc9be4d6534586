package web

type WordItem struct {
	ID    uint   `json:"id"`
	Text  string `json:"word"`
	Votes int    `json:"votes"`
	Mine  bool   `json:"mine"`
	Voted bool   `json:"voted"`
}

type SongItem struct {
	Lyric    string `json:"lyric"`
	AudioURL string `json:"audio_url"`
}

type HistoryRound struct {
	ID          uint       `json:"id"`
	Number      int        `json:"round_number"`
	VoteCount   int        `json:"vote_count"`
	FinalPrompt string     `json:"final_prompt,omitempty"`
	Voted       bool       `json:"voted"`
	Words       []WordItem `json:"words"`
	Songs       []SongItem `json:"songs,omitempty"`
}

type HomeData struct {
	Flash          string
	RoundNumber    int
	Prompt         string
	TotalChars     int
	CharsRemaining int
	CharLimit      int
	Words          []WordItem
	History        []HistoryRound
}
