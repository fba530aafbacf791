package domain

type ChatReply struct {
	Reply       string   `json:"reply"`
	Suggestions []string `json:"suggestions"`
}
